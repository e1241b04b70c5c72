package parser

import "rfhistoric/internal/domain"

// Report types accepted by the dispatcher
const (
	TypeRobot      = "RF"
	TypeAllure     = "allure"
	TypeJUnit      = "junit"
	TypeStatistics = "statistics"
)

// Parser normalizes report files into execution reports
type Parser interface {
	// Name returns the report type handled by the parser
	Name() string
	// Parse reads the given files and returns the normalized reports
	Parse(files []string) ([]*domain.Report, error)
}

// FileParser parses a single flat summary file into one report
type FileParser interface {
	ParseFile(path string) (*domain.Report, error)
}

// parseEach runs a FileParser over every file. Nothing is returned unless every file parsed.
func parseEach(p FileParser, files []string) ([]*domain.Report, error) {
	reports := make([]*domain.Report, 0, len(files))
	for _, file := range files {
		report, err := p.ParseFile(file)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
