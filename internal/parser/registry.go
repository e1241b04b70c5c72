package parser

import (
	"strings"

	"github.com/spf13/afero"

	"rfhistoric/internal/domain"
	rferrors "rfhistoric/internal/errors"
)

// Options configures the parsers created by a Registry
type Options struct {
	// FullSuiteName uses dotted suite paths for suite and test names
	FullSuiteName bool
	// TrackSuiteSkipped counts suites that neither passed nor failed as skipped.
	// When false every suite level skip counter is reported as 0.
	TrackSuiteSkipped bool
}

// Identity tags every produced summary with the execution it belongs to
type Identity struct {
	ExecutionName string
	ProjectName   string
}

// Registry maps report types to their parsers
type Registry struct {
	native  Parser
	parsers map[string]Parser
}

// NewRegistry creates a registry with all built-in parsers reading from fs
func NewRegistry(fs afero.Fs, opts Options) *Registry {
	r := &Registry{
		native:  NewRobotParser(fs, opts),
		parsers: make(map[string]Parser),
	}
	r.Register(NewAllureParser(fs))
	r.Register(NewJUnitParser(fs))
	r.Register(NewStatisticsParser(fs))
	return r
}

// Register adds a parser for a flat report type, matched case-insensitively
func (r *Registry) Register(p Parser) {
	r.parsers[strings.ToLower(p.Name())] = p
}

// Lookup returns the parser for reportType. The native type only matches "RF" exactly.
func (r *Registry) Lookup(reportType string) (Parser, error) {
	if reportType == TypeRobot {
		return r.native, nil
	}
	if p, ok := r.parsers[strings.ToLower(reportType)]; ok {
		return p, nil
	}
	return nil, rferrors.Configf("report_type of %s is not supported.", reportType)
}

// Dispatch selects the parser for reportType, parses files and stamps each summary with id
func (r *Registry) Dispatch(reportType string, files []string, id Identity) ([]*domain.Report, error) {
	p, err := r.Lookup(reportType)
	if err != nil {
		return nil, err
	}

	reports, err := p.Parse(files)
	if err != nil {
		return nil, err
	}

	for _, report := range reports {
		report.Type = p.Name()
		report.Summary.ExecutionName = id.ExecutionName
		report.Summary.ProjectName = id.ProjectName
	}
	return reports, nil
}
