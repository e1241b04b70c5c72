package parser

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"rfhistoric/internal/domain"
	rferrors "rfhistoric/internal/errors"
)

// AllureInvalidFileTypeNotice is shown when an Allure summary is neither .xml nor .json
const AllureInvalidFileTypeNotice = "Invalid file type. Please provide either .xml or .json file."

type allureXMLSummary struct {
	XMLName      xml.Name
	Total        string `xml:"total,attr"`
	Passed       string `xml:"passed,attr"`
	Failed       string `xml:"failed,attr"`
	Inconclusive string `xml:"inconclusive,attr"`
	Skipped      string `xml:"skipped,attr"`
	Duration     string `xml:"duration,attr"`
}

type allureJSONSummary struct {
	Statistic struct {
		Total   flexInt `json:"total"`
		Passed  flexInt `json:"passed"`
		Failed  flexInt `json:"failed"`
		Unknown flexInt `json:"unknown"`
		Skipped flexInt `json:"skipped"`
	} `json:"statistic"`
}

// AllureParser parses Allure summary files (summary.xml attributes or summary.json "statistic")
type AllureParser struct {
	fs afero.Fs
}

// NewAllureParser creates a new AllureParser
func NewAllureParser(fs afero.Fs) *AllureParser {
	return &AllureParser{fs: fs}
}

// Name returns the report type
func (p *AllureParser) Name() string {
	return TypeAllure
}

// Parse returns one report per file
func (p *AllureParser) Parse(files []string) ([]*domain.Report, error) {
	return parseEach(p, files)
}

// ParseFile parses a single summary. Unknown extensions are not an error:
// the report keeps all-zero counters and carries a notice instead.
func (p *AllureParser) ParseFile(path string) (*domain.Report, error) {
	report := &domain.Report{Source: []string{path}}

	var err error
	switch {
	case strings.HasSuffix(path, ".xml"):
		err = p.parseXML(path, &report.Summary)
	case strings.HasSuffix(path, ".json"):
		err = p.parseJSON(path, &report.Summary)
	default:
		log.Warnf("allure: unsupported file %s, writing empty summary", path)
		report.Notices = append(report.Notices, AllureInvalidFileTypeNotice)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (p *AllureParser) parseXML(path string, s *domain.ExecutionSummary) error {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var doc allureXMLSummary
	if err := xml.Unmarshal(data, &doc); err != nil {
		return rferrors.WrapFormat(err, "parse "+path)
	}

	if s.Total, err = attrInt(doc.Total); err != nil {
		return err
	}
	if s.Passed, err = attrInt(doc.Passed); err != nil {
		return err
	}
	if s.Skipped, err = attrInt(doc.Skipped); err != nil {
		return err
	}
	failed, err := attrInt(doc.Failed)
	if err != nil {
		return err
	}
	inconclusive, err := attrInt(doc.Inconclusive)
	if err != nil {
		return err
	}
	s.Failed = failed + inconclusive

	// duration is stored as written in the file
	if s.DurationMinutes, err = attrFloat(doc.Duration); err != nil {
		return err
	}
	return nil
}

func (p *AllureParser) parseJSON(path string, s *domain.ExecutionSummary) error {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var doc allureJSONSummary
	if err := json.Unmarshal(data, &doc); err != nil {
		return rferrors.WrapFormat(err, "parse "+path)
	}

	stat := doc.Statistic
	s.Total = stat.Total.or(0)
	s.Passed = stat.Passed.or(0)
	s.Failed = stat.Failed.or(0) + stat.Unknown.or(0)
	s.Skipped = stat.Skipped.or(0)
	// summary.json carries no duration
	s.DurationMinutes = 0
	return nil
}
