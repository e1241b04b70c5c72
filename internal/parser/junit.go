package parser

import (
	"encoding/xml"
	"fmt"

	"github.com/spf13/afero"

	"rfhistoric/internal/domain"
	rferrors "rfhistoric/internal/errors"
)

type junitSuiteAttrs struct {
	Tests    string `xml:"tests,attr"`
	Failures string `xml:"failures,attr"`
	Errors   string `xml:"errors,attr"`
	Skipped  string `xml:"skipped,attr"`
	Time     string `xml:"time,attr"`
}

// junitDocument is either <testsuites><testsuite/></testsuites> or a bare <testsuite>
type junitDocument struct {
	XMLName xml.Name
	junitSuiteAttrs
	Suites []junitSuiteAttrs `xml:"testsuite"`
}

// JUnitParser parses the first <testsuite> of a JUnit XML file
type JUnitParser struct {
	fs afero.Fs
}

// NewJUnitParser creates a new JUnitParser
func NewJUnitParser(fs afero.Fs) *JUnitParser {
	return &JUnitParser{fs: fs}
}

// Name returns the report type
func (p *JUnitParser) Name() string {
	return TypeJUnit
}

// Parse returns one report per file
func (p *JUnitParser) Parse(files []string) ([]*domain.Report, error) {
	return parseEach(p, files)
}

// ParseFile reads the suite counters. passed is total-failed-skipped and is
// reported as computed, even when negative.
func (p *JUnitParser) ParseFile(path string) (*domain.Report, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc junitDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, rferrors.WrapFormat(err, "parse "+path)
	}

	var suite junitSuiteAttrs
	switch {
	case len(doc.Suites) > 0:
		suite = doc.Suites[0]
	case doc.XMLName.Local == "testsuite":
		suite = doc.junitSuiteAttrs
	default:
		return nil, rferrors.Formatf("parse %s: no testsuite element under <%s>", path, doc.XMLName.Local)
	}

	total, err := attrInt(suite.Tests)
	if err != nil {
		return nil, err
	}
	failures, err := attrInt(suite.Failures)
	if err != nil {
		return nil, err
	}
	errs, err := attrInt(suite.Errors)
	if err != nil {
		return nil, err
	}
	skipped, err := attrInt(suite.Skipped)
	if err != nil {
		return nil, err
	}
	duration, err := attrFloat(suite.Time)
	if err != nil {
		return nil, err
	}

	failed := failures + errs
	return &domain.Report{
		Source: []string{path},
		Summary: domain.ExecutionSummary{
			Total:           total,
			Passed:          total - failed - skipped,
			Failed:          failed,
			Skipped:         skipped,
			DurationMinutes: duration,
		},
	}, nil
}
