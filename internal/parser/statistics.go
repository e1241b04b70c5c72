package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"rfhistoric/internal/domain"
	rferrors "rfhistoric/internal/errors"
)

// StatisticsInvalidFileTypeNotice is shown when a statistics report is not a .json file
const StatisticsInvalidFileTypeNotice = "Invalid file type. Please provide a .json file."

type statisticsDocument struct {
	Property []struct {
		Name  string          `json:"name"`
		Value json.RawMessage `json:"value"`
	} `json:"property"`
}

// StatisticsParser parses JSON property lists holding test counters
type StatisticsParser struct {
	fs afero.Fs
}

// NewStatisticsParser creates a new StatisticsParser
func NewStatisticsParser(fs afero.Fs) *StatisticsParser {
	return &StatisticsParser{fs: fs}
}

// Name returns the report type
func (p *StatisticsParser) Name() string {
	return TypeStatistics
}

// Parse returns one report per file
func (p *StatisticsParser) Parse(files []string) ([]*domain.Report, error) {
	return parseEach(p, files)
}

// ParseFile reads the counters. A non .json file fails with ErrInvalidFileType
// so the caller can stop without writing anything.
func (p *StatisticsParser) ParseFile(path string) (*domain.Report, error) {
	if !strings.HasSuffix(path, ".json") {
		return nil, rferrors.InvalidFileType(StatisticsInvalidFileTypeNotice)
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc statisticsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, rferrors.WrapFormat(err, "parse "+path)
	}

	var s domain.ExecutionSummary
	for _, prop := range doc.Property {
		var counter *int
		switch prop.Name {
		case "PassedTestCount":
			counter = &s.Passed
		case "FailedTestCount":
			counter = &s.Failed
		case "SkippedTestCount":
			counter = &s.Skipped
		case "TotalTestCount":
			counter = &s.Total
		default:
			continue
		}

		v, err := propertyCounter(prop.Value)
		if err != nil {
			return nil, rferrors.WrapFormat(err, "parse "+path+": "+prop.Name)
		}
		*counter = v
	}

	return &domain.Report{Source: []string{path}, Summary: s}, nil
}

// propertyCounter decodes the value of a counter property, 0 when missing or null
func propertyCounter(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var v flexInt
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v.or(0), nil
}
