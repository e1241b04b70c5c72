package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"rfhistoric/internal/domain"
)

// Sheet names of the XLSX export
const (
	SheetExecutions = "Executions"
	SheetSuites     = "Suites"
	SheetTests      = "Tests"
)

var (
	executionHeader = []interface{}{
		"Execution", "Project", "Type", "Source", "Total", "Pass", "Fail", "Skip",
		"Time (min)", "Suite Total", "Suite Pass", "Suite Fail", "Suite Skip", "Pass %",
	}
	suiteHeader = []interface{}{"Execution", "Suite", "Status", "Total", "Pass", "Fail", "Skip", "Time (min)"}
	testHeader  = []interface{}{"Execution", "Test", "Status", "Time (min)", "Error", "Tags"}
)

// XLSXStorage exports reports to an Excel workbook with one sheet per record kind
type XLSXStorage struct {
	path string
}

// NewXLSXStorage creates a new XLSXStorage writing to path
func NewXLSXStorage(path string) *XLSXStorage {
	return &XLSXStorage{path: path}
}

// Save writes the workbook, replacing any previous file
func (s *XLSXStorage) Save(_ context.Context, reports []*domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetExecutions); err != nil {
		return fmt.Errorf("create sheet %s: %w", SheetExecutions, err)
	}
	for _, sheet := range []string{SheetSuites, SheetTests} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	w := &sheetWriter{f: f, rows: make(map[string]int)}
	w.header(SheetExecutions, executionHeader, bold)
	w.header(SheetSuites, suiteHeader, bold)
	w.header(SheetTests, testHeader, bold)

	for _, r := range reports {
		sum := r.Summary
		source := ""
		if len(r.Source) > 0 {
			source = filepath.Base(r.Source[0])
			if len(r.Source) > 1 {
				source = fmt.Sprintf("%s (+%d)", source, len(r.Source)-1)
			}
		}
		w.row(SheetExecutions, []interface{}{
			sum.ExecutionName, sum.ProjectName, r.Type, source,
			sum.Total, sum.Passed, sum.Failed, sum.Skipped, sum.DurationMinutes,
			sum.SuiteTotal, sum.SuitePassed, sum.SuiteFailed, sum.SuiteSkipped, sum.PassPercentage(),
		})
		for _, suite := range r.Suites {
			w.row(SheetSuites, []interface{}{
				sum.ExecutionName, suite.Name, suite.Status,
				suite.Total, suite.Passed, suite.Failed, suite.Skipped, suite.DurationMinutes,
			})
		}
		for _, test := range r.Tests {
			w.row(SheetTests, []interface{}{
				sum.ExecutionName, test.DisplayName, test.Status, test.DurationMinutes, test.Message, test.Tags,
			})
		}
	}
	if w.err != nil {
		return fmt.Errorf("write workbook: %w", w.err)
	}

	if err := f.SetColWidth(SheetTests, "B", "B", 60); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", s.path, err)
	}
	return nil
}

// sheetWriter appends rows and keeps the first error
type sheetWriter struct {
	f    *excelize.File
	rows map[string]int
	err  error
}

func (w *sheetWriter) header(sheet string, values []interface{}, style int) {
	w.row(sheet, values)
	if w.err == nil {
		w.err = w.f.SetRowStyle(sheet, 1, 1, style)
	}
}

func (w *sheetWriter) row(sheet string, values []interface{}) {
	if w.err != nil {
		return
	}
	w.rows[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, w.rows[sheet])
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}
