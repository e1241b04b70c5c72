package domain

import "rfhistoric/internal/convert"

// ExecutionSummary describes one processed test execution attempt
type ExecutionSummary struct {
	Total           int     `json:"total"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Skipped         int     `json:"skipped"`
	DurationMinutes float64 `json:"duration_minutes"`

	// Suite level counters, only populated by the Robot Framework parser
	SuiteTotal   int `json:"suite_total"`
	SuitePassed  int `json:"suite_passed"`
	SuiteFailed  int `json:"suite_failed"`
	SuiteSkipped int `json:"suite_skipped"`

	ExecutionName string `json:"execution_name"`
	ProjectName   string `json:"project_name"`
}

// PassPercentage returns passed/total*100 rounded to two decimals, 0 for an empty execution
func (s ExecutionSummary) PassPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return convert.Round2(float64(s.Passed) / float64(s.Total) * 100)
}

// Report is the normalized output of a single parser invocation
type Report struct {
	Type    string           `json:"type"`
	Source  []string         `json:"source"`
	Summary ExecutionSummary `json:"summary"`
	Suites  []SuiteResult    `json:"suites,omitempty"`
	Tests   []TestResult     `json:"tests,omitempty"`
	// Statistics is only set for native reports
	Statistics *Statistics `json:"statistics,omitempty"`
	// Notices are human readable messages the parser wants shown, e.g. an unsupported file type
	Notices []string `json:"notices,omitempty"`
}

// FailedTests returns the tests whose status is FAIL, in report order
func (r *Report) FailedTests() []TestResult {
	var failed []TestResult
	for _, t := range r.Tests {
		if t.Status == StatusFail {
			failed = append(failed, t)
		}
	}
	return failed
}

// ReportsOutput is the structure written by the JSON storage
type ReportsOutput struct {
	Timestamp string   `json:"timestamp"`
	Reports   []Report `json:"reports"`
}
