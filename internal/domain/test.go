package domain

// Test and suite statuses as written by Robot Framework
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

// SuiteResult is one suite that directly owns at least one test
type SuiteResult struct {
	Name            string  `json:"name"`
	Status          string  `json:"status"`
	Total           int     `json:"total"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Skipped         int     `json:"skipped"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// TestResult is a single executed test case
type TestResult struct {
	DisplayName     string  `json:"display_name"` // "<parent> - <test>"
	Status          string  `json:"status"`
	DurationMinutes float64 `json:"duration_minutes"`
	Message         string  `json:"message"` // sanitized failure message
	Tags            string  `json:"tags"`    // printed tag list, e.g. "[smoke, regression]"
}
