package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rfhistoric/internal/domain"
)

func TestFilterTests(t *testing.T) {
	tests := sampleReport().Tests

	assert.Len(t, filterTests(tests, false), 4)

	failed := filterTests(tests, true)
	assert.Len(t, failed, 2)
	for _, tc := range failed {
		assert.Equal(t, domain.StatusFail, tc.Status)
	}

	assert.Empty(t, filterTests(tests[:1], true))
}

func TestFormatTestDetails(t *testing.T) {
	details := formatTestDetails(domain.TestResult{
		DisplayName:     "Login - Invalid Login",
		Status:          "FAIL",
		DurationMinutes: 1.5,
		Message:         "Expected x got y",
		Tags:            "[smoke]",
	})

	assert.Contains(t, details, "[red]✗ Test: Login - Invalid Login")
	assert.Contains(t, details, "[cyan]Duration:[white] 1.50 min")
	assert.Contains(t, details, "Expected x got y")

	passed := formatTestDetails(domain.TestResult{DisplayName: "Login - Valid Login", Status: "PASS"})
	assert.Contains(t, passed, "[green]")
	assert.NotContains(t, passed, "Message:")
}

func TestFormatTestStats(t *testing.T) {
	assert.Equal(t, "[cyan]suite:[white] [yellow]Login[white] :: [yellow]Valid Login[white]\n",
		formatTestStats(domain.TestResult{DisplayName: "Login - Valid Login"}))
	assert.Contains(t, formatTestStats(domain.TestResult{DisplayName: "orphan"}), "Unknown suite")
}

func TestViewerHeader(t *testing.T) {
	header := viewerHeader(sampleReport(), 2, true)
	assert.Contains(t, header, "nightly | 2 of 4 tests (failed only, 2 failed)")
}

func TestListItemText(t *testing.T) {
	assert.Equal(t, "[yellow]-[white] [yellow]3.[white] Suite - Skipped",
		listItemText(2, domain.TestResult{DisplayName: "Suite - Skipped", Status: "SKIP"}))
}
