package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"rfhistoric/internal/domain"
)

// Viewer displays test results in an interactive TUI
type Viewer interface {
	View(report *domain.Report) error
}

// TestViewer browses the tests of a native report
type TestViewer struct{}

// NewTestViewer creates a new TestViewer
func NewTestViewer() *TestViewer {
	return &TestViewer{}
}

// View shows the report's tests on the left and the selected test on the right.
// F toggles between all tests and failed tests only.
func (tv *TestViewer) View(report *domain.Report) error {
	if len(report.Tests) == 0 {
		color.Yellow("No test results to show for %s report", report.Type)
		return nil
	}

	failedOnly := false
	visible := filterTests(report.Tests, failedOnly)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(viewerHeader(report, len(visible), failedOnly))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(visible) {
			statsView.SetText("")
			detailsView.SetText("[gray]No tests to show[white]")
			return
		}
		test := visible[index]
		statsView.SetText(formatTestStats(test))
		detailsView.SetText(formatTestDetails(test))
		detailsView.ScrollToBeginning()
	}

	fillList := func() {
		list.Clear()
		for i, test := range visible {
			list.AddItem(listItemText(i, test), "", 0, nil)
		}
		updateHeader()
		updateDetails()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'f' || event.Rune() == 'F' {
				failedOnly = !failedOnly
				visible = filterTests(report.Tests, failedOnly)
				fillList()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	fillList()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func filterTests(tests []domain.TestResult, failedOnly bool) []domain.TestResult {
	if !failedOnly {
		return tests
	}
	var failed []domain.TestResult
	for _, t := range tests {
		if t.Status == domain.StatusFail {
			failed = append(failed, t)
		}
	}
	return failed
}

func statusColor(status string) string {
	switch status {
	case domain.StatusPass:
		return "green"
	case domain.StatusFail:
		return "red"
	default:
		return "yellow"
	}
}

func listItemText(index int, test domain.TestResult) string {
	return fmt.Sprintf("[%s]%s[white] [yellow]%d.[white] %s",
		statusColor(test.Status), statusMark(test.Status), index+1, tview.Escape(test.DisplayName))
}

func statusMark(status string) string {
	switch status {
	case domain.StatusPass:
		return "✓"
	case domain.StatusFail:
		return "✗"
	default:
		return "-"
	}
}

func viewerHeader(report *domain.Report, shown int, failedOnly bool) string {
	filter := "all"
	if failedOnly {
		filter = "failed only"
	}
	return fmt.Sprintf(" %s | %d of %d tests (%s, %d failed) | ↑↓ navigate, [yellow]F[white] toggle failed, → details, ← back, Ctrl+C exit ",
		tview.Escape(report.Summary.ExecutionName), shown, len(report.Tests), filter, report.Summary.Failed)
}

// formatTestStats formats the header line shown above the test details
func formatTestStats(test domain.TestResult) string {
	parent, name := splitDisplayName(test.DisplayName)
	if parent == "" {
		parent = "Unknown suite"
	}
	return fmt.Sprintf("[cyan]suite:[white] [yellow]%s[white] :: [yellow]%s[white]\n",
		tview.Escape(parent), tview.Escape(name))
}

// formatTestDetails formats a test for display using tview color tags
func formatTestDetails(test domain.TestResult) string {
	var b strings.Builder
	c := statusColor(test.Status)

	fmt.Fprintf(&b, "[%s]%s Test: %s[white]\n\n", c, statusMark(test.Status), tview.Escape(test.DisplayName))
	fmt.Fprintf(&b, "[cyan]Status:[white] [%s]%s[white]\n", c, test.Status)
	fmt.Fprintf(&b, "[cyan]Duration:[white] %.2f min\n", test.DurationMinutes)
	fmt.Fprintf(&b, "[cyan]Tags:[white] %s\n", tview.Escape(test.Tags))
	if test.Message != "" {
		fmt.Fprintf(&b, "\n[yellow]Message:[white]\n%s\n", tview.Escape(test.Message))
	}
	return b.String()
}
