package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"rfhistoric/internal/domain"
)

// Formatter prints normalized reports to the terminal
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out, stdout when nil
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = os.Stdout
	}
	return &Formatter{out: out}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

const (
	tableTop    = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableMiddle = "├─────────────────────────────────┼─────────────────────────────┤"
	tableBottom = "└─────────────────────────────────┴─────────────────────────────┘"
)

type tableRow struct {
	label string
	value string
	c     *color.Color
}

// PrintSummary prints the execution summary table followed by the failed tests
func (f *Formatter) PrintSummary(report *domain.Report) {
	s := report.Summary

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintf(f.out, "║ %-61s ║\n", centered("Test Execution Summary", 61))
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	rows := []tableRow{
		{"Report Type", report.Type, white},
		{"Execution", s.ExecutionName, white},
		{"Project", s.ProjectName, white},
		{"Total Tests", fmt.Sprint(s.Total), white},
		{"Passed", fmt.Sprint(s.Passed), green},
		{"Failed", fmt.Sprint(s.Failed), red},
		{"Skipped", fmt.Sprint(s.Skipped), yellow},
		{"Pass Percentage", fmt.Sprintf("%.2f%%", s.PassPercentage()), white},
		{"Duration (min)", fmt.Sprintf("%.2f", s.DurationMinutes), white},
	}
	if s.SuiteTotal > 0 {
		rows = append(rows,
			tableRow{"Suites", fmt.Sprint(s.SuiteTotal), white},
			tableRow{"Passed Suites", fmt.Sprint(s.SuitePassed), green},
			tableRow{"Failed Suites", fmt.Sprint(s.SuiteFailed), red},
			tableRow{"Skipped Suites", fmt.Sprint(s.SuiteSkipped), yellow},
		)
	}

	fmt.Fprintln(f.out, tableTop)
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, tableMiddle)
		}
	}
	fmt.Fprintln(f.out, tableBottom)

	fmt.Fprintln(f.out)
	if s.Failed == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d test(s) failed\n", s.Failed)

	if failed := report.FailedTests(); len(failed) > 0 {
		fmt.Fprintln(f.out)
		f.printFailedTestsTree(failed)
	}
}

// PrintStatistics prints the suite and tag statistics of a native report
func (f *Formatter) PrintStatistics(stats *domain.Statistics) {
	if stats == nil {
		return
	}
	f.printStatGroup("Statistics by Suite", stats.Suites)
	f.printStatGroup("Statistics by Tag", stats.Tags)
	f.printStatGroup("Combined Tag Statistics", stats.Combined)
}

func (f *Formatter) printStatGroup(title string, stats []domain.Stat) {
	if len(stats) == 0 {
		return
	}
	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, title)
	for _, st := range stats {
		fmt.Fprintf(f.out, "  %-40s ", st.Name)
		green.Fprintf(f.out, "%4d pass ", st.Passed)
		red.Fprintf(f.out, "%4d fail ", st.Failed)
		yellow.Fprintf(f.out, "%4d skip", st.Skipped)
		fmt.Fprintln(f.out)
	}
}

// PrintNotices prints parser notices such as unsupported file types
func (f *Formatter) PrintNotices(notices []string) {
	for _, n := range notices {
		yellow.Fprintln(f.out, n)
	}
}

// TreeNode represents a suite in the failed tests tree
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.TestResult
}

// printFailedTestsTree prints failed tests grouped under their (dotted) suite path
func (f *Formatter) printFailedTestsTree(failures []domain.TestResult) {
	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for _, failure := range failures {
		parent, _ := splitDisplayName(failure.DisplayName)
		current := root
		for _, part := range strings.Split(parent, ".") {
			if part == "" {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{Name: part, Children: make(map[string]*TreeNode)}
			}
			current = current.Children[part]
		}
		current.Failures = append(current.Failures, failure)
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	count := len(keys) + len(node.Failures)
	i := 0
	for _, key := range keys {
		child := node.Children[key]
		connector, next := treeConnector(prefix, i == count-1)
		cyan.Fprintf(f.out, "%s%s\n", connector, child.Name)
		f.printTreeNode(child, next)
		i++
	}
	for _, failure := range node.Failures {
		connector, next := treeConnector(prefix, i == count-1)
		_, name := splitDisplayName(failure.DisplayName)
		red.Fprintf(f.out, "%s%s\n", connector, name)
		if failure.Message != "" {
			fmt.Fprintf(f.out, "%s%s\n", next, failure.Message)
		}
		i++
	}
}

func treeConnector(prefix string, last bool) (connector, next string) {
	if last {
		return prefix + "└── ", prefix + "    "
	}
	return prefix + "├── ", prefix + "│   "
}

// splitDisplayName splits "<parent> - <test>" at the first separator
func splitDisplayName(name string) (parent, test string) {
	parent, test, ok := strings.Cut(name, " - ")
	if !ok {
		return "", name
	}
	return parent, test
}

func centered(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s
}
