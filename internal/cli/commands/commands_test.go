package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfhistoric/internal/cli"
	"rfhistoric/internal/config"
	"rfhistoric/internal/discovery"
	"rfhistoric/internal/domain"
	rferrors "rfhistoric/internal/errors"
	"rfhistoric/internal/storage"
)

const checkoutOutput = `<?xml version="1.0" encoding="UTF-8"?>
<robot generator="Robot 6.1.1 (Python 3.11.4 on linux)" generated="20240101 10:00:00.000" rpa="false" schemaversion="4">
<suite id="s1" name="Checkout" source="/tests/checkout.robot">
<test id="s1-t1" name="Pay By Card" line="3">
<tag>smoke</tag>
<status status="PASS" starttime="20240101 10:00:00.000" endtime="20240101 10:00:10.000"/>
</test>
<test id="s1-t2" name="Refund" line="8">
<status status="FAIL" starttime="20240101 10:00:10.000" endtime="20240101 10:01:00.000">Refund rejected</status>
</test>
<status status="FAIL" starttime="20240101 10:00:00.000" endtime="20240101 10:01:00.000"/>
</suite>
<statistics>
<total>
<stat pass="1" fail="1" skip="0">All Tests</stat>
</total>
</statistics>
<errors>
</errors>
</robot>
`

type recordingStorage struct {
	config  storage.MySQLConfig
	reports []*domain.Report
	calls   int
	err     error
}

func (r *recordingStorage) Save(_ context.Context, reports []*domain.Report) error {
	r.calls++
	r.reports = append(r.reports, reports...)
	return r.err
}

type recordingViewer struct {
	viewed *domain.Report
}

func (r *recordingViewer) View(report *domain.Report) error {
	r.viewed = report
	return nil
}

type fixture struct {
	fs     afero.Fs
	cfg    *config.Config
	db     *recordingStorage
	loader *ReportLoader
	parse  *ParseCommand
	out    *bytes.Buffer
	cmd    *cobra.Command
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	color.NoColor = true

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}

	cfg := config.New()
	cfg.InputPath = "/results"
	cfg.ProjectName = "shop"
	cfg.ExecutionName = "nightly"

	f := &fixture{fs: fs, cfg: cfg, db: &recordingStorage{}, out: &bytes.Buffer{}}
	f.loader = NewReportLoader(cfg, fs, discovery.NewResolver(fs))
	f.parse = NewParseCommand(cfg, fs, f.loader, func(c storage.MySQLConfig) storage.Storage {
		f.db.config = c
		return f.db
	})
	f.cmd = &cobra.Command{}
	f.cmd.SetOut(f.out)
	return f
}

func TestParseCommand_Robot(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/output.xml": checkoutOutput})

	require.NoError(t, f.parse.Execute(f.cmd, nil))

	assert.Contains(t, f.out.String(), "Capturing execution results, This may take few minutes...")
	assert.Contains(t, f.out.String(), "INFO: Writing execution results")

	require.Equal(t, 1, f.db.calls)
	require.Len(t, f.db.reports, 1)
	report := f.db.reports[0]
	assert.Equal(t, "nightly", report.Summary.ExecutionName)
	assert.Equal(t, 2, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Len(t, report.Tests, 2)

	assert.Equal(t, "shop", f.db.config.Project)
	assert.Equal(t, config.DefaultHost, f.db.config.Host)
	assert.Equal(t, config.DefaultPort, f.db.config.Port)
}

func TestParseCommand_IgnoreResult(t *testing.T) {
	f := newFixture(t, nil)
	f.cfg.Flags.IgnoreResult = true
	f.cfg.ProjectName = ""

	require.NoError(t, f.parse.Execute(f.cmd, nil))
	assert.Contains(t, f.out.String(), "Ignoring execution results...")
	assert.Zero(t, f.db.calls)
}

func TestParseCommand_MissingProject(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/output.xml": checkoutOutput})
	f.cfg.ProjectName = ""

	err := f.parse.Execute(f.cmd, nil)
	require.Error(t, err)
	assert.Equal(t, rferrors.KindConfig, rferrors.KindOf(err))
	assert.Equal(t, 2, rferrors.ExitCode(err))
	assert.Zero(t, f.db.calls)
}

func TestParseCommand_MissingFiles(t *testing.T) {
	f := newFixture(t, nil)

	err := f.parse.Execute(f.cmd, nil)
	require.Error(t, err)
	assert.Equal(t, rferrors.KindMissingInput, rferrors.KindOf(err))
	assert.Contains(t, err.Error(), "/results/output.xml")
	assert.NotContains(t, f.out.String(), "Capturing execution results")
	assert.Zero(t, f.db.calls)
}

func TestParseCommand_UnsupportedType(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/output.xml": checkoutOutput})
	f.cfg.ReportType = "xunit"

	err := f.parse.Execute(f.cmd, nil)
	require.Error(t, err)
	assert.Equal(t, "report_type of xunit is not supported.", err.Error())
	assert.Zero(t, f.db.calls)
}

func TestParseCommand_AllureInvalidFileType(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/summary.txt": "total=3"})
	f.cfg.ReportType = "allure"
	f.cfg.Output = "summary.txt"

	require.NoError(t, f.parse.Execute(f.cmd, nil))

	assert.Contains(t, f.out.String(), "Invalid file type. Please provide either .xml or .json file.")
	assert.NotContains(t, f.out.String(), "Capturing execution results")
	require.Len(t, f.db.reports, 1)
	assert.Equal(t, domain.ExecutionSummary{ExecutionName: "nightly", ProjectName: "shop"}, f.db.reports[0].Summary)
}

func TestParseCommand_StatisticsInvalidFileType(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/stats.xml": "<stats/>"})
	f.cfg.ReportType = "statistics"
	f.cfg.Output = "stats.xml"

	require.NoError(t, f.parse.Execute(f.cmd, nil))

	assert.Contains(t, f.out.String(), "Invalid file type. Please provide a .json file.")
	assert.NotContains(t, f.out.String(), "INFO: Writing")
	assert.Zero(t, f.db.calls)
}

func TestParseCommand_Statistics(t *testing.T) {
	f := newFixture(t, map[string]string{
		"/results/stats.json": `{"property":[{"name":"TotalTestCount","value":"4"},{"name":"PassedTestCount","value":3},{"name":"FailedTestCount","value":1}]}`,
	})
	f.cfg.ReportType = "statistics"
	f.cfg.Output = "stats.json"

	require.NoError(t, f.parse.Execute(f.cmd, nil))

	assert.Contains(t, f.out.String(), "INFO: Writing statistics results")
	require.Len(t, f.db.reports, 1)
	assert.Equal(t, 4, f.db.reports[0].Summary.Total)
}

func TestParseCommand_SaveJSONWithoutDatabase(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/output.xml": checkoutOutput})
	f.cfg.Flags.NoDB = true
	f.cfg.Flags.SaveJSON = "/exports/results.json"

	require.NoError(t, f.parse.Execute(f.cmd, nil))
	assert.Zero(t, f.db.calls)

	output, err := storage.NewJSONStorage(f.fs, "/exports/results.json").Load()
	require.NoError(t, err)
	require.Len(t, output.Reports, 1)
	assert.Equal(t, "nightly", output.Reports[0].Summary.ExecutionName)
	assert.NotEmpty(t, output.Timestamp)
}

func TestParseCommand_NothingToWrite(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/output.xml": checkoutOutput})
	f.cfg.Flags.NoDB = true

	require.NoError(t, f.parse.Execute(f.cmd, nil))
	assert.NotContains(t, f.out.String(), "INFO: Writing")
	assert.Zero(t, f.db.calls)
}

func TestParseCommand_SaveError(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/output.xml": checkoutOutput})
	f.db.err = errors.New("connection refused")

	err := f.parse.Execute(f.cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 1, rferrors.ExitCode(err))
}

func TestSummaryCommand(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/output.xml": checkoutOutput})
	f.cfg.Flags.Stats = true

	require.NoError(t, NewSummaryCommand(f.cfg, f.loader).Execute(f.cmd, nil))

	out := f.out.String()
	assert.Contains(t, out, "Test Execution Summary")
	assert.Contains(t, out, "nightly")
	assert.Contains(t, out, "✗ 1 test(s) failed")
	assert.Contains(t, out, "Refund rejected")
	assert.Contains(t, out, "Statistics by Tag")
	assert.Zero(t, f.db.calls)
}

func TestSummaryCommand_FromJSON(t *testing.T) {
	f := newFixture(t, nil)
	report := &domain.Report{
		Type:    "junit",
		Summary: domain.ExecutionSummary{Total: 3, Passed: 3, ExecutionName: "saved"},
	}
	require.NoError(t, storage.NewJSONStorage(f.fs, "/exports/results.json").Save(context.Background(), []*domain.Report{report}))
	f.cfg.Flags.FromJSON = "/exports/results.json"

	require.NoError(t, NewSummaryCommand(f.cfg, f.loader).Execute(f.cmd, nil))

	assert.Contains(t, f.out.String(), "saved")
	assert.Contains(t, f.out.String(), "✓ All tests passed!")
}

func TestSummaryCommand_FromJSONMissing(t *testing.T) {
	f := newFixture(t, nil)
	f.cfg.Flags.FromJSON = "/exports/none.json"

	assert.Error(t, NewSummaryCommand(f.cfg, f.loader).Execute(f.cmd, nil))
}

func TestSummaryCommand_FromJSONEmpty(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, storage.NewJSONStorage(f.fs, "/exports/empty.json").Save(context.Background(), nil))
	f.cfg.Flags.FromJSON = "/exports/empty.json"

	err := NewSummaryCommand(f.cfg, f.loader).Execute(f.cmd, nil)
	require.Error(t, err)
	assert.Equal(t, "no reports in /exports/empty.json", err.Error())
}

func TestViewCommand(t *testing.T) {
	f := newFixture(t, map[string]string{"/results/output.xml": checkoutOutput})
	viewer := &recordingViewer{}

	require.NoError(t, NewViewCommand(f.cfg, f.loader, viewer).Execute(f.cmd, nil))
	require.NotNil(t, viewer.viewed)
	assert.Len(t, viewer.viewed.Tests, 2)
}

func TestViewCommand_NoTests(t *testing.T) {
	f := newFixture(t, map[string]string{
		"/results/junit.xml": `<testsuite name="unit" tests="2" failures="0" errors="0" skipped="0" time="1"/>`,
	})
	f.cfg.ReportType = "junit"
	f.cfg.Output = "junit.xml"
	viewer := &recordingViewer{}

	err := NewViewCommand(f.cfg, f.loader, viewer).Execute(f.cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "junit")
	assert.Nil(t, viewer.viewed)
}

func TestRegister(t *testing.T) {
	cfg := config.New()
	v := config.NewViper()
	var flags cli.Flags
	rootCmd := &cobra.Command{Use: "rfhistoric"}

	NewCommands(cfg, afero.NewMemMapFs()).Register(rootCmd, &flags, cfg, v)

	for _, name := range []string{"host", "port", "username", "password", "ignoreresult", "save-json", "save-xlsx", "no-db"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	for _, name := range []string{"inputpath", "output", "report_type", "projectname", "executionname", "fullsuitename", "suite-skipped", "log-level"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.True(t, flags.SuiteSkipped)

	summaryCmd, _, err := rootCmd.Find([]string{"summary"})
	require.NoError(t, err)
	assert.NotNil(t, summaryCmd.Flags().Lookup("stats"))
	assert.NotNil(t, summaryCmd.Flags().Lookup("from-json"))

	viewCmd, _, err := rootCmd.Find([]string{"view"})
	require.NoError(t, err)
	assert.Equal(t, "view", viewCmd.Name())

	require.NoError(t, rootCmd.ParseFlags([]string{"-n", "shop", "-t", "3307", "-g"}))
	assert.Equal(t, "shop", v.GetString(config.KeyProjectName))
	assert.Equal(t, 3307, v.GetInt(config.KeyPort))
	assert.True(t, flags.IgnoreResult)
}
