package commands

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rfhistoric/internal/cli"
	"rfhistoric/internal/config"
	"rfhistoric/internal/discovery"
	rferrors "rfhistoric/internal/errors"
	"rfhistoric/internal/storage"
	"rfhistoric/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Parse   *ParseCommand
	Summary *SummaryCommand
	View    *ViewCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, fs afero.Fs) *Commands {
	loader := NewReportLoader(cfg, fs, discovery.NewResolver(fs))

	return &Commands{
		Parse:   NewParseCommand(cfg, fs, loader, newDatabaseStorage),
		Summary: NewSummaryCommand(cfg, loader),
		View:    NewViewCommand(cfg, loader, ui.NewTestViewer()),
	}
}

func newDatabaseStorage(cfg storage.MySQLConfig) storage.Storage {
	return storage.NewMySQLStorage(cfg).WithProgress(func(total int) storage.Progress {
		return ui.NewProgressBar(total)
	})
}

// Register registers all commands with cobra. The root command itself parses
// the result files and stores them.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config, v *viper.Viper) {
	pf := rootCmd.PersistentFlags()
	pf.StringP(config.KeyInputPath, "i", config.DefaultInputPath, "Path of result files")
	pf.StringP(config.KeyOutput, "o", config.DefaultOutput, "Name of output.xml, a comma separated list of files, or *.xml / *.json for every report in the input path")
	pf.String(config.KeyReportType, config.DefaultReportType, "Report type to import: RF, allure, junit or statistics")
	pf.StringP(config.KeyProjectName, "n", "", "Name of the project")
	pf.StringP(config.KeyExecutionName, "e", "", "Name of the execution")
	pf.String(config.KeyLogLevel, config.DefaultLogLevel, "Logging level")
	pf.BoolVarP(&flags.FullSuiteName, "fullsuitename", "f", false, "Use full suite name")
	pf.BoolVar(&flags.SuiteSkipped, "suite-skipped", config.DefaultTrackSuiteSkipped, "Count suites that neither passed nor failed as skipped")

	lf := rootCmd.Flags()
	lf.StringP(config.KeyHost, "s", config.DefaultHost, "MySQL hosted address")
	lf.IntP(config.KeyPort, "t", config.DefaultPort, "MySQL port")
	lf.StringP(config.KeyUsername, "u", config.DefaultUsername, "MySQL db user name")
	lf.StringP(config.KeyPassword, "p", config.DefaultPassword, "MySQL db password")
	lf.BoolVarP(&flags.IgnoreResult, "ignoreresult", "g", false, "Ignore execution results, nothing is stored")
	lf.StringVar(&flags.SaveJSON, "save-json", "", "Also write the normalized results to this JSON file")
	lf.StringVar(&flags.SaveXLSX, "save-xlsx", "", "Also export the normalized results to this XLSX workbook")
	lf.BoolVar(&flags.NoDB, "no-db", false, "Do not write to MySQL (use with --save-json or --save-xlsx)")

	for _, key := range []string{
		config.KeyInputPath, config.KeyOutput, config.KeyReportType,
		config.KeyProjectName, config.KeyExecutionName, config.KeyLogLevel,
	} {
		bindFlag(v, pf, key)
	}
	for _, key := range []string{config.KeyHost, config.KeyPort, config.KeyUsername, config.KeyPassword} {
		bindFlag(v, lf, key)
	}

	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = c.Parse.Execute
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// .env from the working directory and the input path, real environment wins
		loaded := config.LoadDotEnv(".", v.GetString(config.KeyInputPath))

		*cfg = *config.Load(v, flags.ToConfigFlags())
		if err := cli.SetupLogging(cfg.LogLevel, os.Stderr); err != nil {
			return rferrors.Configf("invalid log level %q: %v", cfg.LogLevel, err)
		}
		for _, path := range loaded {
			log.Debugf("loaded environment from %s", path)
		}
		log.Debugf("report type %s, input %s, output %s", cfg.ReportType, cfg.InputPath, cfg.Output)
		return nil
	}

	// Summary command
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the normalized results",
		Long:  "Parse the result files and print the execution summary and failed tests without storing anything",
		Args:  cobra.NoArgs,
		RunE:  c.Summary.Execute,
	}
	summaryCmd.Flags().StringVar(&flags.FromJSON, "from-json", "", "Read results written by --save-json instead of parsing result files")
	summaryCmd.Flags().BoolVar(&flags.Stats, "stats", false, "Also print suite and tag statistics")
	rootCmd.AddCommand(summaryCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Browse test results interactively",
		Long:  "Display the tests of a Robot Framework result in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.View.Execute,
	}
	viewCmd.Flags().StringVar(&flags.FromJSON, "from-json", "", "Read results written by --save-json instead of parsing result files")
	rootCmd.AddCommand(viewCmd)
}

func bindFlag(v *viper.Viper, fs *pflag.FlagSet, key string) {
	if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
		log.Warnf("Unable to bind flag %s", key)
	}
}
