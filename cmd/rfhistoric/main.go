package main

import (
	"fmt"
	"os"

	"rfhistoric/internal/cli"
	"rfhistoric/internal/cli/commands"
	"rfhistoric/internal/config"
	rferrors "rfhistoric/internal/errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "rfhistoric",
		Short: "Store test execution results for historic reporting",
		Long: `Parse Robot Framework output.xml files, Allure summaries, JUnit XML and statistics JSON,
normalize them into execution, suite and test records and store them in the project's MySQL database.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()
	v := config.NewViper()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, afero.NewOsFs())

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg, v)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(rferrors.ExitCode(err))
	}
}
