package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"rfhistoric/internal/config"
	rferrors "rfhistoric/internal/errors"
	"rfhistoric/internal/parser"
	"rfhistoric/internal/storage"
	"rfhistoric/internal/ui"
)

var (
	cyan   = color.New(color.FgCyan)
	yellow = color.New(color.FgYellow)
)

// DatabaseFactory creates the database storage for the configured project
type DatabaseFactory func(cfg storage.MySQLConfig) storage.Storage

// ParseCommand parses the result files and stores the normalized results
type ParseCommand struct {
	config      *config.Config
	fs          afero.Fs
	loader      *ReportLoader
	newDatabase DatabaseFactory
}

// NewParseCommand creates a new parse command
func NewParseCommand(cfg *config.Config, fs afero.Fs, loader *ReportLoader, newDatabase DatabaseFactory) *ParseCommand {
	return &ParseCommand{
		config:      cfg,
		fs:          fs,
		loader:      loader,
		newDatabase: newDatabase,
	}
}

// Execute runs the parse command
func (pc *ParseCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := pc.config

	if cfg.Flags.IgnoreResult {
		cyan.Fprintln(out, "Ignoring execution results...")
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := pc.loader.resolve()
	if err != nil {
		return err
	}

	if cfg.ReportType == parser.TypeRobot {
		cyan.Fprintln(out, "Capturing execution results, This may take few minutes...")
	}
	reports, err := pc.loader.parse(files)
	if errors.Is(err, rferrors.ErrInvalidFileType) {
		yellow.Fprintln(out, err.Error())
		return nil
	}
	if err != nil {
		return err
	}

	formatter := ui.NewFormatter(out)
	for _, report := range reports {
		formatter.PrintNotices(report.Notices)
	}

	storages := pc.storages()
	if len(storages) == 0 {
		log.Warn("Nothing to write: database disabled and no --save-json or --save-xlsx given")
		return nil
	}

	if cfg.ReportType == parser.TypeStatistics {
		fmt.Fprintln(out, "INFO: Writing statistics results")
	} else {
		fmt.Fprintln(out, "INFO: Writing execution results")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := storages.Save(ctx, reports); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	for _, report := range reports {
		log.Infof("Stored %s execution %q: %d tests, %d passed, %d failed",
			report.Type, report.Summary.ExecutionName, report.Summary.Total, report.Summary.Passed, report.Summary.Failed)
	}
	return nil
}

// storages returns the configured outputs: JSON, XLSX, then the database
func (pc *ParseCommand) storages() storage.Multi {
	var m storage.Multi
	if path := pc.config.Flags.SaveJSON; path != "" {
		m = append(m, storage.NewJSONStorage(pc.fs, path))
	}
	if path := pc.config.Flags.SaveXLSX; path != "" {
		m = append(m, storage.NewXLSXStorage(path))
	}
	if !pc.config.Flags.NoDB {
		m = append(m, pc.newDatabase(pc.config.MySQL()))
	}
	return m
}
