package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"rfhistoric/internal/config"
	rferrors "rfhistoric/internal/errors"
	"rfhistoric/internal/ui"
)

// SummaryCommand prints the normalized results without storing them
type SummaryCommand struct {
	config *config.Config
	loader *ReportLoader
}

// NewSummaryCommand creates a new summary command
func NewSummaryCommand(cfg *config.Config, loader *ReportLoader) *SummaryCommand {
	return &SummaryCommand{config: cfg, loader: loader}
}

// Execute runs the summary command
func (sc *SummaryCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	reports, err := sc.loader.load()
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
		formatter.PrintSummary(report)
		if sc.config.Flags.Stats {
			formatter.PrintStatistics(report.Statistics)
		}
	}
	return nil
}
