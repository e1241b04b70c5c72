package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rfhistoric/internal/config"
	"rfhistoric/internal/ui"
)

// ViewCommand opens the interactive test viewer
type ViewCommand struct {
	config *config.Config
	loader *ReportLoader
	viewer ui.Viewer
}

// NewViewCommand creates a new view command
func NewViewCommand(cfg *config.Config, loader *ReportLoader, viewer ui.Viewer) *ViewCommand {
	return &ViewCommand{config: cfg, loader: loader, viewer: viewer}
}

// Execute runs the view command on the first report that has test details
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	reports, err := vc.loader.load()
	if err != nil {
		return err
	}

	for _, report := range reports {
		if len(report.Tests) > 0 {
			return vc.viewer.View(report)
		}
	}
	return fmt.Errorf("no test details to show: the %s report type only carries counters", vc.config.ReportType)
}
