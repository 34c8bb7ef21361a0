package cli

import (
	"time"

	"github.com/alexanderramin/solplan/internal/config"
	"github.com/alexanderramin/solplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sites   service.SiteService
	Exports service.ExportService
	Import  service.ImportService
	Config  config.Config

	// IsInteractive reports whether forms and the interactive timeline may
	// be shown. Nil means never.
	IsInteractive func() bool
	// Now is the clock used for default file names and progress. Nil uses
	// time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "solplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "solplan",
		Short:         "Phase planner for solar installation sites",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSiteCmd(app),
		newPlanCmd(app),
		newTimelineCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}
