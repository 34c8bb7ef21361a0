package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/solplan/internal/cli/formatter"
	"github.com/alexanderramin/solplan/internal/timeline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("interactive timeline requires a terminal")

func newTimelineCmd(app *App) *cobra.Command {
	var months, width int
	var expand []string
	var expandAll, interactive bool

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"gantt"},
		Short:   "Draw every site on a shared month timeline",
		Long: "Draw a Gantt chart of all sites. Collapsed rows stack every phase on\n" +
			"one bar; expanded rows list each phase with its month range and\n" +
			"milestone. Restricted construction months are shaded in the header.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sites, err := app.Sites.List(ctx)
			if err != nil {
				return err
			}

			if months <= 0 {
				months = app.Config.WindowMonths
			}
			window := timeline.NewWindow(sites, months)

			expanded := make(map[string]bool)
			for _, ref := range expand {
				id, err := resolveSiteID(ctx, app, ref)
				if err != nil {
					return err
				}
				expanded[id] = true
			}
			if expandAll {
				for _, s := range sites {
					expanded[s.ID] = true
				}
			}

			if interactive {
				if !app.interactive() {
					return errNotInteractive
				}
				m := newTimelineModel(sites, window, expanded)
				_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
				return err
			}

			chart := formatter.RenderGantt(sites, formatter.GanttOptions{
				Window:   window,
				Width:    width,
				Expanded: expanded,
				Cursor:   -1,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", chart, formatter.RenderLegend())
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "Window length in months (default from config, 36)")
	cmd.Flags().IntVar(&width, "width", 0, "Chart width in columns (default two per month)")
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "Expand a site to one row per phase (repeatable)")
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Expand every site")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the timeline interactively")

	return cmd
}
