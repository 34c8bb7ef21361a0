package cli

import (
	"fmt"

	"github.com/alexanderramin/solplan/internal/cli/formatter"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var flags siteFlags

	cmd := &cobra.Command{
		Use:   "plan [ID]",
		Short: "Preview a phase schedule without saving it",
		Long: "Compute phases for the configuration given by flags. With a site ID\n" +
			"the stored configuration is the starting point, so flags act as a\n" +
			"what-if on that site. Nothing is saved.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := &domain.Project{
				Config: domain.ProjectConfig{
					CapacityKWc: app.Config.DefaultCapacity,
					Overrides:   map[domain.PhaseID]domain.PhaseOverride{},
				},
			}
			if len(args) == 1 {
				id, err := resolveSiteID(ctx, app, args[0])
				if err != nil {
					return err
				}
				if p, err = app.Sites.GetByID(ctx, id); err != nil {
					return err
				}
			}

			if err := flags.apply(cmd.Flags(), p); err != nil {
				return err
			}

			schedule, err := app.Sites.Plan(ctx, p.Config)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(schedule))
			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}
