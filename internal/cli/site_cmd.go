package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/solplan/internal/cli/formatter"
	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/alexanderramin/solplan/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newSiteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "site",
		Aliases: []string{"sites"},
		Short:   "Manage solar sites",
	}

	cmd.AddCommand(
		newSiteAddCmd(app),
		newSiteListCmd(app),
		newSiteInspectCmd(app),
		newSiteUpdateCmd(app),
		newSiteRemoveCmd(app),
	)

	return cmd
}

// formCancelled turns an aborted form into a quiet no-op.
func formCancelled(cmd *cobra.Command, err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
		return nil
	}
	return err
}

func printSiteSummary(cmd *cobra.Command, verb string, p *domain.Project) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s site %s [%s] with %d phases\n", verb, p.Name, p.DisplayID(), len(p.Phases))
	if cod, ok := p.CommercialOperationDate(); ok {
		fmt.Fprintf(out, "Commercial operation: %s\n", formatter.FormatDate(cod))
	}
}

func newSiteAddCmd(app *App) *cobra.Command {
	var flags siteFlags
	var useForm bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a site and compute its phases",
		Long: "Create a site from flags, or from an interactive form when --name is\n" +
			"omitted on a terminal. Phases are computed on save.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Config: domain.ProjectConfig{
					CapacityKWc: app.Config.DefaultCapacity,
					Overrides:   map[domain.PhaseID]domain.PhaseOverride{},
				},
			}
			if err := flags.apply(cmd.Flags(), p); err != nil {
				return err
			}

			if useForm || (!cmd.Flags().Changed("name") && app.interactive()) {
				if err := runSiteForm(app, "New site", p); err != nil {
					return formCancelled(cmd, err)
				}
			}

			if err := app.Sites.Create(cmd.Context(), p); err != nil {
				return err
			}
			printSiteSummary(cmd, "Created", p)
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&useForm, "form", false, "Open the interactive form pre-filled from flags")

	return cmd
}

func newSiteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List sites with their commercial operation date",
		RunE: func(cmd *cobra.Command, args []string) error {
			sites, err := app.Sites.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(sites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sites found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSiteList(sites, app.now()))
			return nil
		},
	}
}

func newSiteInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a site's configuration and phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSiteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Sites.GetByID(ctx, id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSiteInspect(p))
			return nil
		},
	}
}

func newSiteUpdateCmd(app *App) *cobra.Command {
	var flags siteFlags
	var useForm bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a site's configuration and recompute its phases",
		Long: "Apply the given flags to a stored site. Without flags on a terminal the\n" +
			"interactive form opens pre-filled with the stored configuration.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSiteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Sites.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if err := flags.apply(cmd.Flags(), p); err != nil {
				return err
			}

			if useForm || (cmd.Flags().NFlag() == 0 && app.interactive()) {
				if err := runSiteForm(app, "Edit site", p); err != nil {
					return formCancelled(cmd, err)
				}
			}

			if err := app.Sites.Update(ctx, p); err != nil {
				return err
			}
			printSiteSummary(cmd, "Updated", p)
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&useForm, "form", false, "Open the interactive form pre-filled from the site")

	return cmd
}

func newSiteRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a site and its phases",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSiteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Sites.GetByID(ctx, id)
			if err != nil {
				return err
			}

			confirmed := yes
			if !confirmed && app.interactive() {
				if err := runForm(wizardConfirm(fmt.Sprintf("Remove site %s?", p.Name), &confirmed)); err != nil {
					return formCancelled(cmd, err)
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}

			if err := app.Sites.Delete(ctx, id, confirmed); err != nil {
				if errors.Is(err, service.ErrConfirmationRequired) {
					return fmt.Errorf("%w: pass --yes to remove %s", err, p.Name)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed site %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
