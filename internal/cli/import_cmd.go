package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load sites from a JSON snapshot (- reads stdin)",
		Long: "Upsert every site of a snapshot written by `export json`. Stored phases\n" +
			"are kept as exported. An unreadable snapshot imports nothing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening snapshot: %w", err)
				}
				defer f.Close()
				r = f
			}

			result, err := app.Import.ImportSnapshot(cmd.Context(), r)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d site(s): %d created, %d updated\n",
				result.Created+result.Updated, result.Created, result.Updated)
			return nil
		},
	}
}
