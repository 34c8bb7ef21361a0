package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/solplan/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the portfolio schedule",
	}

	cmd.AddCommand(
		newExportFormatCmd(app, "csv", "Semicolon-separated phase table (UTF-8 with BOM)",
			func(ctx context.Context, w io.Writer) error { return app.Exports.WriteCSV(ctx, w) }),
		newExportFormatCmd(app, "xlsx", "Excel workbook of the phase table",
			func(ctx context.Context, w io.Writer) error { return app.Exports.WriteXLSX(ctx, w) }),
		newExportFormatCmd(app, "json", "Snapshot of every site, readable by import",
			func(ctx context.Context, w io.Writer) error { return app.Exports.WriteSnapshot(ctx, w) }),
	)

	return cmd
}

func newExportFormatCmd(app *App, ext, short string, write func(context.Context, io.Writer) error) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   ext,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "-" {
				return write(cmd.Context(), cmd.OutOrStdout())
			}
			path := output
			if path == "" {
				path = export.FileName(app.now(), ext)
			}
			if err := writeExportFile(cmd.Context(), path, write); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, - for stdout (default solplan_gantt_export_<date>."+ext+")")

	return cmd
}

func writeExportFile(ctx context.Context, path string, write func(context.Context, io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := write(ctx, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
