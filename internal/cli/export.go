package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/chemocompanion/internal/logger"
)

func newExportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as CSV or JSON",
	}

	cmd.AddCommand(newExportSymptomsCommand(opts))
	cmd.AddCommand(newExportSessionsCommand(opts))
	return cmd
}

func newExportSymptomsCommand(opts *RootOptions) *cobra.Command {
	var format, from, to, output string
	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "Export symptom logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "csv" && format != "json" {
				return fmt.Errorf("invalid format %q: must be csv or json", format)
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			start, err := parseOptionalDate(from, app.Location)
			if err != nil {
				return err
			}
			end, err := parseOptionalDate(to, app.Location)
			if err != nil {
				return err
			}

			return withOutput(cmd, output, func(writer io.Writer) error {
				if format == "json" {
					return app.Export.SymptomsJSON(cmd.Context(), writer, start, end, app.Location)
				}
				return app.Export.SymptomsCSV(cmd.Context(), writer, start, end, app.Location)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	cmd.Flags().StringVar(&from, "from", "", "range start, inclusive")
	cmd.Flags().StringVar(&to, "to", "", "range end, exclusive")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func newExportSessionsCommand(opts *RootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Export sessions with their checklists as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return withOutput(cmd, output, func(writer io.Writer) error {
				return app.Export.SessionsJSON(cmd.Context(), writer, app.Location)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	logger.Info("export written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Export written to %s\n", path)
	return nil
}
