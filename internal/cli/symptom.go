package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/chemocompanion/internal/models"
	"github.com/terraincognita07/chemocompanion/internal/services"
)

func newSymptomCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symptom",
		Short: "Log and review symptoms",
	}

	cmd.AddCommand(newSymptomLogCommand(opts))
	cmd.AddCommand(newSymptomListCommand(opts))
	cmd.AddCommand(newSymptomHistoryCommand(opts))
	cmd.AddCommand(newSymptomTypesCommand(opts))
	cmd.AddCommand(newSymptomDeleteCommand(opts))
	cmd.AddCommand(newSymptomCategoriesCommand())
	return cmd
}

func newSymptomLogCommand(opts *RootOptions) *cobra.Command {
	var date, notes string
	var severity int
	cmd := &cobra.Command{
		Use:   "log <symptom>",
		Short: "Record a symptom with a severity from 1 to 10",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			when := opts.now()
			if date != "" {
				when, err = parseDateTime(date, app.Location)
				if err != nil {
					return err
				}
			}

			entry, err := app.Symptoms.LogSymptom(cmd.Context(), services.SymptomInput{
				Date:        when,
				SymptomType: args[0],
				Severity:    severity,
				Notes:       notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%d/10): %s\n", entry.SymptomType, entry.Severity, entry.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&severity, "severity", 0, "severity from 1 to 10")
	cmd.Flags().StringVar(&date, "date", "", "when it happened, defaults to now")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	_ = cmd.MarkFlagRequired("severity")
	return cmd
}

func newSymptomListCommand(opts *RootOptions) *cobra.Command {
	var from, to, day, symptomType string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List symptom logs in a range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var logs []models.SymptomLog
			switch {
			case day != "":
				anchor, err := parseDateTime(day, app.Location)
				if err != nil {
					return err
				}
				logs, err = app.Symptoms.SymptomsForDay(cmd.Context(), anchor, app.Location)
				if err != nil {
					return err
				}
			case from != "" && to != "":
				start, err := parseDateTime(from, app.Location)
				if err != nil {
					return err
				}
				end, err := parseDateTime(to, app.Location)
				if err != nil {
					return err
				}
				logs, err = app.Symptoms.SymptomsInRange(cmd.Context(), start, end, symptomType)
				if err != nil {
					return err
				}
			default:
				start, err := parseOptionalDate(from, app.Location)
				if err != nil {
					return err
				}
				end, err := parseOptionalDate(to, app.Location)
				if err != nil {
					return err
				}
				logs, err = app.Symptoms.FetchLogsForOptionalRange(cmd.Context(), start, end)
				if err != nil {
					return err
				}
				logs = filterSymptomType(logs, symptomType)
			}

			renderSymptomLogs(cmd, logs, app)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "range start, inclusive")
	cmd.Flags().StringVar(&to, "to", "", "range end, exclusive")
	cmd.Flags().StringVar(&day, "day", "", "a single local day, YYYY-MM-DD")
	cmd.Flags().StringVar(&symptomType, "type", "", "only this symptom type")
	return cmd
}

func newSymptomHistoryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show logs grouped by day, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			groups, err := app.Symptoms.SymptomHistory(cmd.Context(), app.Location)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records.")
				return nil
			}
			for _, group := range groups {
				renderHeading(cmd.OutOrStdout(), group.Day.Format("Monday, 2 January 2006"))
				renderSymptomLogs(cmd, group.Logs, app)
			}
			return nil
		},
	}
}

func newSymptomTypesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List every symptom type that has been logged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			types, err := app.Symptoms.ListSymptomTypes(cmd.Context())
			if err != nil {
				return err
			}
			for _, symptomType := range types {
				fmt.Fprintln(cmd.OutOrStdout(), symptomType)
			}
			return nil
		},
	}
}

func newSymptomDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a symptom log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Symptoms.DeleteSymptomLog(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Symptom log deleted: %s\n", args[0])
			return nil
		},
	}
}

func newSymptomCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the symptom catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, category := range models.DefaultSymptomCategories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", category.Name, strings.Join(category.Symptoms, ", "))
			}
			return nil
		},
	}
}

func filterSymptomType(logs []models.SymptomLog, symptomType string) []models.SymptomLog {
	symptomType = strings.TrimSpace(symptomType)
	if symptomType == "" {
		return logs
	}
	name := models.CatalogSymptomName(symptomType)
	filtered := make([]models.SymptomLog, 0, len(logs))
	for _, entry := range logs {
		if entry.SymptomType == name {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func renderSymptomLogs(cmd *cobra.Command, logs []models.SymptomLog, app *App) {
	rows := make([][]string, 0, len(logs))
	for _, entry := range logs {
		category, _ := models.CategoryForSymptom(entry.SymptomType)
		rows = append(rows, []string{
			entry.ID,
			entry.Date.In(app.Location).Format(displayDateTimeLayout),
			entry.SymptomType,
			category,
			strconv.Itoa(entry.Severity),
			entry.Notes,
		})
	}
	renderTable(cmd.OutOrStdout(), []string{"ID", "Date", "Symptom", "Category", "Severity", "Notes"}, rows)
}
