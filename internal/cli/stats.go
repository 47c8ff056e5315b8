package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/chemocompanion/internal/services"
)

func newStatsCommand(opts *RootOptions) *cobra.Command {
	var frame, symptomType string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize symptom trends over a time frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeFrame, err := services.ParseTimeFrame(frame)
			if err != nil {
				return err
			}

			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.Stats.BuildReport(cmd.Context(), timeFrame, symptomType, opts.now(), app.Location)
			if err != nil {
				return err
			}
			renderReport(cmd, report, app)
			return nil
		},
	}
	cmd.Flags().StringVar(&frame, "frame", string(services.TimeFrameWeek), "week, month, three_months or year")
	cmd.Flags().StringVar(&symptomType, "symptom", "", "severity detail for one symptom type")
	return cmd
}

func renderReport(cmd *cobra.Command, report services.AnalyticsReport, app *App) {
	out := cmd.OutOrStdout()

	renderHeading(out, "Key stats")
	if report.HasMostCommon {
		fmt.Fprintf(out, "Most common symptom: %s\n", report.MostCommonType)
	} else {
		fmt.Fprintln(out, "Most common symptom: none")
	}
	fmt.Fprintf(out, "Average severity: %s\n", formatFloat(report.AverageSeverity))
	fmt.Fprintf(out, "Total logs: %d\n", report.TotalLogs)

	renderHeading(out, fmt.Sprintf("Daily average severity (%s to %s)",
		report.From.In(app.Location).Format(displayDateLayout),
		report.To.In(app.Location).Format(displayDateLayout)))
	averages := make([][]string, 0, len(report.DailyAverages))
	for _, day := range report.DailyAverages {
		averages = append(averages, []string{day.Day.Format(displayDateLayout), formatFloat(day.Average), strconv.Itoa(day.Count)})
	}
	renderTable(out, []string{"Day", "Average", "Logs"}, averages)

	renderHeading(out, "Symptom frequency")
	frequencies := make([][]string, 0, len(report.Frequencies))
	for _, frequency := range report.Frequencies {
		frequencies = append(frequencies, []string{frequency.SymptomType, strconv.Itoa(frequency.Count)})
	}
	renderTable(out, []string{"Symptom", "Count"}, frequencies)

	if report.DetailType != "" {
		renderHeading(out, "Severity detail: "+report.DetailType)
		points := make([][]string, 0, len(report.Detail))
		for _, point := range report.Detail {
			points = append(points, []string{point.Date.In(app.Location).Format(displayDateTimeLayout), strconv.Itoa(point.Severity)})
		}
		renderTable(out, []string{"Date", "Severity"}, points)
	}
}
