package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/chemocompanion/internal/models"
	"github.com/terraincognita07/chemocompanion/internal/services"
)

func newSessionCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage chemotherapy sessions",
	}

	cmd.AddCommand(newSessionAddCommand(opts))
	cmd.AddCommand(newSessionEditCommand(opts))
	cmd.AddCommand(newSessionListCommand(opts))
	cmd.AddCommand(newSessionUpcomingCommand(opts))
	cmd.AddCommand(newSessionNextCommand(opts))
	cmd.AddCommand(newSessionCalendarCommand(opts))
	cmd.AddCommand(newSessionDeleteCommand(opts))
	return cmd
}

type sessionFlags struct {
	date     string
	location string
	notes    string
}

func (flags *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.date, "date", "", "session date, YYYY-MM-DD HH:MM")
	cmd.Flags().StringVar(&flags.location, "location", "", "clinic or hospital")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "optional notes")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("location")
}

func (flags *sessionFlags) input(location *time.Location) (services.SessionInput, error) {
	date, err := parseDateTime(flags.date, location)
	if err != nil {
		return services.SessionInput{}, err
	}
	return services.SessionInput{Date: date, Location: flags.location, Notes: flags.notes}, nil
}

func newSessionAddCommand(opts *RootOptions) *cobra.Command {
	flags := &sessionFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			input, err := flags.input(app.Location)
			if err != nil {
				return err
			}
			session, err := app.Schedule.CreateSession(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session scheduled: %s\n", session.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newSessionEditCommand(opts *RootOptions) *cobra.Command {
	flags := &sessionFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Reschedule or edit a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			input, err := flags.input(app.Location)
			if err != nil {
				return err
			}
			session, err := app.Schedule.UpdateSession(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session updated: %s\n", session.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newSessionListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			sessions, err := app.Schedule.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			renderSessions(cmd, sessions, app.Location)
			return nil
		},
	}
}

func newSessionUpcomingCommand(opts *RootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List sessions from today on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if !cmd.Flags().Changed("limit") {
				limit = app.Config.UpcomingLimit
			}
			sessions, err := app.Schedule.UpcomingFromToday(cmd.Context(), opts.now(), app.Location, limit)
			if err != nil {
				return err
			}
			renderSessions(cmd, sessions, app.Location)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum sessions to show, 0 for all")
	return cmd
}

func newSessionNextCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			session, found, err := app.Schedule.NextSession(cmd.Context(), opts.now())
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "No upcoming sessions.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Next session: %s at %s\n",
				session.Date.In(app.Location).Format(displayDateTimeLayout), session.Location)
			return nil
		},
	}
}

func newSessionCalendarCommand(opts *RootOptions) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month grid with session days marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			anchor := opts.now()
			if month != "" {
				anchor, err = time.ParseInLocation("2006-01", month, app.Location)
				if err != nil {
					return fmt.Errorf("invalid month %q: use YYYY-MM", month)
				}
			}

			days, err := app.Schedule.SessionCalendar(cmd.Context(), anchor, opts.now(), app.Location)
			if err != nil {
				return err
			}
			renderCalendar(cmd, anchor.In(app.Location), days)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show, YYYY-MM")
	return cmd
}

func newSessionDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session and its checklist items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Schedule.DeleteSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session deleted: %s\n", args[0])
			return nil
		},
	}
}

func renderSessions(cmd *cobra.Command, sessions []models.Session, location *time.Location) {
	rows := make([][]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, []string{
			session.ID,
			session.Date.In(location).Format(displayDateTimeLayout),
			session.Location,
			session.Notes,
		})
	}
	renderTable(cmd.OutOrStdout(), []string{"ID", "Date", "Location", "Notes"}, rows)
}

func renderCalendar(cmd *cobra.Command, month time.Time, days []services.CalendarDayState) {
	out := cmd.OutOrStdout()
	renderHeading(out, month.Format("January 2006"))

	header := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	rows := make([][]string, 0, len(days)/7)
	for start := 0; start+7 <= len(days); start += 7 {
		week := make([]string, 0, 7)
		for _, day := range days[start : start+7] {
			cell := strconv.Itoa(day.Day)
			if !day.InMonth {
				cell = ""
			}
			if day.HasSession() {
				cell += "*"
			}
			if day.IsToday {
				cell = "[" + cell + "]"
			}
			week = append(week, cell)
		}
		rows = append(rows, week)
	}
	renderTable(out, header, rows)
}
