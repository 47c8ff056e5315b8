package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/chemocompanion/internal/models"
)

func newChecklistCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Manage pre-appointment checklist items",
	}

	cmd.AddCommand(newChecklistAddCommand(opts))
	cmd.AddCommand(newChecklistListCommand(opts))
	cmd.AddCommand(newChecklistToggleCommand(opts))
	cmd.AddCommand(newChecklistNotesCommand(opts))
	cmd.AddCommand(newChecklistDeleteCommand(opts))
	return cmd
}

func newChecklistAddCommand(opts *RootOptions) *cobra.Command {
	var sessionID, notes string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var owner *string
			if sessionID != "" {
				owner = &sessionID
			}
			item, err := app.Checklist.CreateChecklistItem(cmd.Context(), args[0], notes, owner)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checklist item added: %s\n", item.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "attach the item to a session")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	return cmd
}

func newChecklistListCommand(opts *RootOptions) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checklist items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var filter *string
			if sessionID != "" {
				filter = &sessionID
			}
			items, err := app.Checklist.ChecklistItemsFor(cmd.Context(), filter)
			if err != nil {
				return err
			}
			renderChecklist(cmd, items)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "only items of this session")
	return cmd
}

func newChecklistToggleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip an item between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			item, err := app.Checklist.ToggleChecklistItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", checkbox(item.IsCompleted), item.Title)
			return nil
		},
	}
}

func newChecklistNotesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <id> <notes>",
		Short: "Replace an item's notes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			item, err := app.Checklist.UpdateChecklistItemNotes(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Notes updated: %s\n", item.ID)
			return nil
		},
	}
}

func newChecklistDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Checklist.DeleteChecklistItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checklist item deleted: %s\n", args[0])
			return nil
		},
	}
}

func renderChecklist(cmd *cobra.Command, items []models.ChecklistItem) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		session := ""
		if item.SessionID != nil {
			session = *item.SessionID
		}
		rows = append(rows, []string{item.ID, checkbox(item.IsCompleted), item.Title, session, item.Notes})
	}
	renderTable(cmd.OutOrStdout(), []string{"ID", "Done", "Title", "Session", "Notes"}, rows)
}
