package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/chemocompanion/internal/config"
	"github.com/terraincognita07/chemocompanion/internal/logger"
)

// RootOptions holds global flags and the resolved config shared by every
// subcommand.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	Debug      bool

	Now    func() time.Time
	config config.Config
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Now: time.Now})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chemocompanion",
		Short:         "Track chemotherapy sessions, checklists and symptoms",
		Long:          "Local data tool for chemotherapy sessions, pre-appointment checklists and symptom severity logs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = opts.DBPath
			}
			if opts.Debug {
				cfg.Debug = true
			}
			if err := logger.Init(cfg.LoggerConfig()); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger.Debug("config loaded", "db", cfg.DBPath, "timezone", cfg.Timezone)
			opts.config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config.yaml")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the SQLite database")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "debug logging to stderr")

	cmd.AddCommand(newSessionCommand(opts))
	cmd.AddCommand(newChecklistCommand(opts))
	cmd.AddCommand(newSymptomCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newExportCommand(opts))

	return cmd
}

func (opts *RootOptions) openApp() (*App, error) {
	return OpenApp(opts.config)
}

func (opts *RootOptions) now() time.Time {
	if opts.Now == nil {
		return time.Now()
	}
	return opts.Now()
}
