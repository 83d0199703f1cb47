package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/config"
)

// appState is resolved once per invocation by the root PersistentPreRunE.
type appState struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	st := &appState{}
	var logLevel string

	root := &cobra.Command{
		Use:   "portal",
		Short: "Multi-source search aggregation backend",
		Long: `portal fans a query out to free public sources and merges the answers.

Commands:
  portal serve     Run the HTTP API
  portal search    Run one search and print the JSON envelope
  portal migrate   Create the library tables`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger, err := config.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			st.cfg, st.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.logger != nil {
				_ = st.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log", "", "log level override: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(st),
		newSearchCmd(st),
		newMigrateCmd(st),
	)
	return root
}
