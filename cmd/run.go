package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/app"
	"github.com/aipalm/aipalm/internal/chat"
	"github.com/aipalm/aipalm/internal/palm"
	"github.com/aipalm/aipalm/internal/screen"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the interactive app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts := app.Options{
		Settings:        e.store.SettingsRepo(),
		Readings:        e.store.ReadingRepo(),
		Logger:          e.logger,
		Language:        e.cfg.Language,
		HandSelectDelay: e.cfg.Scan.HandSelectDelay,
		Initial:         screen.Splash,
	}

	providers, err := e.providers(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		e.logger.Warn("llm unavailable", zap.Error(err))
	} else {
		opts.Analyzer = palm.NewService(providers.Vision, palm.DefaultConfig())
		opts.Chat = chat.NewService(providers.Text, chat.DefaultConfig(), e.logger)
	}

	e.logger.Info("starting app", zap.Bool("llm_ready", opts.LLMReady()))
	return app.Run(ctx, opts)
}
