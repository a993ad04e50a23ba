package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/config"
	"github.com/aipalm/aipalm/internal/llm"
	"github.com/aipalm/aipalm/internal/logging"
	"github.com/aipalm/aipalm/internal/palm"
	"github.com/aipalm/aipalm/internal/store"
)

// env is what every command needs: configuration, a file logger and the
// open store.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
}

func setup(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := llm.CheckSchema(palm.ReadingSchema); err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}

	logPath := cfg.Logging.Path
	if logPath == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, err
		}
		logPath = filepath.Join(dir, "aipalm.log")
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Path: logPath, Verbose: verbose})
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	logger.Debug("command started",
		zap.String("command", cmd.CommandPath()),
		zap.String("config", cfgPath),
		zap.String("db", dbPath))
	return &env{cfg: cfg, logger: logger, store: st}, nil
}

// providers builds the text and vision providers. LLM requests are logged to
// the store.
func (e *env) providers(ctx context.Context) (llm.Providers, error) {
	p, err := llm.NewProviders(ctx, e.cfg.LLM, e.store.EventRepo(), e.logger)
	if err != nil {
		return llm.Providers{}, fmt.Errorf("LLM provider: %w", err)
	}
	return p, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", zap.Error(err))
	}
	_ = e.logger.Sync()
}
