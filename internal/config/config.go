// Package config loads application settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aipalm/aipalm/internal/i18n"
	"github.com/aipalm/aipalm/internal/llm"
)

// Config holds all aipalm configuration.
type Config struct {
	LLM     llm.Config    `yaml:"llm"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Scan    ScanConfig    `yaml:"scan"`

	// Language is used until the user picks one in the app.
	Language string `yaml:"language"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	// DBPath empty means store.DefaultDBPath.
	DBPath string `yaml:"db_path"`
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	// Path empty means aipalm.log in the data directory.
	Path string `yaml:"path"`
}

// ScanConfig tunes the palm scan flow.
type ScanConfig struct {
	// HandSelectDelay is the pause between picking a hand and showing the
	// guide. Zero disables it.
	HandSelectDelay time.Duration `yaml:"hand_select_delay"`

	// Parallelism bounds concurrent analyses in `aipalm scan`.
	Parallelism int `yaml:"parallelism"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LLM:     llm.DefaultConfig(),
		Logging: LoggingConfig{Level: "info"},
		Scan: ScanConfig{
			HandSelectDelay: 300 * time.Millisecond,
			Parallelism:     2,
		},
		Language: i18n.DefaultLanguage,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/aipalm/config.yaml, falling back to
// ~/.config/aipalm/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "aipalm", "config.yaml"), nil
}

// Load reads path over the defaults, then applies AIPALM_* environment
// overrides and provider key discovery. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.LLM, _ = llm.Discover(cfg.LLM)
	return cfg, cfg.Validate()
}

// Save writes cfg as YAML, creating the parent directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnv overlays AIPALM_* variables. Malformed numbers and durations are
// errors, like malformed YAML.
func (c *Config) applyEnv() error {
	llmCfg, err := llm.ApplyEnv(c.LLM)
	if err != nil {
		return err
	}
	c.LLM = llmCfg

	if p := os.Getenv("AIPALM_DB"); p != "" {
		c.Storage.DBPath = p
	}
	if l := os.Getenv("AIPALM_LOG_LEVEL"); l != "" {
		c.Logging.Level = l
	}
	if p := os.Getenv("AIPALM_LOG_FILE"); p != "" {
		c.Logging.Path = p
	}
	if l := os.Getenv("AIPALM_LANGUAGE"); l != "" {
		c.Language = l
	}
	if d := os.Getenv("AIPALM_HAND_SELECT_DELAY"); d != "" {
		v, err := time.ParseDuration(d)
		if err != nil {
			return fmt.Errorf("parse AIPALM_HAND_SELECT_DELAY: %w", err)
		}
		c.Scan.HandSelectDelay = v
	}
	if n := os.Getenv("AIPALM_SCAN_PARALLELISM"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil {
			return fmt.Errorf("parse AIPALM_SCAN_PARALLELISM: %w", err)
		}
		c.Scan.Parallelism = v
	}
	return nil
}

// Validate checks values that do not depend on credentials. Missing API
// keys are reported later, when a provider is first needed, so the app can
// still start and show its offline screens.
func (c Config) Validate() error {
	if c.Scan.HandSelectDelay < 0 {
		return fmt.Errorf("scan.hand_select_delay must not be negative, got %s", c.Scan.HandSelectDelay)
	}
	if c.Scan.Parallelism < 1 {
		return fmt.Errorf("scan.parallelism must be at least 1, got %d", c.Scan.Parallelism)
	}
	if c.Language != "" && !i18n.IsSupported(c.Language) {
		return fmt.Errorf("language %q is not supported", c.Language)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
