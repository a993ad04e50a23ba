package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openrouter", "anthropic", "openai", "gemini", "mock"
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single request including retries. Default: 60s.
	Timeout time.Duration `yaml:"timeout"`

	// RequestsPerMinute caps outgoing calls across text and vision models.
	// Zero disables the limit.
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"`        // Default: "claude-haiku"
	VisionModel string `yaml:"vision_model"` // Default: same as Model
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"` // Default: "gpt-4o-mini"
	VisionModel string `yaml:"vision_model"`
	BaseURL     string `yaml:"base_url"` // Optional. Any OpenAI-compatible API.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"` // Default: "gemini-flash"
	VisionModel string `yaml:"vision_model"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"`        // Default: "liquid/lfm-2.5-1.2b-thinking:free"
	VisionModel string `yaml:"vision_model"` // Default: "allenai/molmo-2-8b:free"
	BaseURL     string `yaml:"base_url"`     // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openrouter",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model:       "liquid/lfm-2.5-1.2b-thinking:free",
			VisionModel: "allenai/molmo-2-8b:free",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ForVision returns a copy of c whose models are the vision models, where
// configured.
func (c Config) ForVision() Config {
	if c.Anthropic.VisionModel != "" {
		c.Anthropic.Model = c.Anthropic.VisionModel
	}
	if c.OpenAI.VisionModel != "" {
		c.OpenAI.Model = c.OpenAI.VisionModel
	}
	if c.Gemini.VisionModel != "" {
		c.Gemini.Model = c.Gemini.VisionModel
	}
	if c.OpenRouter.VisionModel != "" {
		c.OpenRouter.Model = c.OpenRouter.VisionModel
	}
	return c
}

// ApplyEnv overlays AIPALM_* environment variables onto cfg. A malformed
// timeout or request rate is an error.
func ApplyEnv(cfg Config) (Config, error) {
	if p := os.Getenv("AIPALM_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	setFromEnv(&cfg.Anthropic.APIKey, "AIPALM_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "AIPALM_ANTHROPIC_MODEL")
	setFromEnv(&cfg.Anthropic.VisionModel, "AIPALM_ANTHROPIC_VISION_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "AIPALM_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "AIPALM_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.VisionModel, "AIPALM_OPENAI_VISION_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "AIPALM_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "AIPALM_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "AIPALM_GEMINI_MODEL")
	setFromEnv(&cfg.Gemini.VisionModel, "AIPALM_GEMINI_VISION_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "AIPALM_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "AIPALM_OPENROUTER_MODEL")
	setFromEnv(&cfg.OpenRouter.VisionModel, "AIPALM_OPENROUTER_VISION_MODEL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "AIPALM_OPENROUTER_BASE_URL")

	if t := os.Getenv("AIPALM_LLM_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return cfg, fmt.Errorf("parse AIPALM_LLM_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if r := os.Getenv("AIPALM_LLM_RPM"); r != "" {
		n, err := strconv.Atoi(r)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("parse AIPALM_LLM_RPM: %q is not a non-negative integer", r)
		}
		cfg.RequestsPerMinute = n
	}

	return cfg, nil
}

// Discover fills in a provider from the standard API key env vars when the
// configured provider has no key. Lookup order: OpenRouter → Gemini → OpenAI
// → Anthropic. It reports whether a usable provider was found.
func Discover(cfg Config) (Config, bool) {
	if cfg.Validate() == nil {
		return cfg, true
	}

	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return cfg, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("AIPALM_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("AIPALM_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("AIPALM_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("AIPALM_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
