package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aipalm/aipalm/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with timeout,
// retry, rate limit and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	return newProvider(ctx, cfg, NewLimiter(cfg.RequestsPerMinute), eventRepo, logger)
}

func newProvider(ctx context.Context, cfg Config, limiter *rate.Limiter, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewOfflineProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → retry → rate limit → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	limited := WithRateLimit(logged, limiter)
	retried := WithRetry(limited, cfg.Retry, logger)
	return WithTimeout(retried, cfg.Timeout), nil
}

// Providers pairs the text model used for chat with the vision model used
// for palm analysis. They may be the same model.
type Providers struct {
	Text   Provider
	Vision Provider
}

// NewProviders builds the text and vision providers for cfg.
func NewProviders(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Providers, error) {
	if err := cfg.Validate(); err != nil {
		return Providers{}, err
	}
	limiter := NewLimiter(cfg.RequestsPerMinute)
	text, err := newProvider(ctx, cfg, limiter, eventRepo, logger)
	if err != nil {
		return Providers{}, err
	}
	vision, err := newProvider(ctx, cfg.ForVision(), limiter, eventRepo, logger)
	if err != nil {
		return Providers{}, err
	}
	return Providers{Text: text, Vision: vision}, nil
}
