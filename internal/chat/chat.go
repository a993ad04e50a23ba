// Package chat answers free-form questions as a calm spiritual guide.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aipalm/aipalm/internal/llm"
)

// Fixed replies used by Reply when the model cannot answer.
const (
	DisconnectedReply = "I sense a disturbance in the connection. Please breathe and try again shortly."
	SilentReply       = "The stars are silent at the moment. Please try again."
)

// Purpose labels chat requests in the LLM event log.
const Purpose = llm.PurposeChat

// ErrEmptyReply is returned by Complete when the model produced no text.
var ErrEmptyReply = errors.New("model returned an empty reply")

const guidePrompt = `You are a wise, empathetic, and spiritual Palm Reader and Astrologer AI.
Your purpose is to provide guidance, reflection, and insight, NOT to predict the future.

ABSOLUTE RULES:
1. NEVER make absolute predictions (e.g., "You will marry next year"). Instead say "You may find opportunities for connection."
2. NEVER give medical, legal, or financial advice.
3. NEVER use fear-based language (e.g., "curse", "danger", "death", "bad omen").
4. ALWAYS keep the tone calm, mystical, supportive, and positive.
5. ALWAYS provide long-form, structured answers.
6. If a user asks about death or health, gently redirect them to professional help and focus on emotional well-being.
7. Focus on "Potential", "Energy", "Tendencies", and "Self-Reflection".

STRUCTURE YOUR RESPONSE:
- Use smooth, flowing sentences.
- Use bullet points for key insights.
- End with a short, uplifting affirmation.`

// SystemPrompt returns the guide prompt localized to lang.
func SystemPrompt(lang string) string {
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf("%s\n\nIMPORTANT: Respond strictly in the following language code: %s.", guidePrompt, lang)
}

// Config controls generation parameters for chat requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard chat parameters.
func DefaultConfig() Config {
	return Config{MaxTokens: 1000, Temperature: 0.7}
}

// Service sends conversations to a text model.
type Service struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// NewService creates a chat service. A nil logger discards output.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, config: cfg, logger: logger}
}

// Complete returns the model's answer to history, the conversation so far
// with the newest user message last. Errors are returned to the caller.
func (s *Service) Complete(ctx context.Context, history []llm.Message, lang string) (string, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      SystemPrompt(lang),
		Messages:    history,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// Reply is Complete without errors: failures are logged and replaced by
// DisconnectedReply, empty answers by SilentReply.
func (s *Service) Reply(ctx context.Context, history []llm.Message, lang string) string {
	text, err := s.Complete(ctx, history, lang)
	switch {
	case errors.Is(err, ErrEmptyReply):
		return SilentReply
	case err != nil:
		s.logger.Warn("chat reply failed", zap.Error(err), zap.String("lang", lang))
		return DisconnectedReply
	}
	return text
}
