package palm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aipalm/aipalm/internal/llm"
)

// Purpose labels analysis requests in the LLM event log.
const Purpose = llm.PurposePalmAnalysis

// Config controls generation parameters for analysis requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard analysis parameters.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1200,
		Temperature: 0.5,
	}
}

// Service implements Analyzer on top of a vision-capable llm.Provider.
type Service struct {
	provider llm.Provider
	config   Config
}

// NewService creates an analysis service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// Analyze implements Analyzer.
func (s *Service) Analyze(ctx context.Context, img Image, lang string) (*Reading, error) {
	if lang == "" {
		lang = "en"
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	// Schema stays unset so free-text answers reach Parse.
	req := llm.Request{
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: buildPrompt(lang),
			Images:  []llm.Image{{MediaType: img.MediaType, Data: img.Data}},
		}},
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, &GatewayError{Model: s.provider.ModelID(), Err: err}
	}
	return Parse(resp.Text()), nil
}

// Parse turns raw model output into a Reading. A response that is exactly
// a valid reading object is used as is. Otherwise the span from the first
// '{' to the last '}' is decoded and kept if it fills at least one reading
// field. Failing both, the whole text becomes the summary and each line
// gets BlendedPlaceholder.
func Parse(raw string) *Reading {
	trimmed := strings.TrimSpace(raw)

	var r Reading
	if llm.Decode(ReadingSchema, json.RawMessage(trimmed), &r) == nil {
		return &r
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		var r Reading
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &r); err == nil && !r.empty() {
			return &r
		}
	}

	return &Reading{
		HeartLine: BlendedPlaceholder,
		HeadLine:  BlendedPlaceholder,
		LifeLine:  BlendedPlaceholder,
		FateLine:  BlendedPlaceholder,
		Summary:   raw,
	}
}
