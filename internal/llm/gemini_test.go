package llm

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.0-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-2.5-flash", geminiModels))
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "Read this palm.", Images: []Image{testPNG}},
		{Role: RoleAssistant, Content: "A balanced hand."},
		{Role: RoleUser, Images: []Image{testPNG}},
	})
	require.Len(t, contents, 3)

	first := contents[0]
	assert.Equal(t, genai.RoleUser, first.Role)
	require.Len(t, first.Parts, 2)
	require.NotNil(t, first.Parts[0].InlineData)
	assert.Equal(t, "image/png", first.Parts[0].InlineData.MIMEType)
	assert.Equal(t, testPNG.Data, first.Parts[0].InlineData.Data)
	assert.Equal(t, "Read this palm.", first.Parts[1].Text)

	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Len(t, contents[2].Parts, 1, "image-only turn has no empty text part")
}

func TestBuildGeminiSchema_PalmReading(t *testing.T) {
	schema := buildGeminiSchema(palmSchema.Definition)
	assert.Equal(t, genai.TypeObject, schema.Type)
	require.Len(t, schema.Properties, 5)
	for name, prop := range schema.Properties {
		assert.Equal(t, genai.TypeString, prop.Type, name)
	}
	assert.ElementsMatch(t, []string{"heart_line", "head_line", "life_line", "fate_line", "summary"}, schema.Required)
}

func TestBuildGeminiSchema_NestedTypes(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hand":   map[string]any{"type": "string", "enum": []any{"left", "right"}},
			"scores": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
			"ratio":  map[string]any{"type": "number", "description": "line length ratio"},
			"clear":  map[string]any{"type": "boolean"},
		},
	})
	assert.Equal(t, []string{"left", "right"}, schema.Properties["hand"].Enum)
	assert.Equal(t, genai.TypeArray, schema.Properties["scores"].Type)
	assert.Equal(t, genai.TypeInteger, schema.Properties["scores"].Items.Type)
	assert.Equal(t, genai.TypeNumber, schema.Properties["ratio"].Type)
	assert.Equal(t, "line length ratio", schema.Properties["ratio"].Description)
	assert.Equal(t, genai.TypeBoolean, schema.Properties["clear"].Type)
}

func TestBuildGeminiSchema_Keywords(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":     "object",
		"required": []any{"summary", "heart_line"},
		"properties": map[string]any{
			"heart_line": map[string]any{"type": "string", "minLength": 1, "maxLength": 400},
			"summary":    map[string]any{"type": "string"},
			"mount":      map[string]any{"type": []any{"string", "null"}},
			"lines":      map[string]any{"type": "array", "minItems": 4.0, "items": map[string]any{"type": "string"}},
			"age":        map[string]any{"type": "integer", "minimum": 0, "maximum": 120},
		},
	})

	assert.Equal(t, []string{"summary", "heart_line", "age", "lines", "mount"}, schema.PropertyOrdering)

	heart := schema.Properties["heart_line"]
	require.NotNil(t, heart.MinLength)
	assert.EqualValues(t, 1, *heart.MinLength)
	assert.EqualValues(t, 400, *heart.MaxLength)

	mount := schema.Properties["mount"]
	assert.Equal(t, genai.TypeString, mount.Type)
	require.NotNil(t, mount.Nullable)
	assert.True(t, *mount.Nullable)

	assert.EqualValues(t, 4, *schema.Properties["lines"].MinItems)
	assert.InDelta(t, 120, *schema.Properties["age"].Maximum, 0)
	assert.Nil(t, schema.Properties["summary"].Nullable)
}

func geminiReply(text string, finish genai.FinishReason) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: finish,
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     40,
			CandidatesTokenCount: 60,
			TotalTokenCount:      100,
		},
	}
}

func TestGeminiResponse(t *testing.T) {
	t.Run("reading", func(t *testing.T) {
		resp, err := geminiResponse(geminiReply(palmJSON, genai.FinishReasonStop), "gemini-2.0-flash", palmSchema)
		require.NoError(t, err)
		assert.JSONEq(t, palmJSON, string(resp.Content))
		assert.Equal(t, "end", resp.StopReason)
		assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 60, TotalTokens: 100}, resp.Usage)
	})

	t.Run("truncated reading", func(t *testing.T) {
		_, err := geminiResponse(geminiReply(`{"heart_line":"War`, genai.FinishReasonMaxTokens), "m", palmSchema)
		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
	})

	t.Run("truncated chat is kept", func(t *testing.T) {
		resp, err := geminiResponse(geminiReply("Your fate line", genai.FinishReasonMaxTokens), "m", nil)
		require.NoError(t, err)
		assert.Equal(t, "max_tokens", resp.StopReason)
		assert.Equal(t, "Your fate line", resp.Text())
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := geminiResponse(&genai.GenerateContentResponse{}, "m", nil)
		var invalid *ErrInvalidResponse
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("safety stop", func(t *testing.T) {
		_, err := geminiResponse(geminiReply("", genai.FinishReasonSafety), "m", nil)
		var filtered *ErrContentFiltered
		assert.ErrorAs(t, err, &filtered)
	})
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(Request{System: "sys", MaxTokens: 512, Temperature: 0.5, Schema: palmSchema})
	assert.EqualValues(t, 512, cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.5, *cfg.Temperature, 1e-6)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "sys", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.NotNil(t, cfg.ResponseSchema)

	plain := geminiConfig(Request{MaxTokens: 10})
	assert.Nil(t, plain.Temperature)
	assert.Nil(t, plain.SystemInstruction)
	assert.Nil(t, plain.ResponseSchema)
}

func TestGeminiBlockReason(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{"answered", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
		}, ""},
		{"prompt blocked", &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
		}, "SAFETY"},
		{"reply stopped for safety", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}, "SAFETY"},
		{"prohibited content", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonProhibitedContent}},
		}, "PROHIBITED_CONTENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, geminiBlockReason(tt.result))
		})
	}
}

func TestMapGeminiError(t *testing.T) {
	wrapped := func(code int) error {
		return fmt.Errorf("generate: %w", genai.APIError{Code: code, Status: http.StatusText(code)})
	}

	var rl *ErrRateLimit
	assert.ErrorAs(t, mapGeminiError(wrapped(http.StatusTooManyRequests)), &rl)
	var unauth *ErrUnauthorized
	assert.ErrorAs(t, mapGeminiError(wrapped(http.StatusForbidden)), &unauth)
	var tooLarge *ErrRequestTooLarge
	assert.ErrorAs(t, mapGeminiError(wrapped(http.StatusRequestEntityTooLarge)), &tooLarge)
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, mapGeminiError(wrapped(http.StatusServiceUnavailable)), &unavail)
	assert.ErrorAs(t, mapGeminiError(fmt.Errorf("dial tcp: timeout")), &unavail)
}
