package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(config), model: "gpt-4o-mini"}
}

// capture decodes each request body into *body and answers with content.
func capture(t *testing.T, body *map[string]any, content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(body))
		openAIReply(w, content, finish)
	}
}

func TestOpenAIProvider_PalmReading(t *testing.T) {
	var body map[string]any
	p := newTestOpenAIProvider(t, capture(t, &body, palmJSON, "stop"))

	resp, err := p.Generate(context.Background(), Request{
		System:      "You are a gentle palm reader.",
		Messages:    []Message{{Role: RoleUser, Content: "Read this palm.", Images: []Image{testPNG}}},
		Schema:      palmSchema,
		MaxTokens:   1200,
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.JSONEq(t, palmJSON, resp.Text())
	assert.Equal(t, Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	format := body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, palmSchema.Name, format["json_schema"].(map[string]any)["name"])

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])

	parts := msgs[1].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	img := parts[0].(map[string]any)
	assert.Equal(t, "image_url", img["type"])
	url := img["image_url"].(map[string]any)
	assert.True(t, strings.HasPrefix(url["url"].(string), "data:image/png;base64,"))
	assert.Equal(t, "high", url["detail"])
	assert.Equal(t, "Read this palm.", parts[1].(map[string]any)["text"])
}

func TestOpenAIProvider_ChatUsesPlainContent(t *testing.T) {
	var body map[string]any
	p := newTestOpenAIProvider(t, capture(t, &body, "Breathe.", "stop"))

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{
			{Role: RoleUser, Content: "Will I be happy?"},
			{Role: RoleAssistant, Content: "Happiness is a practice."},
			{Role: RoleUser, Content: "And my work?"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Breathe.", resp.Text())

	msgs := body["messages"].([]any)
	require.Len(t, msgs, 3)
	assert.Equal(t, "assistant", msgs[1].(map[string]any)["role"])
	assert.Equal(t, "And my work?", msgs[2].(map[string]any)["content"])
}

func TestOpenAIProvider_ContentFilter(t *testing.T) {
	var body map[string]any
	p := newTestOpenAIProvider(t, capture(t, &body, "", "content_filter"))

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Read this palm.", Images: []Image{testPNG}}},
	})
	var filtered *ErrContentFiltered
	require.ErrorAs(t, err, &filtered)
	assert.Equal(t, "content_filter", filtered.Reason)
}

func TestOpenAIProvider_TruncatedIsReported(t *testing.T) {
	var body map[string]any
	p := newTestOpenAIProvider(t, capture(t, &body, "Your heart line", "length"))

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Tell me more"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "max_tokens", resp.StopReason)
}

func TestOpenAIProvider_HTTPErrors(t *testing.T) {
	jsonErr := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "error", "message": http.StatusText(status)},
			})
		}
	}

	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  any
	}{
		{"rate limit", jsonErr(http.StatusTooManyRequests), new(*ErrRateLimit)},
		{"bad key", jsonErr(http.StatusUnauthorized), new(*ErrUnauthorized)},
		{"server error", jsonErr(http.StatusInternalServerError), new(*ErrProviderUnavailable)},
		{"proxy rejects large photo", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			w.Write([]byte("<html>413 Request Entity Too Large</html>"))
		}, new(*ErrRequestTooLarge)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "Read this palm.", Images: []Image{testPNG}}},
			})
			require.Error(t, err)
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o", BaseURL: "https://llm.example/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)
}
