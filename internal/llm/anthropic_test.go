package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anthropicServer answers every call with reply and stores the decoded
// request body in *body when body is not nil.
func anthropicServer(t *testing.T, body *map[string]any, reply func(w http.ResponseWriter)) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(body))
		}
		w.Header().Set("Content-Type", "application/json")
		reply(w)
	}))
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stop string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 812, "output_tokens": 140},
		})
	}
}

func anthropicError(status int, header http.Header) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		for k, v := range header {
			w.Header()[k] = v
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": http.StatusText(status)},
		})
	}
}

func TestAnthropicProvider_PalmReading(t *testing.T) {
	var body map[string]any
	p := anthropicServer(t, &body, anthropicMessage(palmJSON, "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:      "You are a gentle palm reader.",
		Messages:    []Message{{Role: RoleUser, Content: "Read this palm.", Images: []Image{testPNG}}},
		Schema:      palmSchema,
		MaxTokens:   1200,
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.JSONEq(t, palmJSON, resp.Text())
	assert.Equal(t, Usage{InputTokens: 812, OutputTokens: 140, TotalTokens: 952}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.EqualValues(t, 1200, body["max_tokens"])
	blocks := body["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, blocks, 2)

	img := blocks[0].(map[string]any)
	assert.Equal(t, "image", img["type"])
	source := img["source"].(map[string]any)
	assert.Equal(t, "base64", source["type"])
	assert.Equal(t, "image/png", source["media_type"])
	assert.Equal(t, testPNG.Base64(), source["data"])

	text := blocks[1].(map[string]any)
	assert.Equal(t, "text", text["type"])
	assert.Equal(t, "Read this palm.", text["text"])
}

func TestAnthropicProvider_ImageOnlyMessageHasNoTextBlock(t *testing.T) {
	msgs := buildAnthropicMessages([]Message{{Role: RoleUser, Images: []Image{testPNG}}})
	require.Len(t, msgs, 1)
	assert.Len(t, msgs[0].Content, 1)
}

func TestAnthropicProvider_ReadingFailsSchema(t *testing.T) {
	p := anthropicServer(t, nil, anthropicMessage(`{"summary":"only"}`, "end_turn"))
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Read this palm."}},
		Schema:    palmSchema,
		MaxTokens: 100,
	})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestAnthropicProvider_Refusal(t *testing.T) {
	p := anthropicServer(t, nil, anthropicMessage("I can't help with that.", "refusal"))
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Read this palm.", Images: []Image{testPNG}}},
		MaxTokens: 100,
	})
	var filtered *ErrContentFiltered
	require.ErrorAs(t, err, &filtered)
	assert.Equal(t, "refusal", filtered.Reason)
}

func TestAnthropicProvider_TruncatedReading(t *testing.T) {
	p := anthropicServer(t, nil, anthropicMessage(`{"heart_line":"Warm and st`, "max_tokens"))
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Read this palm."}},
		Schema:    palmSchema,
		MaxTokens: 100,
	})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, `{"heart_line":"Warm and st`, string(maxTok.Content))
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	p := anthropicServer(t, nil, func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "Your hand is calm. "},
				{"type": "text", "text": "Trust it."},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 1, "output_tokens": 1},
		})
	})
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Anything else?"}},
		MaxTokens: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Your hand is calm. Trust it.", resp.Text())
}

func TestAnthropicParams(t *testing.T) {
	params := anthropicParams("claude-haiku-4-5-20251001", Request{
		System:      "sys",
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	assert.Equal(t, anthropic.Model("claude-haiku-4-5-20251001"), params.Model)
	assert.EqualValues(t, 1000, params.MaxTokens)
	require.Len(t, params.System, 1)
	assert.Equal(t, "sys", params.System[0].Text)
	assert.InDelta(t, 0.7, params.Temperature.Value, 1e-9)

	zero := anthropicParams("m", Request{MaxTokens: 10})
	assert.Empty(t, zero.System)
	assert.False(t, zero.Temperature.Valid())
}

func TestAnthropicProvider_HTTPErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		check  func(t *testing.T, err error)
	}{
		{"rate limit with retry after", http.StatusTooManyRequests, http.Header{"Retry-After": {"2"}}, func(t *testing.T, err error) {
			var rl *ErrRateLimit
			require.ErrorAs(t, err, &rl)
			assert.Equal(t, 2*time.Second, rl.RetryAfter)
		}},
		{"bad key", http.StatusUnauthorized, nil, func(t *testing.T, err error) {
			var unauth *ErrUnauthorized
			assert.ErrorAs(t, err, &unauth)
		}},
		{"photo too large", http.StatusRequestEntityTooLarge, nil, func(t *testing.T, err error) {
			var tooLarge *ErrRequestTooLarge
			assert.ErrorAs(t, err, &tooLarge)
		}},
		{"server error", http.StatusInternalServerError, nil, func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			assert.ErrorAs(t, err, &unavail)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := anthropicServer(t, nil, anthropicError(tt.status, tt.header))
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "Read this palm."}},
				MaxTokens: 100,
			})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-custom", resolveModel("claude-opus-custom", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", (&AnthropicProvider{model: "claude-haiku-4-5-20251001"}).ModelID())
}
