package llm

import (
	"encoding/json"
	"net/http"
)

var testPNG = Image{MediaType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

const palmJSON = `{"heart_line":"Warm and steady.","head_line":"Clear and curious.",` +
	`"life_line":"Wide and resilient.","fate_line":"Faint, self-directed.","summary":"A balanced hand."}`

var palmSchema = &Schema{
	Name:        "palm-reading-test",
	Description: "Four palm lines and a summary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"heart_line": map[string]any{"type": "string"},
			"head_line":  map[string]any{"type": "string"},
			"life_line":  map[string]any{"type": "string"},
			"fate_line":  map[string]any{"type": "string"},
			"summary":    map[string]any{"type": "string"},
		},
		"required": []any{"heart_line", "head_line", "life_line", "fate_line", "summary"},
	},
}

// openAIReply writes a chat completion carrying content.
func openAIReply(w http.ResponseWriter, content, finish string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "allenai/molmo-2-8b:free",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			},
		},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	})
}
