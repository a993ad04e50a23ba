package palm

import (
	"fmt"

	"github.com/aipalm/aipalm/internal/llm"
)

// BlendedPlaceholder fills the line fields when the model answered in
// free text instead of JSON.
const BlendedPlaceholder = "Analysis blended in summary."

const analysisPrompt = `Look at this palm closely. Identify the major lines (Heart Line, Head Line, Life Line, Fate Line) if visible.
Provide a spiritual interpretation of the hand's shape and lines.

Do NOT predict the future. Focus on personality traits, emotional style, and potential energy.
Format the output as valid JSON with these keys:
{
  "heart_line": "interpretation...",
  "head_line": "interpretation...",
  "life_line": "interpretation...",
  "fate_line": "interpretation...",
  "summary": "overall spiritual summary..."
}
Respond in language: %s.`

func buildPrompt(lang string) string {
	return fmt.Sprintf(analysisPrompt, lang)
}

// ReadingSchema describes the JSON object the model is asked to produce.
var ReadingSchema = &llm.Schema{
	Name:        "palm-reading",
	Description: "Spiritual interpretation of the four major palm lines and a summary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"heart_line": map[string]any{
				"type":        "string",
				"description": "Interpretation of the heart line",
			},
			"head_line": map[string]any{
				"type":        "string",
				"description": "Interpretation of the head line",
			},
			"life_line": map[string]any{
				"type":        "string",
				"description": "Interpretation of the life line",
			},
			"fate_line": map[string]any{
				"type":        "string",
				"description": "Interpretation of the fate line",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Overall spiritual summary",
			},
		},
		"required": []any{"heart_line", "head_line", "life_line", "fate_line", "summary"},
	},
}
