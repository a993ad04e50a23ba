package llm

import (
	"sort"

	"google.golang.org/genai"
)

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// buildGeminiSchema converts a JSON Schema document into Gemini's OpenAPI
// subset. A ["T", "null"] type becomes a nullable T and properties are
// ordered required first so replies come back in a stable field order.
// Keywords Gemini has no counterpart for are dropped; validateResponse
// still checks the full schema afterwards.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeString}

	switch t := def["type"].(type) {
	case string:
		s.Type = geminiType(t)
	case []any:
		for _, v := range t {
			if name, _ := v.(string); name == "null" {
				s.Nullable = genai.Ptr(true)
			} else if name != "" {
				s.Type = geminiType(name)
			}
		}
	}
	s.Description, _ = def["description"].(string)
	s.Format, _ = def["format"].(string)
	s.Pattern, _ = def["pattern"].(string)
	s.Enum = stringList(def["enum"])
	s.Required = stringList(def["required"])

	s.MinLength = intKeyword(def, "minLength")
	s.MaxLength = intKeyword(def, "maxLength")
	s.MinItems = intKeyword(def, "minItems")
	s.MaxItems = intKeyword(def, "maxItems")
	if f, ok := number(def["minimum"]); ok {
		s.Minimum = genai.Ptr(f)
	}
	if f, ok := number(def["maximum"]); ok {
		s.Maximum = genai.Ptr(f)
	}

	if items, ok := def["items"].(map[string]any); ok {
		s.Items = buildGeminiSchema(items)
	}
	if props, ok := def["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				s.Properties[name] = buildGeminiSchema(sub)
			}
		}
		s.PropertyOrdering = propertyOrder(s.Required, s.Properties)
	}
	return s
}

func geminiType(name string) genai.Type {
	if t, ok := geminiTypes[name]; ok {
		return t
	}
	return genai.TypeString
}

// propertyOrder lists required properties in declared order, then the
// rest alphabetically.
func propertyOrder(required []string, props map[string]*genai.Schema) []string {
	order := make([]string, 0, len(props))
	seen := make(map[string]bool, len(props))
	for _, name := range required {
		if _, ok := props[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(props)-len(order))
	for name := range props {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func intKeyword(def map[string]any, name string) *int64 {
	f, ok := number(def[name])
	if !ok || f < 0 {
		return nil
	}
	return genai.Ptr(int64(f))
}

// number accepts the numeric types a Go literal or encoding/json produce.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
