package llm

import (
	"encoding/json"
	"strings"
)

// Schema types, JSON Schema spelling.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Schema is the subset of JSON Schema the providers understand. It marshals
// to plain JSON Schema for HTTP providers and converts to genai.Schema for
// Gemini.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	MinItems    *int               `json:"minItems,omitempty"`
	MaxItems    *int               `json:"maxItems,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`

	// Order lists property names in the order the model should emit them.
	Order []string `json:"-"`
}

// IntPtr and FloatPtr build the optional bounds
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }

// JSON returns the indented JSON Schema document
func (s *Schema) JSON() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// SchemaInstruction renders schema as a plain-text directive for providers
// that cannot enforce it natively.
func SchemaInstruction(s *Schema) string {
	var b strings.Builder
	b.WriteString("Respond with a single JSON object and nothing else. ")
	b.WriteString("No markdown fences, no commentary.")
	if s != nil {
		b.WriteString(" The object must match this JSON Schema:\n")
		b.WriteString(s.JSON())
	}
	return b.String()
}

// withSchemaInstruction appends the schema directive to a system prompt
func withSchemaInstruction(system string, req *CompletionRequest) string {
	if !req.JSON {
		return system
	}
	directive := SchemaInstruction(req.Schema)
	if system == "" {
		return directive
	}
	return system + "\n\n" + directive
}
