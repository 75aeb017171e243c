package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/sant0-9/promptforge/internal/analysis"
)

//go:embed instruction.md
var instructionSource string

var instructionTmpl = template.Must(template.New("instruction").Parse(instructionSource))

// modeFocus adds a line of guidance for the recognized modes
var modeFocus = map[analysis.Mode]string{
	analysis.ModeCoding:   "ask for language, inputs and outputs, constraints, edge cases and tests.",
	analysis.ModeCreative: "ask for voice, audience, form, length and the feeling the piece should leave.",
	analysis.ModeBusiness: "ask for the decision or deliverable, stakeholders, metrics and format.",
}

// BuildInstruction renders the system instruction for a mode. The mode is
// written into the template as given; unrecognized values get no focus line.
func BuildInstruction(mode analysis.Mode) string {
	var b strings.Builder
	err := instructionTmpl.Execute(&b, struct {
		Mode  string
		Focus string
	}{
		Mode:  string(mode),
		Focus: modeFocus[mode],
	})
	if err != nil {
		// The template is static; a failure here is a programming error
		panic(fmt.Sprintf("prompts: render instruction: %v", err))
	}
	return strings.TrimSpace(b.String())
}

// BuildUserPrompt wraps the user's raw text
func BuildUserPrompt(rawText string) string {
	return "User Input: \"" + rawText + "\"\n\nPlease analyze and optimize this prompt according to your system instructions."
}
