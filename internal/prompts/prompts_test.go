package prompts

import (
	"strings"
	"testing"

	"github.com/sant0-9/promptforge/internal/analysis"
)

func TestBuildInstruction(t *testing.T) {
	tests := []struct {
		mode      analysis.Mode
		wantFocus bool
	}{
		{analysis.ModeGeneral, false},
		{analysis.ModeCoding, true},
		{analysis.ModeCreative, true},
		{analysis.ModeBusiness, true},
		{analysis.Mode("Legal"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := BuildInstruction(tt.mode)
			if !strings.Contains(got, "Current Mode: "+string(tt.mode)) {
				t.Errorf("instruction does not name mode %q:\n%s", tt.mode, got)
			}
			if !strings.Contains(got, "Three (3) distinct") {
				t.Error("instruction lost the variations requirement")
			}
			if hasFocus := strings.Contains(got, "Mode focus:"); hasFocus != tt.wantFocus {
				t.Errorf("focus line present = %v, want %v", hasFocus, tt.wantFocus)
			}
		})
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := BuildUserPrompt("write a blog post about coffee")
	want := "User Input: \"write a blog post about coffee\"\n\nPlease analyze"
	if !strings.HasPrefix(got, want) {
		t.Errorf("BuildUserPrompt() = %q, want prefix %q", got, want)
	}
}
