package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sant0-9/promptforge/internal/analysis"
	"github.com/sant0-9/promptforge/internal/config"
)

// writeReport prints a result as plain text for the analyze command
func writeReport(w io.Writer, res *analysis.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Original quality: %d/100 (%s)\n\n", res.OriginalScore, res.ScoreBand())
	fmt.Fprintf(&b, "Critique:\n  %s\n\n", res.Critique)

	b.WriteString("Key improvements:\n")
	for _, s := range res.Suggestions {
		fmt.Fprintf(&b, "  - %s\n", s)
	}

	for i, v := range res.Variations {
		fmt.Fprintf(&b, "\n[%d] %s (%s)\n", i+1, v.Title, v.Method)
		b.WriteString(strings.Repeat("-", 40) + "\n")
		b.WriteString(strings.TrimRight(v.Content, "\n") + "\n")
		fmt.Fprintf(&b, "Why this works: %s\n", v.Explanation)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeProviders lists the providers a config file can name, with their
// models and where to get a key
func writeProviders(w io.Writer, providers []config.ProviderInfo) error {
	var b strings.Builder

	b.WriteString("Available providers (set \"provider\" and \"model\" in the config file):\n")
	for _, p := range providers {
		fmt.Fprintf(&b, "\n  %-11s %s\n", p.ID, p.Description)
		if len(p.Models) > 0 {
			fmt.Fprintf(&b, "              models: %s (default %s)\n", strings.Join(p.Models, ", "), p.DefaultModel)
		}
		if p.NeedsAPIKey {
			fmt.Fprintf(&b, "              key:    %s", p.EnvVar)
			if p.SignupURL != "" {
				fmt.Fprintf(&b, " from %s", p.SignupURL)
			}
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
