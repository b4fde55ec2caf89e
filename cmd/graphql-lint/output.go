package main

import (
	"encoding/json"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
)

// cliDiagnostic is the common shape both the validator and the linter's
// diagnostics are flattened into before rendering: CLI consumers always
// see 1-based positions, converted exactly once here.
type cliDiagnostic struct {
	File     string
	Severity string // "error" or "warning"
	Rule     string
	Message  string
	Line     int // 0-based, internal convention
	Column   int // 0-based, character count
	Width    int // 0 when unknown; end == start in that case
}

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// renderHuman writes one line per diagnostic plus a trailing summary, in
// the form "<file>:<line>:<col>: <severity>: <message>" with an
// indented "rule: <code>" line when present.
func renderHuman(w io.Writer, diags []cliDiagnostic, color bool) {
	errors, warnings := 0, 0
	for _, d := range diags {
		sev := d.Severity
		if color {
			if d.Severity == "error" {
				sev = errorStyle.Render(d.Severity)
			} else {
				sev = warningStyle.Render(d.Severity)
			}
		}
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", d.File, d.Line+1, d.Column+1, sev, d.Message)
		if d.Rule != "" {
			rule := d.Rule
			if color {
				rule = ruleStyle.Render(d.Rule)
			}
			fmt.Fprintf(w, "  rule: %s\n", rule)
		}
		if d.Severity == "error" {
			errors++
		} else {
			warnings++
		}
	}

	summary := fmt.Sprintf("%d error(s), %d warning(s)", errors, warnings)
	if color {
		summary = summaryStyle.Render(summary)
	}
	fmt.Fprintln(w, summary)
}

// jsonDiagnostic is the wire shape for --format json, one object per
// line.
type jsonDiagnostic struct {
	File     string       `json:"file"`
	Severity string       `json:"severity"`
	Rule     string       `json:"rule,omitempty"`
	Message  string       `json:"message"`
	Location jsonLocation `json:"location"`
}

type jsonLocation struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func renderJSON(w io.Writer, diags []cliDiagnostic) error {
	enc := json.NewEncoder(w)
	for _, d := range diags {
		endColumn := d.Column
		if d.Width > 0 {
			endColumn = d.Column + d.Width
		}
		jd := jsonDiagnostic{
			File:     d.File,
			Severity: d.Severity,
			Rule:     d.Rule,
			Message:  d.Message,
			Location: jsonLocation{
				Start: jsonPosition{Line: d.Line + 1, Column: d.Column + 1},
				End:   jsonPosition{Line: d.Line + 1, Column: endColumn + 1},
			},
		}
		if err := enc.Encode(jd); err != nil {
			return err
		}
	}
	return nil
}

// exitCode returns 1 when any diagnostic is an error.
func exitCode(diags []cliDiagnostic) int {
	for _, d := range diags {
		if d.Severity == "error" {
			return 1
		}
	}
	return 0
}
