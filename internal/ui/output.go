// Package ui formats operator-facing messages: colored success and warning
// lines and structured error reports with suggestions.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Level is the severity of a report.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// ErrorOptions describes one error report.
type ErrorOptions struct {
	Level        Level
	Context      string // short upper-cased heading, e.g. "example not found"
	Problem      string
	Details      []string // extra indented lines, e.g. validation issues
	Suggestions  []string
	HelpCommands []string
}

// SetNoColor disables (or re-enables) ANSI colors for every message.
func SetNoColor(disabled bool) {
	color.NoColor = disabled
}

// FormatError renders a report:
//
//	✗ EXAMPLE NOT FOUND: "fhe-countr"
//	   Did you mean: fhe-counter?
//
//	   → List examples: exgen list
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	header, body := color.New(color.FgRed, color.Bold), color.New(color.FgRed)
	symbol := "✗"
	switch opts.Level {
	case LevelWarning:
		header, body = color.New(color.FgYellow, color.Bold), color.New(color.FgYellow)
		symbol = "!"
	case LevelInfo:
		header, body = color.New(color.FgCyan, color.Bold), color.New(color.FgCyan)
		symbol = "i"
	}

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	for _, d := range opts.Details {
		body.Fprintf(&b, "   - %s\n", d)
	}

	if len(opts.Suggestions) > 0 {
		color.New(color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted report to w.
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// Success writes a green check line.
func Success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen, color.Bold).Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}

// Warn writes a yellow warning line.
func Warn(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, "! %s\n", fmt.Sprintf(format, args...))
}

// Failure writes a red line without the report layout.
func Failure(w io.Writer, format string, args ...any) {
	color.New(color.FgRed).Fprintf(w, "✗ %s\n", fmt.Sprintf(format, args...))
}
