// Package diag reports problems found while expanding source files.
package diag

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/ecordell/pubif/internal/token"
)

// Severity orders diagnostics by importance.
type Severity uint8

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is one problem located in a file.
type Diagnostic struct {
	File     string
	Span     token.Span
	Severity Severity
	Message  string
}

// Position returns the 1-based line and column of the diagnostic's start in
// src.
func (d Diagnostic) Position(src []byte) (line, col int) {
	off := int(d.Span.Start)
	if off > len(src) {
		off = len(src)
	}
	line = 1 + bytes.Count(src[:off], []byte{'\n'})
	col = off - (bytes.LastIndexByte(src[:off], '\n') + 1) + 1
	return line, col
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.File, d.Severity, d.Message)
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// PrintOpts controls Print.
type PrintOpts struct {
	Color bool
}

// Print writes each diagnostic as
//
//	file:line:col: severity: message
//	   | source line
//	   | ^~~~
//
// sources maps file names to their contents; diagnostics for files missing
// from it are printed without context.
func Print(w io.Writer, diags []Diagnostic, sources map[string][]byte, opts PrintOpts) {
	sevColor := map[Severity]*color.Color{
		Error:   color.New(color.FgRed, color.Bold),
		Warning: color.New(color.FgYellow, color.Bold),
	}
	bold := color.New(color.Bold)
	caret := color.New(color.FgGreen)
	for _, c := range []*color.Color{sevColor[Error], sevColor[Warning], bold, caret} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range diags {
		src, ok := sources[d.File]
		if !ok {
			fmt.Fprintf(w, "%s: %s: %s\n", bold.Sprint(d.File), sevColor[d.Severity].Sprint(d.Severity), d.Message)
			continue
		}
		line, col := d.Position(src)
		fmt.Fprintf(w, "%s: %s: %s\n",
			bold.Sprintf("%s:%d:%d", d.File, line, col), sevColor[d.Severity].Sprint(d.Severity), d.Message)

		text := lineAt(src, line)
		width := int(d.Span.End) - int(d.Span.Start)
		if width < 1 {
			width = 1
		}
		if rest := len(text) - (col - 1); width > rest {
			width = max(rest, 1)
		}
		start := min(col-1, len(text))
		underline := max(runewidth.StringWidth(text[start:min(start+width, len(text))]), 1)
		fmt.Fprintf(w, "   | %s\n", text)
		fmt.Fprintf(w, "   | %s%s\n", padding(text[:start]), caret.Sprint("^"+strings.Repeat("~", underline-1)))
	}
}

// padding returns blanks as wide as prefix on screen. Tabs are kept so the
// caret lines up with the source line however the terminal expands them.
func padding(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func lineAt(src []byte, line int) string {
	lines := strings.Split(string(src), "\n")
	if line-1 < len(lines) {
		return strings.TrimRight(lines[line-1], "\r")
	}
	return ""
}
