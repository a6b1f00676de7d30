// Package diag renders parse errors for the terminal: the position and
// message, followed by the offending source line and a caret under the token.
package diag

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metaphox/monkey/parser"
)

var (
	colorError = lipgloss.Color("#EF4444") // Red
	colorMuted = lipgloss.Color("#6B7280") // Gray
	colorCaret = lipgloss.Color("#F59E0B") // Amber

	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	locationStyle = lipgloss.NewStyle().Bold(true)
	gutterStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	caretStyle    = lipgloss.NewStyle().Foreground(colorCaret).Bold(true)
)

// Printer formats error lists. The zero value prints plain text.
type Printer struct {
	Color    bool
	Filename string // prefixed to locations when set
}

// Render formats every error in errs against src.
func (pr Printer) Render(src string, errs parser.ErrorList) string {
	lines := strings.Split(src, "\n")

	var b strings.Builder
	for _, e := range errs {
		pr.renderOne(&b, lines, e)
	}
	return b.String()
}

func (pr Printer) renderOne(b *strings.Builder, lines []string, e *parser.Error) {
	loc := fmt.Sprintf("%d:%d", e.Token.Line, e.Token.Col)
	if pr.Filename != "" {
		loc = pr.Filename + ":" + loc
	}
	b.WriteString(pr.style(locationStyle, loc+":"))
	b.WriteString(" ")
	b.WriteString(pr.style(errorStyle, "error:"))
	b.WriteString(" ")
	b.WriteString(e.Msg)
	b.WriteString("\n")

	if e.Token.Line < 1 || e.Token.Line > len(lines) {
		return
	}
	line := strings.TrimRight(lines[e.Token.Line-1], "\r")
	gutter := fmt.Sprintf("%4d | ", e.Token.Line)
	b.WriteString(pr.style(gutterStyle, gutter))
	b.WriteString(line)
	b.WriteString("\n")

	width := len(e.Token.Literal)
	if width == 0 {
		width = 1
	}
	pad := caretPadding(line, e.Token.Col-1)
	b.WriteString(pr.style(gutterStyle, strings.Repeat(" ", len(gutter)-2)+"| "))
	b.WriteString(pad)
	b.WriteString(pr.style(caretStyle, strings.Repeat("^", width)))
	b.WriteString("\n")
}

// caretPadding returns n columns of padding that line up with line, copying
// tabs so the caret stays under the token.
func caretPadding(line string, n int) string {
	var pad strings.Builder
	for i := 0; i < n; i++ {
		if i < len(line) && line[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return pad.String()
}

func (pr Printer) style(s lipgloss.Style, text string) string {
	if !pr.Color {
		return text
	}
	return s.Render(text)
}
