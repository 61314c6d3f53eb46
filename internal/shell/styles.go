package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// painter decorates a message for display.
type painter func(string) string

func plainPainter(s string) string { return s }

// render adapts a lipgloss style's variadic Render to a painter.
func render(st lipgloss.Style) painter {
	return func(s string) string { return st.Render(s) }
}

// eachLine applies p to every non-empty line of a message separately, so
// multi-line text keeps its line lengths.
func eachLine(p painter) painter {
	return func(s string) string {
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			if l != "" {
				lines[i] = p(l)
			}
		}
		return strings.Join(lines, "\n")
	}
}

// styles holds the painters for each message kind. Contact data printed by
// LIST is never painted.
type styles struct {
	prompt  painter
	success painter
	failure painter
	info    painter
}

// plainStyles leaves every message untouched.
func plainStyles() styles {
	return styles{
		prompt:  plainPainter,
		success: plainPainter,
		failure: plainPainter,
		info:    plainPainter,
	}
}

// terminalStyles colors messages for a TTY.
func terminalStyles() styles {
	return styles{
		prompt: render(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})),
		success: render(lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"})),
		failure: render(lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})),
		info: eachLine(render(lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}))),
	}
}
