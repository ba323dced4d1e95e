package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cory-johannsen/skirmish/internal/markup"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleHint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// tagStyles maps every markup tag to its terminal colour.
var tagStyles = map[string]lipgloss.Style{
	"red":        fg("196"),
	"darkred":    fg("124"),
	"green":      fg("46"),
	"darkgreen":  fg("28"),
	"blue":       fg("33"),
	"paleblue":   fg("117"),
	"palegreen":  fg("114"),
	"yellow":     fg("226"),
	"paleyellow": fg("229"),
	"gold":       fg("178"),
	"gray":       fg("243"),
	"purple":     fg("129"),
	"cyan":       fg("51"),
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// renderMarkup replaces inline style tags with lipgloss styling. Unknown tags
// render as plain text.
func renderMarkup(line string) string {
	var b strings.Builder
	for _, span := range markup.Parse(line) {
		if st, ok := tagStyles[span.Style]; ok {
			b.WriteString(st.Render(span.Text))
			continue
		}
		b.WriteString(span.Text)
	}
	return b.String()
}
