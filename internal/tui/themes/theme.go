// Package themes holds the quote wizard color schemes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the wizard.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	Muted       lipgloss.Style
	StatusError lipgloss.Style
	Primary     lipgloss.Color
}

var (
	blue  = lipgloss.Color("#4d96ff")
	white = lipgloss.Color("#fafafa")
	gray  = lipgloss.Color("#737373")
	red   = lipgloss.Color("#ef4444")
)

// Default matches the showroom blue of the line-mode output.
var Default = Theme{
	Primary: blue,

	Title:       lipgloss.NewStyle().Bold(true).Foreground(blue).MarginBottom(1),
	Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#a3a3a3")).MarginBottom(1),
	Bold:        lipgloss.NewStyle().Bold(true).Foreground(white),
	Selected:    lipgloss.NewStyle().Background(blue).Foreground(white).Bold(true),
	Muted:       lipgloss.NewStyle().Foreground(gray),
	StatusError: lipgloss.NewStyle().Foreground(red),
}
