package tui

import "github.com/charmbracelet/lipgloss"

// Palette for the session screen.
var (
	colorAccent  = lipgloss.Color("#8BC34A") // lime
	colorCounter = lipgloss.Color("#FFC107") // yellow
	colorTitle   = lipgloss.Color("#2196F3") // blue
	colorMuted   = lipgloss.Color("#6c7a89")
	colorDanger  = lipgloss.Color("#e53935") // red
)

// Styles holds the lipgloss styles for the session view.
type Styles struct {
	Title     lipgloss.Style
	Counter   lipgloss.Style
	Panel     lipgloss.Style
	Increment lipgloss.Style
	Rate      lipgloss.Style
	Banner    lipgloss.Style
	Warning   lipgloss.Style
	Dialog    lipgloss.Style
	Paused    lipgloss.Style
}

// DefaultStyles returns the stock look.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorTitle),
		Counter:   lipgloss.NewStyle().Bold(true).Foreground(colorCounter),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(1, 4),
		Increment: lipgloss.NewStyle().Foreground(colorAccent),
		Rate:      lipgloss.NewStyle().Faint(true),
		Banner:    lipgloss.NewStyle().Foreground(colorAccent),
		Warning:   lipgloss.NewStyle().Foreground(colorDanger),
		Dialog:    lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(colorDanger).Padding(0, 2),
		Paused:    lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
	}
}
