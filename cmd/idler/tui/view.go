package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return "Saving...\n"
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("idler"))
	b.WriteString("\n\n")

	counter := lipgloss.JoinVertical(lipgloss.Center,
		"Resources",
		m.styles.Counter.Render(m.state.Counter.Format()),
		m.renderFlash(),
	)
	b.WriteString(m.styles.Panel.Render(counter))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Rate.Render(fmt.Sprintf("Auto: +%s/sec   Click: +%s",
		m.state.AutoRate.Format(), m.state.ClickPower.Format())))
	b.WriteString("\n")

	if m.running {
		b.WriteString(m.styles.Banner.Render("▶ running"))
	} else {
		b.WriteString(m.styles.Paused.Render("⏸ paused — press p to start"))
	}
	b.WriteString("\n")

	if m.confirmReset {
		b.WriteString("\n")
		b.WriteString(m.styles.Dialog.Render(
			"Reset game? This deletes all progress. (y/N)"))
		b.WriteString("\n")
	} else if m.banner != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Banner.Render(m.banner))
		b.WriteString("\n")
	}

	if !m.saveAt.IsZero() {
		b.WriteString(m.styles.Rate.Render("saved " + m.saveAt.Format("15:04:05")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// renderFlash keeps the counter panel height stable whether or not an
// increment is showing.
func (m Model) renderFlash() string {
	if m.flash == "" {
		return " "
	}
	return m.styles.Increment.Render(m.flash)
}
