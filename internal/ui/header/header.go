// Package header renders the top bar shown on every screen.
package header

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/ui/styles"
)

// Brand is the company name shown at the left of the bar.
const Brand = "ProConsult International"

// Model is the header content.
type Model struct {
	AppCode string
	// Step and Steps drive the "Step n of m" indicator; Steps == 0 hides it.
	Step  int
	Steps int
	Title string
}

// View renders the header across width cells.
func (m Model) View(width int) string {
	left := styles.TitleStyle.Render(Brand)
	if m.AppCode != "" {
		left += styles.SubtitleStyle.Render("  ·  " + m.AppCode)
	}

	var right string
	if m.Steps > 0 {
		right = styles.CountdownStyle.Render(fmt.Sprintf("Step %d of %d", m.Step, m.Steps))
	}
	if m.Title != "" {
		if right != "" {
			right = "  " + right
		}
		right = styles.SubtitleStyle.Render(m.Title) + right
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	bar := lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(styles.BorderDefaultColor)
	line := left + fmt.Sprintf("%*s", gap, "") + right
	if width > 0 && lipgloss.Width(line) > width-2 {
		line = styles.Truncate(line, max(width-2, 1))
	}
	return bar.Render(line)
}
