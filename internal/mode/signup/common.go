// Package signup implements the three registration screens: email
// verification, company profile and administrator account.
package signup

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/ui/styles"
)

// Steps is the number of wizard screens.
const Steps = 3

const formWidth = 48

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.SpinnerColor)
	return s
}

// button renders the submit button. While busy it shows the spinner and
// busyLabel; when disabled it is greyed out.
func button(label, busyLabel string, busy, disabled bool, spin spinner.Model) string {
	switch {
	case busy:
		return styles.DisabledButtonStyle.Render(spin.View() + " " + busyLabel)
	case disabled:
		return styles.DisabledButtonStyle.Render(label)
	default:
		return styles.PrimaryButtonFocusedStyle.Render(label + " →")
	}
}

func section(title, subtitle, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(title),
		styles.SubtitleStyle.Width(formWidth).Render(subtitle),
		"",
		body,
	)
}

func center(width, height int, s string) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, s)
}
