package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/keys"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/styles"
)

// SupportEmail is offered on the fallback screen.
const SupportEmail = "support@ifrs.ca"

// updateFallback handles keys on the fallback screen. Reload reopens the
// screen that failed; the session is kept.
func (m Model) updateFallback(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Fallback.Reload):
		return m.open(m.route)
	case key.Matches(msg, keys.Fallback.Home):
		return m.open(registration.RouteHome)
	}
	return m, nil
}

func (m Model) fallbackView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.ErrorStyle.Render("⚠ Oops! Something went wrong"),
		styles.SubtitleStyle.Width(56).Align(lipgloss.Center).Render(
			"We encountered an unexpected error. Please try reloading the screen or returning home."),
		"",
		styles.PrimaryButtonFocusedStyle.Render("Reload Page")+"  "+styles.PrimaryButtonStyle.Render("Go to Home"),
		"",
		styles.HelpStyle.Render(keys.Help(keys.Fallback.Reload, keys.Fallback.Home)),
		"",
		styles.InputHintStyle.Render("If the problem persists, contact "+SupportEmail),
	)
	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
