// Package setupoverlay renders the full-screen overlays shown while the
// administrator account and demo lease are provisioned, and once they are.
package setupoverlay

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/ui/styles"
)

const cardWidth = 56

// Model animates the loading overlay.
type Model struct {
	bar      progress.Model
	progress Progress
	running  bool
	// gen tags ticks so those from an earlier run are dropped.
	gen int
}

type tickMsg struct{ gen int }

type statusMsg struct{ gen int }

// New creates a stopped overlay.
func New() Model {
	bar := progress.New(
		progress.WithGradient(styles.ProgressFromColor, styles.ProgressToColor),
		progress.WithoutPercentage(),
		progress.WithWidth(cardWidth-8),
	)
	return Model{bar: bar}
}

// Start resets the animation and begins ticking.
func (m Model) Start() (Model, tea.Cmd) {
	m.gen++
	m.progress = Progress{}
	m.running = true
	return m, tea.Batch(tick(m.gen), nextStatus(m.gen))
}

// Stop halts the animation and resets it.
func (m Model) Stop() Model {
	m.gen++
	m.running = false
	m.progress = Progress{}
	return m
}

// Running reports whether the overlay is animating.
func (m Model) Running() bool {
	return m.running
}

// Progress returns the current synthetic progress.
func (m Model) Progress() Progress {
	return m.progress
}

// Update advances the animation on its own ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.running || msg.gen != m.gen {
			return m, nil
		}
		m.progress = m.progress.Advance()
		return m, tick(m.gen)
	case statusMsg:
		if !m.running || msg.gen != m.gen {
			return m, nil
		}
		m.progress = m.progress.NextStatus()
		if m.progress.Status() == Statuses[len(Statuses)-1] {
			return m, nil
		}
		return m, nextStatus(m.gen)
	}
	return m, nil
}

// View renders the loading card.
func (m Model) View() string {
	pct := m.progress.Percent()
	status := fmt.Sprintf("%-*s%4d%%", cardWidth-11, m.progress.Status(), int(math.Round(pct)))

	body := strings.Join([]string{
		styles.TitleStyle.Render("🛡  Setting up account"),
		styles.SubtitleStyle.Render("Please wait while we prepare your environment."),
		"",
		m.bar.ViewAs(pct / 100),
		styles.HelpStyle.Render(status),
		"",
		styles.InputHintStyle.Render("⚡ Enterprise Security Active"),
	}, "\n")
	return card(body, styles.BrandPrimaryColor)
}

// SuccessView renders the completion card. loginURL is where the user signs
// in; it is omitted when empty.
func SuccessView(loginURL string) string {
	badge := func(name, state string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.StatusSuccessColor).
			Padding(0, 2).
			Render(styles.SubtitleStyle.Render(name) + "\n" +
				lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Bold(true).Render(state))
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Bold(true).Render("✔ Setup Complete"),
		"",
		styles.SubtitleStyle.Width(cardWidth - 6).Render(
			"Your account and company credentials have been successfully provisioned. " +
				"You are ready to access your dashboard."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, badge("Company", "ACTIVE"), "  ", badge("Admin", "VERIFIED")),
		"",
		styles.PrimaryButtonFocusedStyle.Render("Continue to Login ↵"),
	}
	if loginURL != "" {
		lines = append(lines, styles.HelpStyle.Render(loginURL))
	}
	lines = append(lines, "", styles.InputHintStyle.Render("🎉 Welcome Aboard"))
	return card(strings.Join(lines, "\n"), styles.StatusSuccessColor)
}

func card(body string, border lipgloss.TerminalColor) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(cardWidth).
		Render(body)
}

func tick(gen int) tea.Cmd {
	return tea.Tick(TickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func nextStatus(gen int) tea.Cmd {
	return tea.Tick(StatusInterval, func(time.Time) tea.Msg {
		return statusMsg{gen: gen}
	})
}
