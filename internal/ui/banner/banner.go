// Package banner renders the inline, dismissable message bar shown above a
// screen's form.
package banner

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/proconsult/onboard/internal/ui/styles"
)

// DismissAfter is how long a banner stays up when not dismissed by hand.
const DismissAfter = 6 * time.Second

// Kind selects icon and color.
type Kind int

const (
	KindError Kind = iota
	KindSuccess
	KindInfo
)

// Model holds the banner state. The zero value is a hidden banner.
type Model struct {
	kind    Kind
	message string
	// seq identifies the current message so a timer started for an earlier
	// one does not hide it.
	seq   int
	width int
}

// New creates a hidden banner.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that hides it after
// DismissAfter.
func (m Model) Show(kind Kind, message string) (Model, tea.Cmd) {
	m.kind = kind
	m.message = message
	m.seq++
	return m, scheduleDismiss(m.seq, DismissAfter)
}

// Hide dismisses the banner.
func (m Model) Hide() Model {
	m.message = ""
	return m
}

// Visible reports whether a message is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the current text.
func (m Model) Message() string {
	return m.message
}

// Kind returns the kind of the current message.
func (m Model) Kind() Kind {
	return m.kind
}

// SetWidth sets the width the message wraps to.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Update handles the dismiss timer and the esc key. The bool reports
// whether msg was consumed.
func (m Model) Update(msg tea.Msg) (Model, bool) {
	switch msg := msg.(type) {
	case DismissMsg:
		if msg.seq == m.seq {
			return m.Hide(), true
		}
		return m, true
	case tea.KeyMsg:
		if m.Visible() && msg.Type == tea.KeyEsc {
			return m.Hide(), true
		}
	}
	return m, false
}

// View renders the banner, or "" when hidden.
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}

	var icon string
	var color lipgloss.TerminalColor
	switch m.kind {
	case KindSuccess:
		icon, color = "✔", styles.StatusSuccessColor
	case KindInfo:
		icon, color = "ℹ", styles.StatusInfoColor
	default:
		icon, color = "✖", styles.StatusErrorColor
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)

	text := icon + " " + m.message
	if inner := m.width - 4; inner > 10 {
		text = wordwrap.String(text, inner)
		box = box.Width(m.width - 2)
	}
	hint := styles.HelpStyle.Render("esc to dismiss")
	return box.Render(strings.TrimRight(text, "\n") + "\n" + hint)
}

// DismissMsg hides the banner it was scheduled for.
type DismissMsg struct {
	seq int
}

func scheduleDismiss(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}
