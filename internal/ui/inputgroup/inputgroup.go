// Package inputgroup provides a labelled text input with inline validation
// messages, and a Form that moves focus between several of them.
package inputgroup

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/ui/styles"
)

// DefaultWidth is the input width used when Config.Width is zero.
const DefaultWidth = 40

// Config describes one input group.
type Config struct {
	Label       string
	Placeholder string
	Required    bool
	// Password masks the value.
	Password  bool
	CharLimit int
	Width     int
	// Validate, when set, runs on every change and its messages are shown
	// under the input.
	Validate func(string) []string
}

// Model is a single labelled input.
type Model struct {
	cfg      Config
	input    textinput.Model
	errors   []string
	disabled bool
}

// New creates an unfocused input group.
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cfg.Placeholder
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)
	if cfg.CharLimit > 0 {
		ti.CharLimit = cfg.CharLimit
	}
	if cfg.Password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.Width = cfg.Width
	if ti.Width <= 0 {
		ti.Width = DefaultWidth
	}
	return Model{cfg: cfg, input: ti}
}

// Focus gives the input keyboard focus.
func (m Model) Focus() (Model, tea.Cmd) {
	cmd := m.input.Focus()
	return m, cmd
}

// Blur removes keyboard focus.
func (m Model) Blur() Model {
	m.input.Blur()
	return m
}

// Focused reports whether the input has focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Value returns the current text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the text and re-runs validation.
func (m Model) SetValue(s string) Model {
	m.input.SetValue(s)
	return m.validate()
}

// SetErrors replaces the messages shown under the input.
func (m Model) SetErrors(msgs ...string) Model {
	m.errors = msgs
	return m
}

// Errors returns the messages currently shown.
func (m Model) Errors() []string {
	return m.errors
}

// SetDisabled blocks editing while a request is in flight.
func (m Model) SetDisabled(disabled bool) Model {
	m.disabled = disabled
	return m
}

// Update forwards msg to the input and re-validates if the value changed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.disabled {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m = m.validate()
	}
	return m, cmd
}

func (m Model) validate() Model {
	if m.cfg.Validate == nil {
		return m
	}
	m.errors = m.cfg.Validate(m.input.Value())
	return m
}

// View renders label, input and messages.
func (m Model) View() string {
	label := m.cfg.Label
	if m.cfg.Required {
		label += " *"
	}
	labelStyle := styles.InputLabelStyle
	if m.Focused() {
		labelStyle = styles.InputFocusedLabelStyle
	}

	var borderColor lipgloss.TerminalColor = styles.BorderDefaultColor
	switch {
	case len(m.errors) > 0:
		borderColor = styles.StatusErrorColor
	case m.Focused():
		borderColor = styles.BorderFocusColor
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
	if m.disabled {
		box = box.Faint(true)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(box.Render(m.input.View()))
	for _, e := range m.errors {
		b.WriteString("\n")
		b.WriteString(styles.InputErrorStyle.Render("• " + e))
	}
	return b.String()
}
