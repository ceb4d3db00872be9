// Package logview shows the log entries published while the program runs:
// a one-line footer with the latest entry and a scrollable overlay.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/ui/overlay"
	"github.com/proconsult/onboard/internal/ui/styles"
)

const (
	// MaxEntries bounds the retained history.
	MaxEntries = 500

	viewportMaxHeight = 25
	viewportMinHeight = 5
	boxMaxWidth       = 160
	boxMinWidth       = 40
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model holds the retained entries and the overlay state.
type Model struct {
	entries  []string
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates an empty, hidden log view.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records an entry, dropping the oldest beyond MaxEntries.
func (m Model) Append(entry string) Model {
	entry = strings.TrimRight(entry, "\n")
	entries := append(m.entries, entry)
	if over := len(entries) - MaxEntries; over > 0 {
		entries = append([]string(nil), entries[over:]...)
	}
	m.entries = entries
	if m.visible {
		m.refresh()
	}
	return m
}

// Entries returns the entries passing the level filter.
func (m Model) Entries() []string {
	var out []string
	for _, e := range m.entries {
		if levelOf(e) >= m.minLevel {
			out = append(out, e)
		}
	}
	return out
}

// Visible reports whether the overlay is open.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle opens or closes the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
	return m
}

// SetSize records the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.refresh()
	return m
}

// Update handles keys while the overlay is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "c":
		m.entries = nil
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "ctrl+x", "esc":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// Footer renders the latest entry on one line, or "" when there is none.
func (m Model) Footer(width int) string {
	if len(m.entries) == 0 {
		return ""
	}
	last := m.entries[len(m.entries)-1]
	hint := " ctrl+x logs"
	room := max(width-ansi.StringWidth(hint)-2, 1)
	return styles.StatusBarStyle.Render(colorize(ansi.Truncate(last, room, "…")) + styles.HelpStyle.Render(hint))
}

// View renders the overlay box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()
	rule := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", w))

	body := strings.Join([]string{
		styles.TitleStyle.PaddingLeft(1).Render("Logs"),
		rule,
		m.viewport.View(),
		rule,
		m.filterHint(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(w).
		Render(body)
}

// Overlay draws the box centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height}, m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	contentWidth := m.boxWidth() - 2
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)

	m.viewport = viewport.New(contentWidth, height)
	m.viewport.SetContent(m.content(contentWidth))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	entries := m.Entries()
	if len(entries) == 0 {
		return styles.InputHintStyle.Render("No logs to display")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = colorize(ansi.Truncate(e, width, "…"))
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) filterHint() string {
	options := []struct {
		key   string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	}
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	hints := []string{styles.HelpStyle.Render("[c] Clear")}
	for _, o := range options {
		if o.level == m.minLevel {
			hints = append(hints, active.Render(o.key))
		} else {
			hints = append(hints, styles.HelpStyle.Render(o.key))
		}
	}
	return strings.Join(hints, "  ")
}

// levelOf reads the level tag written by log.Format. Untagged entries count
// as errors so they are never filtered out.
func levelOf(entry string) log.Level {
	for _, l := range []log.Level{log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l
		}
	}
	return log.LevelError
}

func colorize(entry string) string {
	var color lipgloss.TerminalColor
	switch levelOf(entry) {
	case log.LevelDebug:
		color = styles.TextMutedColor
	case log.LevelInfo:
		color = styles.StatusInfoColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	default:
		color = styles.StatusErrorColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}
