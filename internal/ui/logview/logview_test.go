package logview

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/proconsult/onboard/internal/log"
)

var ts = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func entry(level log.Level, msg string) string {
	return log.Format(ts, level, log.CatAPI, msg)
}

func key(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seeded() Model {
	m := New().SetSize(100, 40)
	m = m.Append(entry(log.LevelDebug, "request started"))
	m = m.Append(entry(log.LevelInfo, "otp sent"))
	m = m.Append(entry(log.LevelWarn, "slow response"))
	m = m.Append(entry(log.LevelError, "lease failed"))
	return m
}

func TestAppend_BoundsHistory(t *testing.T) {
	m := New()
	for i := range MaxEntries + 10 {
		m = m.Append(entry(log.LevelInfo, fmt.Sprintf("entry %d", i)))
	}
	got := m.Entries()
	require.Len(t, got, MaxEntries)
	require.Contains(t, got[0], "entry 10")
}

func TestLevelFilter(t *testing.T) {
	m := seeded().Toggle()
	require.Len(t, m.Entries(), 4)

	m, _ = m.Update(key("w"))
	require.Len(t, m.Entries(), 2)

	m, _ = m.Update(key("e"))
	require.Len(t, m.Entries(), 1)
	require.Contains(t, ansi.Strip(m.View()), "lease failed")
	require.NotContains(t, ansi.Strip(m.View()), "otp sent")

	m, _ = m.Update(key("d"))
	require.Len(t, m.Entries(), 4)
}

func TestKeysIgnoredWhileHidden(t *testing.T) {
	m, cmd := seeded().Update(key("e"))
	require.Nil(t, cmd)
	require.Len(t, m.Entries(), 4)
}

func TestClear(t *testing.T) {
	m := seeded().Toggle()
	m, _ = m.Update(key("c"))

	require.Empty(t, m.Entries())
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestEscCloses(t *testing.T) {
	m := seeded().Toggle()
	require.True(t, m.Visible())

	m, cmd := m.Update(key("esc"))
	require.False(t, m.Visible())
	require.NotNil(t, cmd)
	require.IsType(t, CloseMsg{}, cmd())
}

func TestFooter(t *testing.T) {
	require.Empty(t, New().Footer(80))

	footer := ansi.Strip(seeded().Footer(80))
	require.Contains(t, footer, "lease failed")
	require.Contains(t, footer, "ctrl+x logs")
	require.LessOrEqual(t, ansi.StringWidth(footer), 80)
}

func TestUntaggedEntriesAlwaysShown(t *testing.T) {
	m := New().Append("panic: something odd").Toggle()
	m, _ = m.Update(key("e"))
	require.Len(t, m.Entries(), 1)
}

func TestOverlay(t *testing.T) {
	m := seeded()
	bg := "background"
	require.Equal(t, bg, m.Overlay(bg))

	m = m.Toggle()
	require.Contains(t, ansi.Strip(m.Overlay(bg)), "Logs")
}
