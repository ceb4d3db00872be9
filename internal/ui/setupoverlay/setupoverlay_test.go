package setupoverlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestProgress_Steps(t *testing.T) {
	p := Progress{}
	p = p.Advance()
	require.InDelta(t, 2.0, p.Percent(), 1e-9)

	for p.Percent() < SlowAbove {
		p = p.Advance()
	}
	require.InDelta(t, 80.0, p.Percent(), 1e-9)

	// 80 itself still takes the fast step.
	p = p.Advance()
	require.InDelta(t, 82.0, p.Percent(), 1e-9)
	p = p.Advance()
	require.InDelta(t, 82.5, p.Percent(), 1e-9)
}

func TestProgress_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 500).Draw(t, "ticks")
		p := Progress{}
		prev := 0.0
		for range n {
			p = p.Advance()
			if p.Percent() < prev {
				t.Fatalf("progress went backwards: %v -> %v", prev, p.Percent())
			}
			if p.Percent() > Ceiling {
				t.Fatalf("progress %v above ceiling", p.Percent())
			}
			prev = p.Percent()
		}
		// 41 fast ticks reach 82, 32 slow ones reach the ceiling.
		if n >= 73 && p.Percent() != Ceiling {
			t.Fatalf("after %d ticks progress is %v, want %v", n, p.Percent(), Ceiling)
		}
	})
}

func TestProgress_StatusSticksAtLast(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "advances")
		p := Progress{}
		for range n {
			p = p.NextStatus()
		}
		want := Statuses[min(n, len(Statuses)-1)]
		if p.Status() != want {
			t.Fatalf("after %d advances status is %q, want %q", n, p.Status(), want)
		}
	})
}

func TestModel_StartAndTick(t *testing.T) {
	m, cmd := New().Start()
	require.True(t, m.Running())
	require.NotNil(t, cmd)

	m, next := m.Update(tickMsg{gen: m.gen})
	require.NotNil(t, next)
	require.InDelta(t, 2.0, m.Progress().Percent(), 1e-9)

	m, next = m.Update(statusMsg{gen: m.gen})
	require.NotNil(t, next)
	require.Equal(t, Statuses[1], m.Progress().Status())
}

func TestModel_StaleTicksAreDropped(t *testing.T) {
	m, _ := New().Start()
	old := m.gen
	m = m.Stop()
	m, _ = m.Start()

	m, cmd := m.Update(tickMsg{gen: old})
	require.Nil(t, cmd)
	require.Zero(t, m.Progress().Percent())
}

func TestModel_StopResets(t *testing.T) {
	m, _ := New().Start()
	m, _ = m.Update(tickMsg{gen: m.gen})
	m = m.Stop()

	require.False(t, m.Running())
	require.Zero(t, m.Progress().Percent())

	_, cmd := m.Update(tickMsg{gen: m.gen})
	require.Nil(t, cmd)
}

func TestModel_StatusTickerStopsAtLast(t *testing.T) {
	m, _ := New().Start()
	var cmd tea.Cmd
	for range len(Statuses) - 1 {
		m, cmd = m.Update(statusMsg{gen: m.gen})
	}
	require.Equal(t, Statuses[len(Statuses)-1], m.Progress().Status())
	require.Nil(t, cmd)
}

func TestViews(t *testing.T) {
	m, _ := New().Start()
	loading := ansi.Strip(m.View())
	require.Contains(t, loading, "Setting up account")
	require.Contains(t, loading, Statuses[0])
	require.Contains(t, loading, "0%")

	done := ansi.Strip(SuccessView("https://ifrs16.example.com/"))
	require.Contains(t, done, "Setup Complete")
	require.Contains(t, done, "ACTIVE")
	require.Contains(t, done, "VERIFIED")
	require.Contains(t, done, "Continue to Login")
	require.Contains(t, done, "https://ifrs16.example.com/")
}
