package testutil

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// CmdTimeout bounds how long Collect waits for one command. Timer commands
// (countdowns, dismiss ticks) outlive it and are dropped.
const CmdTimeout = 200 * time.Millisecond

// Collect runs cmd and every command it batches, returning the messages
// produced within CmdTimeout each.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(CmdTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// Find returns the first message of type T.
func Find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
