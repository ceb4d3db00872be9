package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestGlobal_Bindings(t *testing.T) {
	require.Equal(t, []string{"ctrl+c"}, Global.Quit.Keys())
	require.Equal(t, []string{"ctrl+x"}, Global.Logs.Keys())
	require.Equal(t, []string{"esc"}, Global.Dismiss.Keys())
}

func TestFallback_Bindings(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, Fallback.Reload))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")}, Fallback.Home))
}

func TestForm_TabCycles(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, Form.Next))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, Form.Prev))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, Form.Submit))
}

func TestHomeAndOTPDoNotShareLetters(t *testing.T) {
	// Digits and letters typed into inputs must never trigger an action.
	for _, b := range []key.Binding{OTP.Resend, OTP.Back, Form.Back, Currency.Prev, Currency.Next} {
		for _, k := range b.Keys() {
			require.Greater(t, len(k), 1, "binding %q is a printable key", k)
		}
	}
}

func TestHelp(t *testing.T) {
	require.Equal(t, "ctrl+r resend code  ctrl+b back to email", Help(OTP.Resend, OTP.Back))
	require.Empty(t, Help())
}
