package recovery

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/testutil"
	"github.com/proconsult/onboard/internal/validate"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	ctrlB = tea.KeyMsg{Type: tea.KeyCtrlB}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, c mode.Controller, msgs ...tea.Msg) (Model, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	for _, msg := range msgs {
		var cmd tea.Cmd
		c, cmd = c.Update(msg)
		for _, m := range testutil.Collect(cmd) {
			if u, ok := m.(updatedMsg); ok {
				c, cmd = c.Update(u)
				out = append(out, testutil.Collect(cmd)...)
				continue
			}
			out = append(out, m)
		}
	}
	return c.(Model), out
}

func TestRecovery_InvalidEmailStays(t *testing.T) {
	f := testutil.NewFlow(t)
	m, _ := send(t, New(f.Services), typed("me@site.de"), enter)

	require.Equal(t, StepEmail, m.Step())
	require.Contains(t, m.View(), validate.MsgEmailDomain)
}

func TestRecovery_UpdatesPassword(t *testing.T) {
	f := testutil.NewFlow(t)
	f.Passwords.On("UpdatePassword", mock.Anything, "me@site.com", "Abcdef1!").Return(nil).Once()

	m, _ := send(t, New(f.Services), typed("me@site.com"), enter)
	require.Equal(t, StepPassword, m.Step())
	require.Contains(t, m.View(), "Set New Password")
	require.Contains(t, m.View(), "Choose a strong new password for your account")

	m, _ = send(t, m, typed("Abcdef1!"), enter, typed("Abcdef1!"), enter)
	require.Equal(t, StepDone, m.Step())
	require.Contains(t, m.View(), "Password Updated")
	require.Contains(t, m.View(), "Go to Sign in")

	_, msgs := send(t, m, enter)
	nav, ok := testutil.Find[mode.NavigateMsg](msgs)
	require.True(t, ok)
	require.Equal(t, registration.RouteHome, nav.To)
}

func TestRecovery_MismatchBlocksSubmit(t *testing.T) {
	f := testutil.NewFlow(t)

	m, _ := send(t, New(f.Services), typed("me@site.com"), enter,
		typed("Abcdef1!"), enter, typed("Abcdef1?"), enter)

	require.Equal(t, StepPassword, m.Step())
	require.Contains(t, m.View(), validate.MsgPasswordMismatch)
	f.Passwords.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecovery_WeakPasswordShowsEveryRule(t *testing.T) {
	f := testutil.NewFlow(t)

	m, _ := send(t, New(f.Services), typed("me@site.com"), enter, typed("abc"))
	view := m.View()
	require.Contains(t, view, validate.MsgPasswordLength)
	require.Contains(t, view, validate.MsgPasswordUppercase)
	require.Contains(t, view, validate.MsgPasswordNumber)
	require.Contains(t, view, validate.MsgPasswordSpecial)
}

func TestRecovery_FailureShowsBanner(t *testing.T) {
	f := testutil.NewFlow(t)
	f.Passwords.On("UpdatePassword", mock.Anything, "me@site.com", "Abcdef1!").Return(errors.New("User not found")).Once()

	m, msgs := send(t, New(f.Services), typed("me@site.com"), enter,
		typed("Abcdef1!"), enter, typed("Abcdef1!"), enter)

	require.Equal(t, StepPassword, m.Step())
	b, ok := testutil.Find[mode.ShowBannerMsg](msgs)
	require.True(t, ok)
	require.Equal(t, "User not found", b.Message)
}

func TestRecovery_BackReturnsHome(t *testing.T) {
	f := testutil.NewFlow(t)

	m, _ := send(t, New(f.Services), typed("me@site.com"), enter, ctrlB)
	require.Equal(t, StepEmail, m.Step())

	_, msgs := send(t, m, ctrlB)
	nav, ok := testutil.Find[mode.NavigateMsg](msgs)
	require.True(t, ok)
	require.Equal(t, registration.RouteHome, nav.To)
}
