package home

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/registration"
)

func newHome(t *testing.T) mode.Controller {
	t.Helper()
	cfg := config.Defaults()
	return New(mode.Services{Config: &cfg}).SetSize(100, 60)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_ShowsHero(t *testing.T) {
	view := ansi.Strip(newHome(t).View())
	require.Contains(t, view, "Lease Accounting Without the Risk.")
	require.Contains(t, view, "get started")
}

func TestGetStartedOpensCompanyStep(t *testing.T) {
	_, cmd := newHome(t).Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, mode.NavigateMsg{To: registration.RouteCreateCompany}, cmd())
}

func TestForgotPassword(t *testing.T) {
	_, cmd := newHome(t).Update(runes("f"))
	require.Equal(t, mode.NavigateMsg{To: registration.RouteForgotPassword}, cmd())
}

func TestQuit(t *testing.T) {
	_, cmd := newHome(t).Update(runes("q"))
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestOtherMessagesIgnored(t *testing.T) {
	_, cmd := newHome(t).Update(tea.FocusMsg{})
	require.Nil(t, cmd)
}
