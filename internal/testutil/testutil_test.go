package testutil

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/proconsult/onboard/internal/registration"
)

type pingMsg struct{}

func TestCollect_FlattensBatchesAndDropsTimers(t *testing.T) {
	ping := func() tea.Msg { return pingMsg{} }
	slow := tea.Tick(time.Hour, func(time.Time) tea.Msg { return "late" })

	msgs := Collect(tea.Batch(ping, tea.Batch(ping, slow)))

	require.Len(t, msgs, 2)
	_, ok := Find[pingMsg](msgs)
	require.True(t, ok)
	_, ok = Find[string](msgs)
	require.False(t, ok)
}

func TestCollect_Nil(t *testing.T) {
	require.Nil(t, Collect(nil))
}

func TestFakeClock(t *testing.T) {
	c := NewFakeClock()
	start := c.Now()
	<-c.After(3 * time.Second)

	require.Equal(t, 3*time.Second, c.Now().Sub(start))
	require.Equal(t, []time.Duration{3 * time.Second}, c.Waited())
}

func TestFlowBuilder(t *testing.T) {
	f := NewFlow(t).Verified("a@b.com").CompanyCreated(42)

	require.Equal(t, registration.StateCompanyCreated, f.Ctrl.State())
	require.Equal(t, 42, f.Ctrl.Session().CompanyID())
	require.Equal(t, 1, f.Ctrl.Session().CurrencyID())
}
