package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r, err := New(40, "light")
	require.NoError(t, err)
	require.Equal(t, 40, r.Width())

	out, err := r.Render("# Lease Accounting\n\nWithout the **risk**.")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Lease Accounting")
	require.Contains(t, plain, "risk")
}

func TestRender_Wraps(t *testing.T) {
	r, err := New(20, "")
	require.NoError(t, err)

	out, err := r.Render(strings.Repeat("word ", 30))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(ansi.Strip(out)), "\n")
	require.Greater(t, len(lines), 5)
}
