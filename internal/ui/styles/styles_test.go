package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestCard_Structure(t *testing.T) {
	out := Card("Company", "Acme Ltd\nUSD", 30, false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "Company")
	require.True(t, strings.HasPrefix(ansi.Strip(lines[0]), "╭─ "))
	require.True(t, strings.HasPrefix(ansi.Strip(lines[3]), "╰"))
	for _, l := range lines {
		require.Equal(t, 30, ansi.StringWidth(l), "line %q", ansi.Strip(l))
	}
}

func TestCard_LongTitleIsTruncated(t *testing.T) {
	out := Card("A title that is far too long for this card", "x", 20, true)
	top := strings.Split(out, "\n")[0]

	require.Equal(t, 20, ansi.StringWidth(top))
	require.Contains(t, ansi.Strip(top), "…")
}

func TestCard_NoTitle(t *testing.T) {
	out := Card("", "x", 10, false)
	require.Equal(t, "╭────────╮", ansi.Strip(strings.Split(out, "\n")[0]))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "", Truncate("hello", 0))
	require.Equal(t, "hello", Truncate("hello", 5))
	require.Equal(t, "hel…", Truncate("hello", 4))
}

func TestApplyTheme(t *testing.T) {
	from, to := ProgressFromColor, ProgressToColor
	t.Cleanup(func() { ApplyTheme(from, to) })

	ApplyTheme("#111111", "")
	require.Equal(t, "#111111", ProgressFromColor)
	require.Equal(t, to, ProgressToColor)
}
