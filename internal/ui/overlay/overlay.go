// Package overlay composites a foreground block over a rendered screen
// without clearing it.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor is where the foreground block sits on the screen.
type Anchor int

const (
	Center Anchor = iota
	Top
	Bottom
)

// Config describes the screen and where the foreground goes.
type Config struct {
	Width  int
	Height int
	Anchor Anchor
	// Margin is the distance in rows from the anchored edge (Top, Bottom).
	Margin int
}

// Place draws fg over bg. Both may carry ANSI styling; cells of bg outside
// the foreground keep theirs.
func Place(cfg Config, fg, bg string) string {
	screen := strings.Split(bg, "\n")
	for len(screen) < cfg.Height {
		screen = append(screen, strings.Repeat(" ", cfg.Width))
	}

	block := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(block))

	for i, row := range block {
		if y+i >= len(screen) {
			break
		}
		screen[y+i] = splice(screen[y+i], row, x)
	}
	return strings.Join(screen, "\n")
}

// splice replaces the cells of line starting at column x with row.
func splice(line, row string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	var right string
	if end := x + ansi.StringWidth(row); end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + row + right
}

func origin(cfg Config, w, h int) (x, y int) {
	x = max((cfg.Width-w)/2, 0)
	switch cfg.Anchor {
	case Top:
		y = cfg.Margin
	case Bottom:
		y = cfg.Height - h - cfg.Margin
	default:
		y = (cfg.Height - h) / 2
	}
	return x, max(y, 0)
}

// Dim strips the styling from bg and renders it faint, for use behind a
// modal block.
func Dim(bg string) string {
	faint := lipgloss.NewStyle().Faint(true)
	lines := strings.Split(bg, "\n")
	for i, l := range lines {
		lines[i] = faint.Render(ansi.Strip(l))
	}
	return strings.Join(lines, "\n")
}
