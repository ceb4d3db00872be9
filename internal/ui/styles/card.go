package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	cornerTopLeft     = "╭"
	cornerTopRight    = "╮"
	cornerBottomLeft  = "╰"
	cornerBottomRight = "╯"
	edgeHorizontal    = "─"
	edgeVertical      = "│"
)

// Card renders content inside a rounded border with the title set into the
// top edge: ╭─ Title ─────╮. The card grows to fit content vertically; width
// is the outer width including borders.
func Card(title, content string, width int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	edge := lipgloss.NewStyle().Foreground(borderColor)

	inner := max(width-2, 1)
	body := lipgloss.NewStyle().Width(inner).Padding(0, 1).Render(content)

	var b strings.Builder
	b.WriteString(cardTop(title, inner, edge))
	for _, line := range strings.Split(body, "\n") {
		if pad := inner - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString("\n")
		b.WriteString(edge.Render(edgeVertical) + line + edge.Render(edgeVertical))
	}
	b.WriteString("\n")
	b.WriteString(edge.Render(cornerBottomLeft + strings.Repeat(edgeHorizontal, inner) + cornerBottomRight))
	return b.String()
}

func cardTop(title string, inner int, edge lipgloss.Style) string {
	// "─ " + title + " " + at least one "─"
	room := inner - 4
	if title == "" || room < 1 {
		return edge.Render(cornerTopLeft + strings.Repeat(edgeHorizontal, inner) + cornerTopRight)
	}
	title = Truncate(title, room)
	rest := inner - 3 - ansi.StringWidth(title)
	return edge.Render(cornerTopLeft+edgeHorizontal+" ") +
		TitleStyle.Render(title) +
		edge.Render(" "+strings.Repeat(edgeHorizontal, rest)+cornerTopRight)
}

// Truncate shortens s to at most width cells, ending with an ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
