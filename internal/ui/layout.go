package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. Focused boxes use the focus border and
// background.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.FocusBg
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.SurfaceAlt
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 1)
	title = ansi.Truncate(title, max(innerWidth-4, 0), "…")
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = ansi.Truncate(contentLines[i], innerWidth, "…")
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// panelBackground returns the background a panel's content is drawn on.
func (m Model) panelBackground(focused bool) string {
	if focused {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

// wrap breaks plain text into lines no wider than width.
func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	return strings.Split(ansi.Wordwrap(text, width, " -"), "\n")
}

// styledLines renders each line on the panel background.
func styledLines(lines []string, bg BgStyle, style lipgloss.Style) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = bg.Render(line, style)
	}
	return out
}
