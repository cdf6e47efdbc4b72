package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"/", "Search recipes"},
				{"tab", "Next panel"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"enter", "Open recipe"},
				{"[ / ]", "Previous/next page"},
			},
		},
		{
			title: "Recipe",
			items: []helpItem{
				{"+ / -", "Change servings"},
				{"b", "Toggle bookmark"},
				{"u", "Upload recipe"},
			},
		},
		{
			title: "Upload form",
			items: []helpItem{
				{"tab", "Next field"},
				{"ctrl+s", "Upload"},
				{"esc", "Close"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"L", "Session log"},
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
