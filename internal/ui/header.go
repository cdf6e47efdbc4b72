package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, the search input and the bookmark count.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("forkify", styles.Logo)}

	if m.searching {
		parts = append(parts, m.search.View())
	} else {
		parts = append(parts, bg.Render("/ search", styles.FaintText))
	}

	parts = append(parts,
		bg.Render("Bookmarks:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.bookmarks)), styles.Text),
	)
	if m.searchState.Query != "" {
		parts = append(parts,
			bg.Render("Query:", styles.MutedText)+bg.Space()+
				bg.Render(m.searchState.Query, styles.AccentText),
		)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxHeight(1).
		Render(bg.Join(parts, "  "))
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	return styles.Footer.Width(m.width).MaxHeight(1).Render(m.help.View(m.keys))
}
