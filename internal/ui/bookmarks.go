package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleBookmarksKey processes keyboard input for the bookmarks panel.
func (m Model) handleBookmarksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.bookmarks)
	if n == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.bookmarksCursor < n-1 {
			m.bookmarksCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.bookmarksCursor > 0 {
			m.bookmarksCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.bookmarksCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.bookmarksCursor = n - 1
	case key.Matches(msg, m.keys.Confirm):
		return m, m.navigate(m.bookmarks[m.bookmarksCursor].ID)
	}
	return m, nil
}

// renderBookmarks renders the bookmarks panel. The open recipe is marked.
func (m Model) renderBookmarks(width, height int) string {
	focused := m.focus == paneBookmarks
	bgColor := m.panelBackground(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := max(width-2, 1)

	var lines []string
	if len(m.bookmarks) == 0 {
		for _, line := range wrap(noBookmarksMessage, inner) {
			lines = append(lines, bg.Render(line, styles.FaintText))
		}
	}
	active := m.activeID()
	for i, b := range m.bookmarks {
		lines = append(lines, m.renderBookmarkRow(i, b.ID == active, b.Title, b.Publisher, b.UserGenerated(), focused, inner, styles, bg))
	}

	listHeight := max(height-2, 0)
	if len(lines) > listHeight {
		start := min(max(m.bookmarksCursor-listHeight+1, 0), len(lines)-listHeight)
		lines = lines[start : start+listHeight]
	}
	return m.renderTitledBox("Bookmarks", strings.Join(lines, "\n"), width, height, focused)
}

func (m Model) renderBookmarkRow(idx int, active bool, title, publisher string, user, focused bool, width int, styles Styles, bg BgStyle) string {
	if focused && idx == m.bookmarksCursor {
		marker := "  "
		if active {
			marker = "● "
		}
		return styles.Selected.Width(width).Render(marker + title + "  " + publisher)
	}
	return m.renderListRow(active, title, publisher, user, styles, bg)
}
