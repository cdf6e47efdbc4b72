package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/forkify/internal/event"
)

// handleResultsKey processes keyboard input for the results panel.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevPage):
		if m.searchState.Page > 1 {
			return m, m.publish(event.Event{Kind: event.Paginate, Page: m.searchState.Page - 1})
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if m.searchState.Page < m.searchState.TotalPages() {
			return m, m.publish(event.Event{Kind: event.Paginate, Page: m.searchState.Page + 1})
		}
		return m, nil
	}

	n := len(m.results)
	if n == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.resultsCursor < n-1 {
			m.resultsCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.resultsCursor > 0 {
			m.resultsCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.resultsCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.resultsCursor = n - 1
	case key.Matches(msg, m.keys.Confirm):
		return m, m.navigate(m.results[m.resultsCursor].ID)
	}
	return m, nil
}

// renderResults renders the results panel with its pagination line.
func (m Model) renderResults(width, height int) string {
	focused := m.focus == paneResults
	bgColor := m.panelBackground(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := max(width-2, 1)

	var lines []string
	switch m.resultsState {
	case panelEmpty:
		lines = append(lines, bg.Render("Press / to search", styles.FaintText))
	case panelLoading:
		lines = append(lines, bg.Render(m.spinner.View()+" Searching...", styles.MutedText))
	case panelError:
		for _, line := range wrap("⚠ "+m.resultsText, inner) {
			lines = append(lines, bg.Render(line, styles.DangerText))
		}
	default:
		active := m.activeID()
		for i, item := range m.results {
			lines = append(lines, m.renderResultRow(i, item.ID == active, item.Title, item.Publisher, item.Key != "", focused, inner, styles, bg))
		}
	}

	listHeight := max(height-3, 0)
	if len(lines) > listHeight {
		start := min(max(m.resultsCursor-listHeight+1, 0), len(lines)-listHeight)
		lines = lines[start : start+listHeight]
	}
	for len(lines) < listHeight {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderPagination(inner, styles, bg))

	title := "Results"
	if n := len(m.searchState.Results); n > 0 {
		title = "Results (" + strconv.Itoa(n) + ")"
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, focused)
}

func (m Model) renderResultRow(idx int, active bool, title, publisher string, user, focused bool, width int, styles Styles, bg BgStyle) string {
	if focused && idx == m.resultsCursor {
		marker := "  "
		if active {
			marker = "● "
		}
		return styles.Selected.Width(width).Render(marker + title + "  " + publisher)
	}
	return m.renderListRow(active, title, publisher, user, styles, bg)
}

// renderListRow renders a recipe row shared by the results and bookmarks
// panels: active marker, title, user badge, publisher.
func (m Model) renderListRow(active bool, title, publisher string, user bool, styles Styles, bg BgStyle) string {
	marker := "  "
	titleStyle := styles.Text
	if active {
		marker = "● "
		titleStyle = styles.AccentText.Bold(true)
	}

	row := bg.Render(marker, styles.AccentText) + bg.Render(title, titleStyle)
	if user {
		row += bg.Space() + styles.BadgeStyle("user").Render("U")
	}
	if publisher != "" {
		row += bg.Spaces(2) + bg.Render(publisher, styles.MutedText)
	}
	return row
}

// renderPagination shows previous and next controls only when those pages
// exist.
func (m Model) renderPagination(width int, styles Styles, bg BgStyle) string {
	total := m.searchState.TotalPages()
	if total <= 1 {
		return ""
	}
	page := m.searchState.Page

	left := ""
	if page > 1 {
		left = bg.Render("◀ Page "+strconv.Itoa(page-1), styles.AccentText)
	}
	right := ""
	if page < total {
		right = bg.Render("Page "+strconv.Itoa(page+1)+" ▶", styles.AccentText)
	}
	middle := bg.Render(m.pager.View(), styles.FaintText)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(middle)-lipgloss.Width(right), 2)
	return left + bg.Spaces(gap/2) + middle + bg.Spaces(gap-gap/2) + right
}
