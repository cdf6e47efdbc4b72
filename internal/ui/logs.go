package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/forkify/internal/logtail"
)

const logTailLines = 200

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

// loadLogs reads the tail of the session log off the update loop.
func (m Model) loadLogs() tea.Cmd {
	path := m.logPath
	if path == "" {
		return func() tea.Msg { return logsMsg{} }
	}
	return func() tea.Msg {
		entries, err := logtail.Tail(path, logTailLines)
		return logsMsg{entries: entries, err: err}
	}
}

func (m *Model) applyLogs(msg logsMsg) {
	m.logErr = msg.err
	content := "No log entries yet."
	switch {
	case msg.err != nil:
		content = "Could not read the log: " + msg.err.Error()
	case len(msg.entries) > 0:
		content = strings.Join(formatLogEntries(msg.entries), "\n")
	}
	m.logViewport.SetContent(content)
	m.logViewport.GotoBottom()
}

// handleLogsKey processes keyboard input while the log overlay is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadLogs()
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) layoutLogs() {
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.height-4, 1)
}

// renderLogs renders the session log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := "Session log"
	if m.logPath != "" {
		title += " · " + m.logPath
	}
	body := m.logViewport.View()
	if m.logErr != nil {
		body = styles.DangerText.Render(body)
	}
	box := m.renderTitledBox(title, body, m.width, max(m.height-1, 3), true)
	hint := styles.FaintText.Render("r refresh  •  g/G top/bottom  •  esc close")
	return lipgloss.JoinVertical(lipgloss.Left, box, hint)
}
