package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idklol/launcher/internal/logs"
	"github.com/idklol/launcher/internal/logtail"
)

const logTailLines = 400

type logsLoadedMsg struct {
	records []logs.Record
	err     error
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{}
		}
		records, err := logtail.ReadRecords(path, logTailLines)
		return logsLoadedMsg{records: records, err: err}
	}
}

func (m *Model) handleLogsLoaded(msg logsLoadedMsg) {
	if m.page != PageLogs {
		return
	}
	if msg.err != nil {
		m.setFlash(flashError, fmt.Sprintf("Could not read log: %v", msg.err))
		return
	}
	st := m.theme.Styles()
	lines := make([]string, 0, len(msg.records))
	for _, rec := range msg.records {
		lines = append(lines, renderRecord(st, rec))
	}
	atBottom := m.logViewport.AtBottom() || len(m.logLines) == 0
	m.logLines = lines
	if len(lines) == 0 {
		m.logViewport.SetContent(st.FaintText.Render("No log entries yet."))
		return
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

// renderRecord colors the level label of a formatted record.
func renderRecord(st Styles, rec logs.Record) string {
	line := logtail.Format(rec)
	if rec.Level == "" {
		return st.MutedText.Render(line)
	}
	label := strings.ToUpper(rec.Level)
	idx := strings.Index(line, label)
	if idx < 0 {
		return line
	}
	return st.FaintText.Render(line[:idx]) + st.LevelStyle(rec.Level).Render(label) + line[idx+len(label):]
}

func (m *Model) resizeLogViewport() {
	width := m.width - 4
	height := m.height - 8
	if width < 20 {
		width = 80
	}
	if height < 5 {
		height = 20
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.showPage(m.homeOrLogin())
	case key.Matches(msg, m.keys.Refresh):
		return m, loadLogsCmd(m.logPath)
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m Model) renderLogs() string {
	st := m.theme.Styles()
	title := st.AccentText.Render("Logs")
	if m.logPath != "" {
		title += " " + st.FaintText.Render(m.logPath)
	}
	return title + "\n\n" + m.logViewport.View()
}
