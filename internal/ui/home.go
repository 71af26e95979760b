package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idklol/launcher/internal/launch"
	"github.com/idklol/launcher/internal/state"
)

type launchDoneMsg struct {
	err error
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Play):
		if m.busy {
			return m, nil
		}
		if m.launcher == nil {
			m.setFlash(flashError, "Launching is not available.")
			return m, nil
		}
		m.busy = true
		m.setFlash(flashInfo, "Starting game…")
		launcher := m.launcher
		return m, func() tea.Msg {
			return launchDoneMsg{err: launcher.Launch()}
		}

	case key.Matches(msg, m.keys.Settings):
		return m, m.showPage(PageSettings)

	case key.Matches(msg, m.keys.Logs):
		return m, m.showPage(PageLogs)

	case key.Matches(msg, m.keys.SwitchAccount):
		return m.switchAccount()
	}
	return m, nil
}

func (m Model) handleLaunchDone(msg launchDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err == nil {
		m.setFlash(flashSuccess, "Game started. You can close the launcher.")
		return m, nil
	}
	var cfgErr *launch.ConfigurationError
	if errors.As(msg.err, &cfgErr) {
		m.setFlash(flashError, cfgErr.Error()+" Open settings (s) to set it.")
		return m, nil
	}
	m.setFlash(flashError, msg.err.Error())
	return m, nil
}

func (m Model) switchAccount() (tea.Model, tea.Cmd) {
	if m.sessions != nil {
		if err := m.sessions.Clear(); err != nil {
			m.logger.Warn("clear stored token", zap.Error(err))
		}
	}
	m.store.SetSession("", false)
	m.snapshot = m.store.Snapshot()
	m.logger.Info("signed out")
	return m, m.showPage(PageLogin)
}

func (m Model) renderHome() string {
	st := m.theme.Styles()
	var b strings.Builder

	user := m.snapshot.Username
	if user == "" {
		user = "player"
	}
	b.WriteString(st.Text.Render("Welcome back, "))
	b.WriteString(st.AccentText.Render(user))
	b.WriteString("\n\n")

	b.WriteString(st.MutedText.Render("Identity server  "))
	b.WriteString(m.renderStatusBadge())
	if m.snapshot.BaseURL != "" {
		b.WriteString(" ")
		b.WriteString(st.FaintText.Render(m.snapshot.BaseURL))
	}
	b.WriteString("\n")
	if !m.snapshot.LastChecked.IsZero() {
		b.WriteString(st.FaintText.Render(fmt.Sprintf("last checked %s", m.snapshot.LastChecked.Format(time.Kitchen))))
		b.WriteString("\n")
	}

	s := m.loadSettings()
	b.WriteString("\n")
	b.WriteString(renderSetting(st, "Game", s.GameExecutablePath))
	b.WriteString(renderSetting(st, "Game server", s.GameServerURL))
	b.WriteString(renderSetting(st, "Chat server", s.ChatServerURL))
	b.WriteString("\n")
	b.WriteString(st.SuccessText.Render("▶ Play (p)"))

	return st.Panel.Render(b.String())
}

func renderSetting(st Styles, label, value string) string {
	if strings.TrimSpace(value) == "" {
		value = st.FaintText.Render("not set")
	} else {
		value = st.Text.Render(value)
	}
	return st.MutedText.Render(fmt.Sprintf("%-12s ", label)) + value + "\n"
}

func (m Model) renderStatusBadge() string {
	st := m.theme.Styles()
	status := m.snapshot.Status
	label := strings.ToUpper(status.String())
	if status == state.StatusUnknown && m.snapshot.BaseURL != "" {
		label = "CHECKING"
	}
	return st.StatusStyle(status.String()).Render(label)
}

// renderHeader renders the logo line shared by all pages.
func (m Model) renderHeader() string {
	st := m.theme.Styles()
	left := st.Logo.Render("IDKLOL") + " " + st.MutedText.Render("launcher")
	right := m.renderStatusBadge()
	if m.snapshot.LoggedIn && m.snapshot.Username != "" {
		right = st.InfoText.Render(m.snapshot.Username) + "  " + right
	}
	line := left + "   " + right
	if m.width > 0 {
		return st.Header.Width(m.width).Render(line)
	}
	return st.Header.Render(line)
}

func (m Model) renderContent() string {
	switch m.page {
	case PageLogin:
		return m.renderLogin()
	case PageHome:
		return m.renderHome()
	case PageSettings:
		return m.renderSettings()
	case PageLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

func (m Model) renderFlash() string {
	if m.flash.text == "" {
		return ""
	}
	st := m.theme.Styles()
	switch m.flash.kind {
	case flashError:
		return st.DangerText.Render(m.flash.text)
	case flashSuccess:
		return st.SuccessText.Render(m.flash.text)
	case flashWarning:
		return st.WarningText.Render(m.flash.text)
	default:
		return st.InfoText.Render(m.flash.text)
	}
}

func (m Model) renderFooter() string {
	var bindings []key.Binding
	switch m.page {
	case PageLogin:
		bindings = []key.Binding{m.keys.Submit, m.keys.Next}
		if m.login.registering {
			bindings = append(bindings, m.keys.Back)
		} else if m.snapshot.RegistrationEndpoint != "" {
			bindings = append(bindings, m.keys.ToggleRegister)
		}
	case PageHome:
		bindings = []key.Binding{m.keys.Play, m.keys.Settings, m.keys.Logs, m.keys.SwitchAccount}
	case PageSettings:
		bindings = []key.Binding{m.keys.Save, m.keys.Next, m.keys.Back}
	case PageLogs:
		bindings = []key.Binding{m.keys.Refresh, m.keys.Back}
	}
	bindings = append(bindings, m.keys.CycleTheme, m.keys.Quit)
	footer := m.help.ShortHelpView(bindings)
	if m.width > 0 {
		return m.theme.Styles().Footer.Width(m.width).Render(footer)
	}
	return m.theme.Styles().Footer.Render(footer)
}
