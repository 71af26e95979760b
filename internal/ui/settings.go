package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idklol/launcher/internal/settings"
)

var settingLabels = map[string]string{
	settings.KeyGameExecutablePath: "Game executable",
	settings.KeyGameServerURL:      "Game server URL",
	settings.KeyChatServerURL:      "Chat server URL",
	settings.KeyKeycloakURL:        "Identity server URL",
	settings.KeyLogFileName:        "Log file name",
}

// settingsForm edits every settings key, in file order.
type settingsForm struct {
	inputs  []textinput.Model
	focused int
}

func newSettingsForm(s settings.Settings) settingsForm {
	f := settingsForm{inputs: make([]textinput.Model, len(settings.Keys))}
	for i, k := range settings.Keys {
		in := textinput.New()
		in.CharLimit = 1024
		in.Placeholder = k
		v, _ := s.Get(k)
		in.SetValue(v)
		f.inputs[i] = in
	}
	return f
}

func (f *settingsForm) focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focused].Focus()
}

func (f *settingsForm) move(delta int) tea.Cmd {
	n := len(f.inputs)
	f.focused = (f.focused + delta + n) % n
	return f.focus()
}

func (f *settingsForm) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

// values builds a Settings record from the inputs, starting from base so
// nothing outside the form is lost.
func (f settingsForm) values(base settings.Settings) settings.Settings {
	out := base
	for i, k := range settings.Keys {
		_ = out.Set(k, strings.TrimSpace(f.inputs[i].Value()))
	}
	return out
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.showPage(m.homeOrLogin())

	case key.Matches(msg, m.keys.Save):
		return m.saveSettings()

	case key.Matches(msg, m.keys.Submit):
		if m.settingsPg.focused == len(m.settingsPg.inputs)-1 {
			return m.saveSettings()
		}
		return m, m.settingsPg.move(1)

	case key.Matches(msg, m.keys.Next):
		return m, m.settingsPg.move(1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.settingsPg.move(-1)
	}
	return m, m.settingsPg.update(msg)
}

func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	if m.settings == nil {
		m.setFlash(flashError, "Settings cannot be saved.")
		return m, nil
	}
	next := m.settingsPg.values(m.settings.Load())
	if err := m.settings.Save(next); err != nil {
		m.logger.Error("save settings", zap.Error(err))
		m.setFlash(flashError, fmt.Sprintf("Could not save settings: %v", err))
		return m, nil
	}
	m.logger.Info("settings saved")
	if m.poller != nil {
		m.poller.SetURL(next.KeycloakURL)
	}
	m.setFlash(flashSuccess, "Settings saved.")
	return m, fetchSnapshotCmd(m.store)
}

func (m Model) homeOrLogin() Page {
	if m.snapshot.LoggedIn {
		return PageHome
	}
	return PageLogin
}

func (m Model) renderSettings() string {
	st := m.theme.Styles()
	var b strings.Builder
	b.WriteString(st.AccentText.Render("Settings"))
	b.WriteString("\n\n")
	for i, k := range settings.Keys {
		label := st.MutedText.Render(settingLabels[k])
		if i == m.settingsPg.focused {
			label = st.FocusedLabel.Render(settingLabels[k])
		}
		b.WriteString(label)
		b.WriteString("\n")
		if i < len(m.settingsPg.inputs) {
			b.WriteString(m.settingsPg.inputs[i].View())
		}
		b.WriteString("\n\n")
	}
	b.WriteString(st.FaintText.Render(fmt.Sprintf("Log file names may use {date} or %q for one file per day.", settings.DateLogSentinel)))
	return st.Panel.Render(b.String())
}
