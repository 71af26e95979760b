package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idklol/launcher/internal/identity"
	"github.com/idklol/launcher/internal/logs"
)

const (
	loginFieldUsername = iota
	loginFieldEmail
	loginFieldPassword
)

// loginForm holds the sign-in and account creation inputs. The email field
// is only shown while registering.
type loginForm struct {
	inputs      [3]textinput.Model
	focused     int
	registering bool
}

type loginDoneMsg struct {
	username string
	result   identity.LoginResult
}

type registerDoneMsg struct {
	username string
	result   identity.RegisterResult
}

func newLoginForm(lastUsername string) loginForm {
	var f loginForm

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.SetValue(lastUsername)

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	f.inputs = [3]textinput.Model{username, email, password}
	if strings.TrimSpace(lastUsername) != "" {
		f.focused = loginFieldPassword
	}
	return f
}

func (f *loginForm) fields() []int {
	if f.registering {
		return []int{loginFieldUsername, loginFieldEmail, loginFieldPassword}
	}
	return []int{loginFieldUsername, loginFieldPassword}
}

func (f *loginForm) focus() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focused].Focus()
}

func (f *loginForm) move(delta int) tea.Cmd {
	order := f.fields()
	pos := 0
	for i, idx := range order {
		if idx == f.focused {
			pos = i
		}
	}
	pos = (pos + delta + len(order)) % len(order)
	f.focused = order[pos]
	return f.focus()
}

func (f *loginForm) onLastField() bool {
	order := f.fields()
	return f.focused == order[len(order)-1]
}

func (f *loginForm) setRegistering(on bool) {
	f.registering = on
	if !on && f.focused == loginFieldEmail {
		f.focused = loginFieldUsername
	}
}

func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

func (f loginForm) value(field int) string {
	return f.inputs[field].Value()
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.ToggleRegister):
		return m.toggleRegister()

	case key.Matches(msg, m.keys.Back):
		if m.login.registering {
			m.login.setRegistering(false)
			return m, m.login.focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if !m.login.onLastField() {
			return m, m.login.move(1)
		}
		if m.login.registering {
			return m.submitRegister()
		}
		return m.submitLogin()

	case key.Matches(msg, m.keys.Next):
		return m, m.login.move(1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.login.move(-1)
	}
	return m, m.login.update(msg)
}

func (m Model) toggleRegister() (tea.Model, tea.Cmd) {
	if m.login.registering {
		m.login.setRegistering(false)
		m.flash = flash{}
		return m, m.login.focus()
	}
	endpoint := m.snapshot.RegistrationEndpoint
	if endpoint == "" {
		m.setFlash(flashInfo, "Account creation is not available on this server.")
		return m, nil
	}
	logs.Write(m.logger, logs.Entry{
		Level:   logs.LevelInfo,
		Message: "opening registration page",
		Data:    map[string]string{"endpoint": endpoint},
	})
	m.login.setRegistering(true)
	m.login.focused = loginFieldUsername
	m.flash = flash{}
	return m, m.login.focus()
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.login.value(loginFieldUsername))
	password := m.login.value(loginFieldPassword)
	if username == "" || password == "" {
		m.setFlash(flashError, "Enter your username and password.")
		return m, nil
	}
	if m.auth == nil {
		m.setFlash(flashError, "Sign-in is not available.")
		return m, nil
	}
	baseURL := m.loadSettings().KeycloakURL
	if identity.NormalizeBaseURL(baseURL) == "" {
		m.setFlash(flashError, "Identity server URL is not configured.")
		return m, nil
	}

	m.busy = true
	m.setFlash(flashInfo, "Signing in…")
	auth, ctx := m.auth, m.ctx
	return m, func() tea.Msg {
		return loginDoneMsg{username: username, result: auth.Login(ctx, baseURL, username, password)}
	}
}

func (m Model) submitRegister() (tea.Model, tea.Cmd) {
	username := strings.TrimSpace(m.login.value(loginFieldUsername))
	email := strings.TrimSpace(m.login.value(loginFieldEmail))
	password := m.login.value(loginFieldPassword)
	if username == "" || email == "" || password == "" {
		m.setFlash(flashError, "Enter a username, email and password.")
		return m, nil
	}
	endpoint := m.snapshot.RegistrationEndpoint
	if m.auth == nil || endpoint == "" {
		m.setFlash(flashError, "Account creation is not available on this server.")
		return m, nil
	}

	m.busy = true
	m.setFlash(flashInfo, "Creating account…")
	auth, ctx := m.auth, m.ctx
	return m, func() tea.Msg {
		return registerDoneMsg{username: username, result: auth.Register(ctx, endpoint, username, email, password)}
	}
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if !msg.result.Success || msg.result.Token == nil {
		text := msg.result.Error
		if text == "" {
			text = "Login failed."
		}
		m.setFlash(flashError, text)
		return m, nil
	}

	persisted := true
	if m.sessions != nil {
		if err := m.sessions.Save(msg.result.Token.AccessToken); err != nil {
			persisted = false
			m.logger.Warn("store access token", zap.Error(err))
		}
	}
	name := msg.result.Token.Username()
	if name == "" {
		name = msg.username
	}
	m.store.SetSession(name, true)
	m.snapshot = m.store.Snapshot()

	m.prefs = m.prefs.WithUser(msg.username)
	m.savePrefs()
	m.login.inputs[loginFieldPassword].SetValue("")

	cmd := m.showPage(PageHome)
	if !persisted {
		m.setFlash(flashWarning, "Signed in as "+name+". Your sign-in could not be saved and ends when the launcher closes.")
		return m, cmd
	}
	m.setFlash(flashSuccess, "Signed in as "+name+".")
	return m, cmd
}

func (m Model) handleRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if !msg.result.Success {
		text := msg.result.Error
		if text == "" {
			text = "Registration failed."
		}
		m.setFlash(flashError, text)
		return m, nil
	}
	m.login.setRegistering(false)
	m.login.inputs[loginFieldUsername].SetValue(msg.username)
	m.login.inputs[loginFieldEmail].SetValue("")
	m.login.inputs[loginFieldPassword].SetValue("")
	m.login.focused = loginFieldPassword
	m.setFlash(flashSuccess, "Account created. Sign in to continue.")
	return m, m.login.focus()
}

func (m Model) renderLogin() string {
	st := m.theme.Styles()
	var b strings.Builder

	title := "Sign in"
	if m.login.registering {
		title = "Create account"
	}
	b.WriteString(st.AccentText.Render(title))
	b.WriteString("\n\n")

	labels := map[int]string{
		loginFieldUsername: "Username",
		loginFieldEmail:    "Email",
		loginFieldPassword: "Password",
	}
	for _, idx := range m.login.fields() {
		label := st.MutedText.Render(labels[idx])
		if idx == m.login.focused {
			label = st.FocusedLabel.Render(labels[idx])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.login.inputs[idx].View())
		b.WriteString("\n\n")
	}

	switch {
	case m.login.registering:
		b.WriteString(st.FaintText.Render("esc to return to sign in"))
	case m.snapshot.RegistrationEndpoint != "":
		b.WriteString(st.FaintText.Render("No account? ctrl+r to create one"))
	}
	return st.Panel.Render(b.String())
}
