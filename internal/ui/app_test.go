package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/idklol/launcher/internal/identity"
	"github.com/idklol/launcher/internal/launch"
	"github.com/idklol/launcher/internal/prefs"
	"github.com/idklol/launcher/internal/session"
	"github.com/idklol/launcher/internal/settings"
	"github.com/idklol/launcher/internal/state"
)

type fakeAuth struct {
	login    identity.LoginResult
	register identity.RegisterResult
	calls    []string
}

func (f *fakeAuth) Login(_ context.Context, baseURL, username, password string) identity.LoginResult {
	f.calls = append(f.calls, "login "+baseURL+" "+username+" "+password)
	return f.login
}

func (f *fakeAuth) Register(_ context.Context, endpoint, username, email, password string) identity.RegisterResult {
	f.calls = append(f.calls, "register "+endpoint+" "+username+" "+email+" "+password)
	return f.register
}

type fakeSessions struct {
	token   string
	cleared bool
}

func (f *fakeSessions) Load() (string, error) { return f.token, nil }
func (f *fakeSessions) Save(token string) error {
	f.token = token
	return nil
}
func (f *fakeSessions) Clear() error {
	f.token = ""
	f.cleared = true
	return nil
}

type fakeLauncher struct {
	err   error
	calls int
}

func (f *fakeLauncher) Launch() error {
	f.calls++
	return f.err
}

type fakeSettings struct {
	current settings.Settings
	saved   []settings.Settings
	err     error
}

func (f *fakeSettings) Load() settings.Settings { return f.current }
func (f *fakeSettings) Save(s settings.Settings) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, s)
	f.current = s
	return nil
}

type fakePoller struct {
	urls []string
}

func (f *fakePoller) SetURL(u string) { f.urls = append(f.urls, u) }

type harness struct {
	auth     *fakeAuth
	sessions *fakeSessions
	launcher *fakeLauncher
	settings *fakeSettings
	poller   *fakePoller
	store    *state.Store
	prefs    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s := settings.Defaults()
	s.KeycloakURL = "http://id"
	return &harness{
		auth:     &fakeAuth{},
		sessions: &fakeSessions{},
		launcher: &fakeLauncher{},
		settings: &fakeSettings{current: s},
		poller:   &fakePoller{},
		store:    &state.Store{},
		prefs:    filepath.Join(t.TempDir(), "prefs.toml"),
	}
}

func (h *harness) options() Options {
	return Options{
		Auth:      h.auth,
		Sessions:  h.sessions,
		Launcher:  h.launcher,
		Settings:  h.settings,
		Poller:    h.poller,
		Store:     h.store,
		PrefsPath: h.prefs,
		Prefs:     prefs.Defaults(),
	}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNew_StartPage(t *testing.T) {
	h := newHarness(t)
	if got := New(h.options()).Page(); got != PageLogin {
		t.Fatalf("Page = %v, want login", got)
	}

	h.store.SetSession("ember", true)
	if got := New(h.options()).Page(); got != PageHome {
		t.Fatalf("Page = %v, want home", got)
	}
}

func TestLogin_SuccessStoresTokenAndShowsHome(t *testing.T) {
	h := newHarness(t)
	h.auth.login = identity.LoginResult{Success: true, Token: &identity.AuthToken{AccessToken: "tok-1"}}
	m := New(h.options())
	m.login.inputs[loginFieldUsername].SetValue(" ember ")
	m.login.inputs[loginFieldPassword].SetValue("pw")
	m.login.focused = loginFieldPassword

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.busy {
		t.Fatalf("submit did not start a login")
	}
	m, _ = send(t, m, cmd())

	if m.Page() != PageHome {
		t.Fatalf("Page = %v, want home", m.Page())
	}
	if len(h.auth.calls) != 1 || h.auth.calls[0] != "login http://id ember pw" {
		t.Fatalf("calls = %v, want one login against http://id", h.auth.calls)
	}
	if h.sessions.token != "tok-1" {
		t.Fatalf("stored token = %q, want tok-1", h.sessions.token)
	}
	snap := h.store.Snapshot()
	if !snap.LoggedIn || snap.Username != "ember" {
		t.Fatalf("snapshot = %#v, want ember signed in", snap)
	}
	if got := prefs.Load(h.prefs).LastUsername; got != "ember" {
		t.Fatalf("LastUsername = %q, want ember", got)
	}
	if m.login.value(loginFieldPassword) != "" {
		t.Fatalf("password field was not cleared")
	}
}

type argsSpawner struct {
	name string
	args []string
}

func (a *argsSpawner) Start(name string, args []string) (int, error) {
	a.name = name
	a.args = args
	return 42, nil
}

func TestLogin_UnsavedTokenStillReachesTheGame(t *testing.T) {
	keyring.MockInitWithError(errors.New("data passed to Set was too big"))
	h := newHarness(t)
	h.auth.login = identity.LoginResult{Success: true, Token: &identity.AuthToken{AccessToken: "tok-1"}}
	h.settings.current.GameExecutablePath = "/opt/era/era"

	sessions := session.NewCachedStore(session.NewKeyringStore())
	spawner := &argsSpawner{}
	opts := h.options()
	opts.Sessions = sessions
	opts.Launcher = launch.NewCoordinator(h.settings, sessions, launch.WithSpawner(spawner), launch.WithGOOS("linux"))
	m := New(opts)

	m.login.inputs[loginFieldUsername].SetValue("ember")
	m.login.inputs[loginFieldPassword].SetValue("pw")
	m.login.focused = loginFieldPassword
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())

	if m.Page() != PageHome {
		t.Fatalf("Page = %v, want home", m.Page())
	}
	if m.flash.kind != flashWarning || !strings.Contains(m.flash.text, "could not be saved") {
		t.Fatalf("flash = %#v, want a warning about the unsaved sign-in", m.flash)
	}

	m, cmd = send(t, m, keyRune('p'))
	if cmd == nil {
		t.Fatalf("play did not start a launch")
	}
	m, _ = send(t, m, cmd())

	if spawner.name != "/opt/era/era" {
		t.Fatalf("spawned %q, want /opt/era/era", spawner.name)
	}
	found := false
	for _, arg := range spawner.args {
		if arg == "-authToken=tok-1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("args = %v, want -authToken=tok-1", spawner.args)
	}
	if m.flash.kind != flashSuccess {
		t.Fatalf("flash = %#v, want launch success", m.flash)
	}
}

func TestLogin_FailureShowsMessage(t *testing.T) {
	h := newHarness(t)
	h.auth.login = identity.LoginResult{Error: "Invalid user credentials", Kind: identity.FailureRejected}
	m := New(h.options())
	m.login.inputs[loginFieldUsername].SetValue("ember")
	m.login.inputs[loginFieldPassword].SetValue("bad")
	m.login.focused = loginFieldPassword

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())

	if m.Page() != PageLogin || m.busy {
		t.Fatalf("Page = %v busy = %v, want login and idle", m.Page(), m.busy)
	}
	if !strings.Contains(m.View(), "Invalid user credentials") {
		t.Fatalf("View does not show the login error")
	}
	if h.sessions.token != "" {
		t.Fatalf("token stored after failed login")
	}
}

func TestLogin_RequiresFields(t *testing.T) {
	h := newHarness(t)
	m := New(h.options())
	m.login.focused = loginFieldPassword

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || len(h.auth.calls) != 0 {
		t.Fatalf("login attempted with empty fields")
	}
	if m.flash.kind != flashError {
		t.Fatalf("flash = %#v, want error", m.flash)
	}
}

func TestLogin_EnterOnUsernameMovesToPassword(t *testing.T) {
	h := newHarness(t)
	m := New(h.options())
	m.login.focused = loginFieldUsername

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.login.focused != loginFieldPassword {
		t.Fatalf("focused = %d, want password", m.login.focused)
	}
}

func TestRegister_OnlyWhenEndpointKnown(t *testing.T) {
	h := newHarness(t)
	core, recorded := observer.New(zapcore.DebugLevel)
	opts := h.options()
	opts.Logger = zap.New(core)

	m := New(opts)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.login.registering {
		t.Fatalf("register mode opened without an endpoint")
	}

	h.store.Apply(state.Update{Event: state.EventProbeSucceeded, BaseURL: "http://id", RegistrationEndpoint: "http://id/register"})
	m, _ = send(t, m, snapshotMsg(h.store.Snapshot()))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.login.registering {
		t.Fatalf("register mode did not open")
	}
	if n := recorded.FilterMessage("opening registration page").Len(); n != 1 {
		t.Fatalf("registration open records = %d, want 1", n)
	}

	// Endpoint disappears when the server goes offline.
	h.store.Apply(state.Update{Event: state.EventProbeFailed, BaseURL: "http://id"})
	m, _ = send(t, m, snapshotMsg(h.store.Snapshot()))
	if m.login.registering {
		t.Fatalf("register mode kept without an endpoint")
	}
}

func TestRegister_SuccessReturnsToSignIn(t *testing.T) {
	h := newHarness(t)
	h.auth.register = identity.RegisterResult{Success: true}
	h.store.Apply(state.Update{Event: state.EventProbeSucceeded, BaseURL: "http://id", RegistrationEndpoint: "http://id/register"})
	m := New(h.options())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	m.login.inputs[loginFieldUsername].SetValue("ember")
	m.login.inputs[loginFieldEmail].SetValue("ember@example.com")
	m.login.inputs[loginFieldPassword].SetValue("pw")
	m.login.focused = loginFieldPassword

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("submit did not start a registration")
	}
	m, _ = send(t, m, cmd())

	if len(h.auth.calls) != 1 || h.auth.calls[0] != "register http://id/register ember ember@example.com pw" {
		t.Fatalf("calls = %v, want one registration", h.auth.calls)
	}
	if m.login.registering || m.login.value(loginFieldUsername) != "ember" || m.login.value(loginFieldPassword) != "" {
		t.Fatalf("form = %#v, want sign-in mode with username kept", m.login)
	}
	if m.flash.kind != flashSuccess {
		t.Fatalf("flash = %#v, want success", m.flash)
	}
}

func TestPlay_ConfigurationErrorIsShown(t *testing.T) {
	h := newHarness(t)
	h.launcher.err = &launch.ConfigurationError{Setting: settings.KeyGameExecutablePath}
	h.store.SetSession("ember", true)
	m := New(h.options())

	m, cmd := send(t, m, keyRune('p'))
	if cmd == nil {
		t.Fatalf("play did not start a launch")
	}
	m, _ = send(t, m, cmd())

	if h.launcher.calls != 1 {
		t.Fatalf("Launch calls = %d, want 1", h.launcher.calls)
	}
	if !strings.Contains(m.View(), "Game executable path is not configured.") {
		t.Fatalf("View does not show the configuration error")
	}
}

func TestPlay_LaunchErrorAndSuccess(t *testing.T) {
	h := newHarness(t)
	h.store.SetSession("ember", true)
	h.launcher.err = &launch.LaunchError{Path: "/bin/game", Err: errors.New("denied")}
	m := New(h.options())

	m, cmd := send(t, m, keyRune('p'))
	m, _ = send(t, m, cmd())
	if !strings.Contains(m.flash.text, "check the path and file permissions") {
		t.Fatalf("flash = %q, want launch hint", m.flash.text)
	}

	h.launcher.err = nil
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, cmd())
	if m.flash.kind != flashSuccess {
		t.Fatalf("flash = %#v, want success", m.flash)
	}
}

func TestSettings_SaveRetargetsPoller(t *testing.T) {
	h := newHarness(t)
	h.store.SetSession("ember", true)
	m := New(h.options())

	m, _ = send(t, m, keyRune('s'))
	if m.Page() != PageSettings {
		t.Fatalf("Page = %v, want settings", m.Page())
	}
	if got := m.settingsPg.inputs[3].Value(); got != "http://id" {
		t.Fatalf("identity URL input = %q, want http://id", got)
	}
	m.settingsPg.inputs[0].SetValue(" /bin/game ")
	m.settingsPg.inputs[3].SetValue("http://new")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(h.settings.saved) != 1 {
		t.Fatalf("saves = %d, want 1", len(h.settings.saved))
	}
	saved := h.settings.saved[0]
	if saved.GameExecutablePath != "/bin/game" || saved.KeycloakURL != "http://new" {
		t.Fatalf("saved = %#v, want trimmed game path and new URL", saved)
	}
	if len(h.poller.urls) != 1 || h.poller.urls[0] != "http://new" {
		t.Fatalf("poller urls = %v, want [http://new]", h.poller.urls)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Page() != PageHome {
		t.Fatalf("Page = %v, want home", m.Page())
	}
}

func TestSettings_SaveFailureKeepsPoller(t *testing.T) {
	h := newHarness(t)
	h.settings.err = errors.New("disk full")
	h.store.SetSession("ember", true)
	m := New(h.options())

	m, _ = send(t, m, keyRune('s'))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if len(h.poller.urls) != 0 {
		t.Fatalf("poller retargeted after failed save")
	}
	if !strings.Contains(m.flash.text, "disk full") {
		t.Fatalf("flash = %q, want save error", m.flash.text)
	}
}

func TestSwitchAccount_ClearsSession(t *testing.T) {
	h := newHarness(t)
	h.sessions.token = "tok"
	h.store.SetSession("ember", true)
	m := New(h.options())

	m, _ = send(t, m, keyRune('o'))

	if m.Page() != PageLogin || !h.sessions.cleared || h.store.Snapshot().LoggedIn {
		t.Fatalf("page = %v cleared = %v, want login with session cleared", m.Page(), h.sessions.cleared)
	}
}

func TestCycleTheme_SavesPrefs(t *testing.T) {
	h := newHarness(t)
	m := New(h.options())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if m.theme.Name != "Frost" {
		t.Fatalf("theme = %q, want Frost", m.theme.Name)
	}
	if got := prefs.Load(h.prefs).Theme; got != "Frost" {
		t.Fatalf("saved theme = %q, want Frost", got)
	}
}

func TestLogsPage_LoadsRecords(t *testing.T) {
	h := newHarness(t)
	h.store.SetSession("ember", true)
	logPath := filepath.Join(t.TempDir(), "launcher.log")
	content := `{"level":"info","ts":"2026-03-01T10:15:30Z","message":"login succeeded"}` + "\n" +
		`{"level":"error","ts":"2026-03-01T10:16:30Z","message":"failed to launch game executable"}` + "\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	opts := h.options()
	opts.LogPath = logPath
	m := New(opts)

	m, cmd := send(t, m, keyRune('l'))
	if m.Page() != PageLogs || cmd == nil {
		t.Fatalf("Page = %v, want logs with a load command", m.Page())
	}
	m, _ = send(t, m, cmd())

	if len(m.logLines) != 2 {
		t.Fatalf("logLines = %d, want 2", len(m.logLines))
	}
	if !strings.Contains(m.logLines[1], "failed to launch game executable") {
		t.Fatalf("logLines[1] = %q, want launch failure", m.logLines[1])
	}
}

func TestTick_RefreshesSnapshot(t *testing.T) {
	h := newHarness(t)
	m := New(h.options())

	h.store.Apply(state.Update{Event: state.EventURLCleared})
	m, _ = send(t, m, fetchSnapshotCmd(h.store)())

	if m.snapshot.Status != state.StatusOffline {
		t.Fatalf("Status = %v, want offline", m.snapshot.Status)
	}
	if !strings.Contains(m.View(), "OFFLINE") {
		t.Fatalf("View does not show the offline badge")
	}
}
