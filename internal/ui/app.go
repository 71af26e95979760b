package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idklol/launcher/internal/identity"
	"github.com/idklol/launcher/internal/prefs"
	"github.com/idklol/launcher/internal/session"
	"github.com/idklol/launcher/internal/settings"
	"github.com/idklol/launcher/internal/state"
)

// Page represents the current active page.
type Page int

const (
	PageLogin Page = iota
	PageHome
	PageSettings
	PageLogs
)

// Authenticator signs users in and creates accounts.
type Authenticator interface {
	Login(ctx context.Context, baseURL, username, password string) identity.LoginResult
	Register(ctx context.Context, registrationEndpoint, username, email, password string) identity.RegisterResult
}

// Launcher starts the game.
type Launcher interface {
	Launch() error
}

// SettingsStore reads and writes the launcher settings.
type SettingsStore interface {
	Load() settings.Settings
	Save(settings.Settings) error
}

// URLTarget is told when the identity base URL changes.
type URLTarget interface {
	SetURL(baseURL string)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Auth      Authenticator
	Sessions  session.Store
	Launcher  Launcher
	Settings  SettingsStore
	Poller    URLTarget
	Store     *state.Store
	Logger    *zap.Logger
	LogPath   string
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	Prefs     prefs.Prefs
}

type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashWarning
	flashError
)

type flash struct {
	kind flashKind
	text string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	auth      Authenticator
	sessions  session.Store
	launcher  Launcher
	settings  SettingsStore
	poller    URLTarget
	store     *state.Store
	logger    *zap.Logger
	logPath   string
	prefsPath string
	prefs     prefs.Prefs
	pollTick  time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	page   Page
	width  int
	height int
	ready  bool
	busy   bool
	flash  flash

	// Data state
	snapshot state.Snapshot

	// Pages
	login       loginForm
	settingsPg  settingsForm
	logViewport viewport.Model
	logLines    []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Prefs.Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	m := Model{
		ctx:         ctx,
		auth:        opts.Auth,
		sessions:    opts.Sessions,
		launcher:    opts.Launcher,
		settings:    opts.Settings,
		poller:      opts.Poller,
		store:       store,
		logger:      logger,
		logPath:     opts.LogPath,
		prefsPath:   prefsPath,
		prefs:       opts.Prefs,
		pollTick:    pollTick,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		snapshot:    store.Snapshot(),
		login:       newLoginForm(opts.Prefs.LastUsername),
		logViewport: viewport.New(0, 0),
	}
	if m.snapshot.LoggedIn {
		m.page = PageHome
	} else {
		m.page = PageLogin
	}
	return m
}

// Page returns the page currently shown.
func (m Model) Page() Page {
	return m.page
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.store),
	}
	if m.page == PageLogin {
		cmds = append(cmds, m.login.focus())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if m.page == PageLogin && m.login.registering && m.snapshot.RegistrationEndpoint == "" {
			// Server stopped advertising registration.
			m.login.setRegistering(false)
		}
		return m, nil

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case registerDoneMsg:
		return m.handleRegisterDone(msg)

	case launchDoneMsg:
		return m.handleLaunchDone(msg)

	case logsLoadedMsg:
		m.handleLogsLoaded(msg)
		return m, nil
	}

	return m.updateInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	if f := m.renderFlash(); f != "" {
		b.WriteString("\n")
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil
	}

	switch m.page {
	case PageLogin:
		return m.handleLoginKey(msg)
	case PageHome:
		return m.handleHomeKey(msg)
	case PageSettings:
		return m.handleSettingsKey(msg)
	case PageLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// updateInputs forwards non-key messages (cursor blink) to the active form.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case PageLogin:
		cmd = m.login.update(msg)
	case PageSettings:
		cmd = m.settingsPg.update(msg)
	}
	return m, cmd
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{fetchSnapshotCmd(m.store)}
	if m.page == PageLogs {
		cmds = append(cmds, loadLogsCmd(m.logPath))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m *Model) showPage(p Page) tea.Cmd {
	m.page = p
	m.flash = flash{}
	switch p {
	case PageLogin:
		return m.login.focus()
	case PageSettings:
		m.settingsPg = newSettingsForm(m.loadSettings())
		return m.settingsPg.focus()
	case PageLogs:
		m.resizeLogViewport()
		return loadLogsCmd(m.logPath)
	}
	return nil
}

func (m *Model) setFlash(kind flashKind, text string) {
	m.flash = flash{kind: kind, text: text}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs", zap.Error(err))
	}
}

func (m Model) loadSettings() settings.Settings {
	if m.settings == nil {
		return settings.Defaults()
	}
	return m.settings.Load()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
