package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/idklol/launcher/internal/identity"
	"github.com/idklol/launcher/internal/launch"
	"github.com/idklol/launcher/internal/logs"
	"github.com/idklol/launcher/internal/prefs"
	"github.com/idklol/launcher/internal/session"
	"github.com/idklol/launcher/internal/settings"
	"github.com/idklol/launcher/internal/state"
)

// Options configure the launcher.
type Options struct {
	SettingsPath string // empty uses ~/.config/idklol-launcher/settings.yaml
	PrefsPath    string // empty uses ~/.config/idklol-launcher/prefs.toml
	PollEvery    int    // seconds; zero uses default
	LogLevel     string
	// ForwardToken passes the stored access token to the game. The CLI
	// enables it by default.
	ForwardToken bool
	// Console mirrors log records to stderr. Off for the TUI.
	Console bool
}

// Env holds the collaborators shared by the TUI and the CLI commands.
type Env struct {
	Settings *settings.Store
	Prefs    prefs.Prefs
	Logger   *zap.Logger
	LogPath  string
	Identity *identity.Client
	Sessions session.Store
	Launcher *launch.Coordinator
}

// NewEnv resolves paths, sets up logging and builds the clients. The log
// file name is resolved once, here.
func NewEnv(opts Options) (*Env, error) {
	store, err := settings.NewStore(opts.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	current := store.Load()

	logCfg := logs.Config{
		Dir:      store.Dir(),
		FileName: current.LogFileName,
		Level:    opts.LogLevel,
		Console:  opts.Console,
	}
	logPath := logs.FilePath(logCfg, time.Now())
	logger, logErr := logs.Setup(logCfg)
	if logErr != nil {
		// Logging is best-effort; fall back to stderr or nothing.
		logPath = ""
		logger = fallbackLogger(opts)
	}

	sessions := session.NewCachedStore(session.NewKeyringStore())
	env := &Env{
		Settings: store,
		Prefs:    prefs.Load(opts.PrefsPath),
		Logger:   logger,
		LogPath:  logPath,
		Identity: identity.NewClient(identity.WithLogger(logger.Named("identity"))),
		Sessions: sessions,
	}
	env.Launcher = launch.NewCoordinator(store, sessions,
		launch.WithTokenForwarding(opts.ForwardToken),
		launch.WithLogger(logger.Named("launch")))

	if logErr != nil {
		logger.Warn("log file unavailable", zap.Error(logErr))
	}
	logger.Debug("launcher environment ready",
		zap.String("settings", store.Path()),
		zap.String("log", logPath))
	return env, nil
}

func fallbackLogger(opts Options) *zap.Logger {
	if !opts.Console {
		return zap.NewNop()
	}
	logger, err := logs.Setup(logs.Config{Level: opts.LogLevel, Console: true})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Close flushes buffered log records.
func (e *Env) Close() {
	_ = e.Logger.Sync()
}

// RestoreSession marks the status store signed in when a usable token is
// stored. Expired tokens are cleared.
func (e *Env) RestoreSession(store *state.Store) {
	token, err := e.Sessions.Load()
	if err != nil {
		e.Logger.Warn("read stored token", zap.Error(err))
		return
	}
	if token == "" {
		return
	}

	claims, err := identity.ParseClaims(token)
	if err != nil {
		e.Logger.Debug("stored token claims unreadable", zap.Error(err))
	}
	auth := &identity.AuthToken{AccessToken: token, Claims: claims}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		e.Logger.Info("stored token expired", zap.Time("expiry", exp.Time))
		if err := e.Sessions.Clear(); err != nil {
			e.Logger.Warn("clear stored token", zap.Error(err))
		}
		return
	}
	store.SetSession(auth.Username(), true)
	e.Logger.Info("restored session", zap.String("username", auth.Username()))
}
