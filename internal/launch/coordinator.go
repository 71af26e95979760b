package launch

import (
	"errors"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/idklol/launcher/internal/settings"
)

// SettingsSource supplies the current settings record.
type SettingsSource interface {
	Load() settings.Settings
}

// TokenSource supplies the locally stored access token ("" when absent).
type TokenSource interface {
	Load() (string, error)
}

// Coordinator starts the game executable with arguments derived from the
// settings and the stored token.
type Coordinator struct {
	settings     SettingsSource
	tokens       TokenSource
	spawner      Spawner
	goos         string
	forwardToken bool
	logger       *zap.Logger
}

const (
	flagGameServer = "-gameServerUrl="
	flagChatServer = "-chatServerUrl="
	flagAuthToken  = "-authToken="

	bundleSuffix = ".app"
	bundleOpener = "open"
)

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithSpawner replaces the process starter.
func WithSpawner(s Spawner) Option {
	return func(c *Coordinator) {
		if s != nil {
			c.spawner = s
		}
	}
}

// WithGOOS overrides the platform used to pick the start strategy.
func WithGOOS(goos string) Option {
	return func(c *Coordinator) {
		c.goos = goos
	}
}

// WithTokenForwarding toggles the -authToken flag.
func WithTokenForwarding(enabled bool) Option {
	return func(c *Coordinator) {
		c.forwardToken = enabled
	}
}

// WithLogger sets the sink for launch records.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoordinator builds a Coordinator. tokens may be nil.
func NewCoordinator(src SettingsSource, tokens TokenSource, opts ...Option) *Coordinator {
	c := &Coordinator{
		settings:     src,
		tokens:       tokens,
		spawner:      ExecSpawner{},
		goos:         runtime.GOOS,
		forwardToken: true,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Launch reads the settings once and starts the game. The child is detached:
// the launcher never blocks on it and does not stop it on exit.
func (c *Coordinator) Launch() error {
	current := c.settings.Load()

	exe := strings.TrimSpace(current.GameExecutablePath)
	if exe == "" {
		err := &ConfigurationError{Setting: settings.KeyGameExecutablePath}
		c.logger.Warn("launch refused", zap.Error(err))
		return err
	}

	args := BuildArgs(current, c.token())
	name, argv := c.command(exe, args)

	c.logger.Info("launching game",
		zap.String("executable", exe),
		zap.String("command", name),
		zap.Int("args", len(argv)))

	pid, err := c.spawner.Start(name, argv)
	if err != nil {
		c.logger.Error("failed to launch game executable",
			zap.String("executable", exe),
			zap.Error(err))
		return &LaunchError{Path: exe, Err: err}
	}
	c.logger.Info("game started", zap.Int("pid", pid))
	return nil
}

// BuildArgs derives the game's command-line flags. Empty values are omitted.
func BuildArgs(s settings.Settings, token string) []string {
	var args []string
	if v := strings.TrimSpace(s.GameServerURL); v != "" {
		args = append(args, flagGameServer+v)
	}
	if v := strings.TrimSpace(s.ChatServerURL); v != "" {
		args = append(args, flagChatServer+v)
	}
	if token != "" {
		args = append(args, flagAuthToken+token)
	}
	return args
}

// IsBundle reports whether exe must be started through the bundle opener on
// goos.
func IsBundle(goos, exe string) bool {
	return goos == "darwin" && strings.HasSuffix(strings.TrimRight(exe, "/"), bundleSuffix)
}

func (c *Coordinator) command(exe string, args []string) (string, []string) {
	if IsBundle(c.goos, exe) {
		argv := append([]string{"-n", exe, "--args"}, args...)
		return bundleOpener, argv
	}
	return exe, args
}

func (c *Coordinator) token() string {
	if !c.forwardToken || c.tokens == nil {
		return ""
	}
	token, err := c.tokens.Load()
	if err != nil {
		c.logger.Warn("stored token unavailable, launching without it", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(token)
}

// ConfigurationError reports a required setting that is empty.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	if e.Setting == settings.KeyGameExecutablePath {
		return "Game executable path is not configured."
	}
	return "setting " + e.Setting + " is not configured"
}

// LaunchError reports a failed process start.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return "Failed to launch game executable. Please check the path and file permissions."
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
