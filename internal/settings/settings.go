package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Settings is the persisted launcher configuration record.
type Settings struct {
	GameExecutablePath string
	GameServerURL      string
	ChatServerURL      string
	KeycloakURL        string
	LogFileName        string
}

const (
	defaultSettingsPath = "~/.config/idklol-launcher/settings.yaml"
	defaultKeycloakURL  = "http://localhost:8080"

	// DateLogSentinel selects a file named after the current date.
	DateLogSentinel = "date.log"
)

// Setting keys as they appear in the file.
const (
	KeyGameExecutablePath = "gameExecutablePath"
	KeyGameServerURL      = "gameServerUrl"
	KeyChatServerURL      = "chatServerUrl"
	KeyKeycloakURL        = "keycloakUrl"
	KeyLogFileName        = "logFileName"
)

// Keys lists the recognized setting keys in file order.
var Keys = []string{
	KeyGameExecutablePath,
	KeyGameServerURL,
	KeyChatServerURL,
	KeyKeycloakURL,
	KeyLogFileName,
}

// Defaults returns the record used when nothing has been persisted.
func Defaults() Settings {
	return Settings{
		KeycloakURL: defaultKeycloakURL,
		LogFileName: DateLogSentinel,
	}
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultSettingsPath
}

// Get returns the value stored under a file key.
func (s Settings) Get(key string) (string, bool) {
	if field := s.field(key); field != nil {
		return *field, true
	}
	return "", false
}

// Set assigns the value stored under a file key.
func (s *Settings) Set(key, value string) error {
	field := s.field(key)
	if field == nil {
		return fmt.Errorf("unknown setting %q", key)
	}
	*field = value
	return nil
}

func (s *Settings) field(key string) *string {
	switch key {
	case KeyGameExecutablePath:
		return &s.GameExecutablePath
	case KeyGameServerURL:
		return &s.GameServerURL
	case KeyChatServerURL:
		return &s.ChatServerURL
	case KeyKeycloakURL:
		return &s.KeycloakURL
	case KeyLogFileName:
		return &s.LogFileName
	}
	return nil
}

// Store reads and writes one settings file.
type Store struct {
	path string
}

// NewStore resolves path (empty selects the default location).
func NewStore(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: resolved}, nil
}

// Path returns the resolved settings file path.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory holding the settings file.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// Load returns the persisted settings merged over the defaults. Any read
// failure yields the defaults.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Defaults()
	}
	return Parse(string(data))
}

// Save replaces the settings file with the full record. Directory creation is
// best-effort; the write error is returned.
func (s *Store) Save(settings Settings) error {
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	tmpName := tmp.Name()
	_, writeErr := tmp.WriteString(Serialize(settings))
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSettingsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
