// Package prefs stores what the launcher remembers about the person at the
// keyboard, as opposed to the game settings: the colour theme picked with
// ctrl+t and the last username that signed in. The username prefills the TUI
// sign-in form and is the default for `launcher login` without -u.
//
// The file is ~/.config/idklol-launcher/prefs.toml, next to settings.yaml. A
// missing or unreadable file means defaults; nothing here ever blocks startup.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs is the remembered per-user state.
type Prefs struct {
	Theme        string `toml:"theme"`
	LastUsername string `toml:"last_username,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/idklol-launcher/prefs.toml"
	defaultTheme     = "Ember"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when none are stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// WithUser returns p remembering username. A blank username keeps the
// previous one.
func (p Prefs) WithUser(username string) Prefs {
	if name := strings.TrimSpace(username); name != "" {
		p.LastUsername = name
	}
	return p
}

// Load reads the file at path (empty selects the default location). Any
// problem yields Defaults; a blank theme is replaced by the default theme.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults()
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Defaults()
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	p.LastUsername = strings.TrimSpace(p.LastUsername)
	return p
}

// Save replaces the file at path with p through a temp file and rename, so a
// crash never leaves half a file behind.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.tmp")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmpName, resolved); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
