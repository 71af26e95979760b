package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := Load("")
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.LastUsername != "" {
		t.Fatalf("LastUsername = %q, want empty", p.LastUsername)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "idklol-launcher")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	content := "theme = \"Frost\"\nlast_username = \" ember \"\n"
	if err := os.WriteFile(prefsFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Frost" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Frost")
	}
	if p.LastUsername != "ember" {
		t.Fatalf("LastUsername = %q, want %q", p.LastUsername, "ember")
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Prefs{Theme: "Frost", LastUsername: "ember"}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := Load(prefsFile)
	if loaded != p {
		t.Fatalf("Load = %#v, want %#v", loaded, p)
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if p := Load(prefsFile); p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if p := Load(prefsFile); p != Defaults() {
		t.Fatalf("Load = %#v, want defaults", p)
	}
}

func TestSave_ParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := Save(filepath.Join(blocker, "prefs.toml"), Defaults()); err == nil {
		t.Fatalf("Save returned nil error, want error")
	}
}

func TestWithUser(t *testing.T) {
	p := Defaults().WithUser("  ember ")
	if p.LastUsername != "ember" {
		t.Fatalf("LastUsername = %q, want ember", p.LastUsername)
	}
	if kept := p.WithUser("   "); kept.LastUsername != "ember" {
		t.Fatalf("blank username replaced %q", p.LastUsername)
	}
}

func TestSave_ReplacesWithoutLeftovers(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := Save(prefsFile, Prefs{Theme: "Frost", LastUsername: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(prefsFile, Prefs{Theme: "Daylight"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p := Load(prefsFile); p != (Prefs{Theme: "Daylight"}) {
		t.Fatalf("Load = %#v, want Daylight without a username", p)
	}
	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want only prefs.toml", len(entries))
	}
}
