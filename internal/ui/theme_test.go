package ui

import "testing"

func TestStatusColorLookups(t *testing.T) {
	th := emberTheme()
	st := th.Styles()

	if got := st.StatusColor("  Online "); got != th.StatusColors["online"] {
		t.Fatalf("StatusColor = %q, want %q", got, th.StatusColors["online"])
	}
	if got := st.StatusColor("warn"); got != th.StatusColors["warn"] {
		t.Fatalf("StatusColor(warn) = %q, want %q", got, th.StatusColors["warn"])
	}
	if got := st.StatusColor("other"); got != th.Muted {
		t.Fatalf("StatusColor unknown = %q, want %q", got, th.Muted)
	}
}

func TestThemesCoverStatusesAndLevels(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, key := range []string{"online", "offline", "unknown", "debug", "info", "warn", "error"} {
			if th.StatusColors[key] == "" {
				t.Errorf("theme %s has no color for %q", name, key)
			}
		}
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Ember" || names[1] != "Frost" || names[2] != "Daylight" {
		t.Fatalf("ThemeNames() = %v, want [Ember Frost Daylight]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Ember"); got != "Frost" {
		t.Fatalf("NextTheme(Ember) = %q, want Frost", got)
	}
	if got := NextTheme("Daylight"); got != "Ember" {
		t.Fatalf("NextTheme(Daylight) = %q, want Ember", got)
	}
	if got := NextTheme("Unknown"); got != "Ember" {
		t.Fatalf("NextTheme(Unknown) = %q, want Ember", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Daylight").Name; got != "Daylight" {
		t.Fatalf("GetTheme(Daylight).Name = %q, want Daylight", got)
	}
	if got := GetTheme("Unknown").Name; got != "Ember" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Ember (fallback)", got)
	}
}
