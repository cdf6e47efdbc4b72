package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme_FallsBackToDracula(t *testing.T) {
	if got := GetTheme("nope").Name; got != "Dracula" {
		t.Fatalf("GetTheme(nope).Name = %q, want Dracula", got)
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
}

func TestThemesDefineBadges(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, badge := range []string{"user", "bookmarked", "active"} {
			if th.BadgeColors[badge] == "" {
				t.Fatalf("theme %s has no %s badge color", name, badge)
			}
		}
	}
}
