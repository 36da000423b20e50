package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tagview/internal/tags"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for current, want := range cases {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", current, got, want)
		}
	}
}

func TestGetThemeFallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox", got)
	}
}

func TestEveryThemeColorsAllQualities(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, q := range []tags.Quality{tags.QualityGood, tags.QualityBad, tags.QualityUncertain} {
			if th.QualityColors[q] == "" {
				t.Fatalf("theme %s has no color for quality %q", name, q)
			}
		}
	}
}

func TestQualityStyleFallsBackToMuted(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()

	bad := styles.QualityStyle(tags.QualityBad).GetBackground()
	if bad != lipgloss.Color(th.QualityColors[tags.QualityBad]) {
		t.Fatalf("bad quality background = %v, want %s", bad, th.QualityColors[tags.QualityBad])
	}
	fallback := styles.QualityStyle(tags.Quality("stale")).GetBackground()
	muted := styles.MutedText.GetForeground()
	if fallback != muted {
		t.Fatalf("unknown quality background = %v, want muted %v", fallback, muted)
	}
}
