package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/asana/internal/pose"
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
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme(" kanagawa ").Name; got != "Kanagawa" {
		t.Fatalf("GetTheme(kanagawa).Name = %q, want Kanagawa", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
	if got := GetTheme("").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(\"\").Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesColorEveryBadge(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, d := range pose.Difficulties {
			if th.DifficultyColors[d] == "" {
				t.Fatalf("%s has no color for difficulty %q", name, d)
			}
		}
		for _, tag := range pose.Tags {
			if th.TagColors[tag] == "" {
				t.Fatalf("%s has no color for tag %q", name, tag)
			}
		}
	}
}

func TestBadgeStyleFallsBackToMuted(t *testing.T) {
	th := defaultTheme()
	styles := th.Styles()

	if got := styles.TagStyle("unknown").GetBackground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("unknown tag background = %v, want %v", got, th.Muted)
	}
	if got := styles.DifficultyStyle(pose.Advanced).GetBackground(); got != lipgloss.Color(th.DifficultyColors[pose.Advanced]) {
		t.Fatalf("advanced background = %v, want %v", got, th.DifficultyColors[pose.Advanced])
	}

	// Badge colors survive a background override
	bg := styles.WithBackground(th.Surface)
	if got := bg.TagStyle("unknown").GetBackground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("WithBackground lost muted color, got %v", got)
	}
}
