package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestOverlay(t *testing.T) {
	bg := "aaaaa\nbbbbb\nccccc"
	fg := "XY\nZW"

	tests := []struct {
		name          string
		x, y          int
		width, height int
		want          string
	}{
		{"inside", 1, 1, 5, 3, "aaaaa\nbXYbb\ncZWcc"},
		{"clipped left", -1, 0, 5, 3, "Yaaaa\nWbbbb\nccccc"},
		{"clipped right", 4, 0, 5, 3, "aaaaX\nbbbbZ\nccccc"},
		{"clipped bottom", 0, 2, 5, 3, "aaaaa\nbbbbb\nXYccc"},
		{"clipped top", 0, -1, 5, 3, "ZWaaa\nbbbbb\nccccc"},
		{"fully off right", 7, 0, 5, 3, bg},
		{"unbounded grows canvas", 6, 3, 0, 0, "aaaaa\nbbbbb\nccccc\n      XY\n      ZW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(overlay(bg, fg, tt.x, tt.y, tt.width, tt.height))
			if got != tt.want {
				t.Errorf("overlay =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestOverlay_EmptyForeground(t *testing.T) {
	if got := overlay("abc", "", 0, 0, 3, 1); got != "abc" {
		t.Errorf("overlay with empty fg = %q", got)
	}
}
