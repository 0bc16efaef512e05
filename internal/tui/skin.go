package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colours the roster and cards are drawn with.
type Palette struct {
	Title     lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Border    lipgloss.Color
	Highlight lipgloss.Color
	BadgeFg   lipgloss.Color
	BadgeBg   lipgloss.Color
}

var skins = map[string]Palette{
	"default": {
		Title:     lipgloss.Color("#00CAC7"),
		Text:      lipgloss.Color("#E6E6E6"),
		Muted:     lipgloss.Color("#6C7086"),
		Accent:    lipgloss.Color("#49E209"),
		Border:    lipgloss.Color("#5FAFFF"),
		Highlight: lipgloss.Color("#1E3A5F"),
		BadgeFg:   lipgloss.Color("#101010"),
		BadgeBg:   lipgloss.Color("#FFC107"),
	},
	"mono": {
		Title:     lipgloss.Color("15"),
		Text:      lipgloss.Color("7"),
		Muted:     lipgloss.Color("8"),
		Accent:    lipgloss.Color("15"),
		Border:    lipgloss.Color("7"),
		Highlight: lipgloss.Color("238"),
		BadgeFg:   lipgloss.Color("0"),
		BadgeBg:   lipgloss.Color("7"),
	},
}

// palette is the active skin. It only changes at startup.
var palette = skins["default"]

// InitializeSkin selects a palette by name. Unknown names leave the default
// palette in place and return an error.
func InitializeSkin(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "default"
	}
	p, ok := skins[name]
	if !ok {
		return fmt.Errorf("unknown skin %q (available: %s)", name, strings.Join(SkinNames(), ", "))
	}
	palette = p
	return nil
}

// SkinNames lists the built-in skins.
func SkinNames() []string {
	names := make([]string, 0, len(skins))
	for n := range skins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
