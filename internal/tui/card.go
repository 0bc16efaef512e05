package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tinytelemetry/peek/internal/artwork"
	"github.com/tinytelemetry/peek/internal/catalog"
	"github.com/tinytelemetry/peek/internal/model"
	"github.com/tinytelemetry/peek/internal/placement"
	"github.com/tinytelemetry/peek/internal/preview"
)

// cardRenderer draws hover cards at a fixed size.
type cardRenderer struct {
	art      *artwork.Loader
	geometry placement.Geometry
}

// contentWidth is the usable width inside the border and padding.
func (r cardRenderer) contentWidth() int {
	return max(r.geometry.Width-4, 1)
}

// artSize returns the cell size of the picture on d's card. The height is
// zero when the card is too short for a picture.
func (r cardRenderer) artSize(d model.Descriptor) (int, int) {
	innerH := max(r.geometry.Height-2, 1)
	textLines := 2 + len(d.Fields())
	return r.contentWidth(), max(innerH-textLines-1, 0)
}

// render returns the card for snap, exactly geometry.Width x geometry.Height
// cells, or "" when nothing is mounted. A card that is closing is drawn
// without colour so the exit reads as a fade.
func (r cardRenderer) render(snap preview.Snapshot) string {
	if !snap.Mounted() {
		return ""
	}
	d := *snap.Descriptor
	innerW := r.contentWidth()
	innerH := max(r.geometry.Height-2, 1)
	artW, artH := r.artSize(d)

	fields := d.Fields()
	text := make([]string, 0, 2+len(fields))
	text = append(text,
		lipgloss.NewStyle().Bold(true).Foreground(palette.Title).Render(ansi.Truncate(d.Name, innerW, "…")),
		badgeStyle().Render(d.Kind.String()),
	)
	for _, f := range fields {
		text = append(text, renderField(f, innerW))
	}

	var lines []string
	if artH > 0 {
		lines = append(lines, r.art.Render(d.ImageSource, artW, artH).Lines...)
		lines = append(lines, "")
	}
	lines = append(lines, text...)
	content := strings.Join(lines, "\n")

	border := palette.Border
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(r.geometry.Width-2, 1)).
		Height(innerH).
		MaxWidth(r.geometry.Width).
		MaxHeight(r.geometry.Height)

	if !snap.Visible {
		content = ansi.Strip(content)
		border = palette.Muted
		style = style.Foreground(palette.Muted)
	}

	return style.BorderForeground(border).Render(content)
}

func renderField(f model.Field, width int) string {
	label := badgeStyle().Render(f.Label)
	value := lipgloss.NewStyle().Foreground(palette.Text).Render(f.Value)
	return ansi.Truncate(label+" "+value, width, "…")
}

func badgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(palette.BadgeFg).
		Background(palette.BadgeBg).
		Bold(true)
}

// PreloadArtwork renders the picture of every catalog entry at the size its
// card will use, so the first hover does not wait on image decoding.
func PreloadArtwork(ctx context.Context, cat catalog.Catalog, art *artwork.Loader, g placement.Geometry) error {
	r := cardRenderer{art: art, geometry: g}
	bySize := make(map[[2]int][]string)
	var sizes [][2]int
	for _, sec := range cat.Sections {
		for _, d := range sec.Entries {
			w, h := r.artSize(d)
			if h == 0 || d.ImageSource == "" {
				continue
			}
			size := [2]int{w, h}
			if _, ok := bySize[size]; !ok {
				sizes = append(sizes, size)
			}
			bySize[size] = append(bySize[size], d.ImageSource)
		}
	}
	for _, size := range sizes {
		if err := art.Preload(ctx, bySize[size], size[0], size[1]); err != nil {
			return err
		}
	}
	return nil
}
