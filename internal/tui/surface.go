package tui

import (
	"github.com/tinytelemetry/peek/internal/catalog"
	"github.com/tinytelemetry/peek/internal/model"
	"github.com/tinytelemetry/peek/internal/preview"
)

// hoverSurface is one roster column. Every surface owns its own preview
// controller so columns never share card state.
type hoverSurface struct {
	section catalog.Section
	preview *preview.Controller

	// Layout, in cells. Entries start at firstRow, one per line.
	x        int
	width    int
	firstRow int
}

// PointerEnter shows the card for d at the pointer.
func (s *hoverSurface) PointerEnter(d model.Descriptor, anchor model.Anchor) {
	s.preview.Show(d, anchor)
}

// PointerMove makes a visible card follow the pointer.
func (s *hoverSurface) PointerMove(anchor model.Anchor) {
	s.preview.Move(anchor)
}

// PointerLeave starts hiding the card.
func (s *hoverSurface) PointerLeave() {
	s.preview.Hide()
}

// rowAt returns the entry index under the cell (x, y).
func (s *hoverSurface) rowAt(x, y int) (int, bool) {
	if x < s.x || x >= s.x+s.width {
		return 0, false
	}
	row := y - s.firstRow
	if row < 0 || row >= len(s.section.Entries) {
		return 0, false
	}
	return row, true
}
