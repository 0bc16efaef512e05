package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tinytelemetry/peek/internal/artwork"
	"github.com/tinytelemetry/peek/internal/catalog"
	"github.com/tinytelemetry/peek/internal/clock"
	"github.com/tinytelemetry/peek/internal/model"
	"github.com/tinytelemetry/peek/internal/placement"
	"github.com/tinytelemetry/peek/internal/preview"
)

// RosterPageID identifies the roster page.
const RosterPageID = "roster"

// Roster layout, in cells.
const (
	rosterMarginLeft = 1
	rosterColumnGap  = 3
	rosterHeaderRows = 2 // title + blank line
	minColumnWidth   = 16
)

// RosterOptions configures a RosterPage.
type RosterOptions struct {
	Geometry    placement.Geometry
	GracePeriod time.Duration
	Clock       clock.Clock
}

type rowRef struct {
	surface int
	row     int
}

var noRow = rowRef{surface: -1}

// RosterPage lists catalog sections as columns and shows a hover card for
// the entry under the pointer (or the keyboard selection).
type RosterPage struct {
	title    string
	surfaces []*hoverSurface
	cards    cardRenderer
	notifier *changeNotifier

	keys KeyMap
	help help.Model

	hovered  rowRef
	selected rowRef

	width  int
	height int
}

// NewRosterPage builds the page for cat. Each section gets its own preview
// controller.
func NewRosterPage(cat catalog.Catalog, art *artwork.Loader, opts RosterOptions) *RosterPage {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.GracePeriod == 0 {
		opts.GracePeriod = model.DefaultGracePeriod
	}
	if opts.Geometry == (placement.Geometry{}) {
		opts.Geometry = placement.Geometry{
			Width:   model.DefaultCardWidth,
			Height:  model.DefaultCardHeight,
			Offset:  model.DefaultCardOffset,
			Padding: model.DefaultCardPadding,
		}
	}
	if art == nil {
		art = artwork.New()
	}

	p := &RosterPage{
		title:    cat.Title,
		cards:    cardRenderer{art: art, geometry: opts.Geometry},
		notifier: newChangeNotifier(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		hovered:  noRow,
		selected: rowRef{},
	}

	x := rosterMarginLeft
	for _, sec := range cat.Sections {
		w := columnWidth(sec)
		p.surfaces = append(p.surfaces, &hoverSurface{
			section: sec,
			preview: preview.New(
				preview.WithClock(opts.Clock),
				preview.WithGracePeriod(opts.GracePeriod),
				preview.WithOnChange(p.notifier.Notify),
				preview.WithName(sec.Title),
			),
			x:        x,
			width:    w,
			firstRow: rosterHeaderRows + 1,
		})
		x += w + rosterColumnGap
	}
	return p
}

func columnWidth(sec catalog.Section) int {
	w := ansi.StringWidth(sec.Title)
	for _, e := range sec.Entries {
		w = max(w, ansi.StringWidth(e.Name)+2)
	}
	return max(w+2, minColumnWidth)
}

func (p *RosterPage) ID() string { return RosterPageID }

func (p *RosterPage) Init() tea.Cmd {
	return p.notifier.wait()
}

func (p *RosterPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.help.Width = msg.Width

	case tea.KeyMsg:
		return p.handleKey(msg), nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			p.handlePointer(msg.X, msg.Y)
		}

	case previewChangedMsg:
		return p.notifier.wait(), nil
	}
	return nil, nil
}

func (p *RosterPage) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Quit), key.Matches(msg, p.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, p.keys.Help):
		p.help.ShowAll = !p.help.ShowAll
	case key.Matches(msg, p.keys.Escape):
		p.leave()
	case key.Matches(msg, p.keys.Up):
		p.step(0, -1)
	case key.Matches(msg, p.keys.Down):
		p.step(0, 1)
	case key.Matches(msg, p.keys.NextSection):
		p.step(1, 0)
	case key.Matches(msg, p.keys.PrevSection):
		p.step(-1, 0)
	}
	return nil
}

// step moves the keyboard selection. The first key press after the card
// was hidden re-shows the current selection instead of moving.
func (p *RosterPage) step(dSurface, dRow int) {
	if p.hovered == noRow {
		dSurface, dRow = 0, 0
	}
	p.selectRow(p.selected.surface+dSurface, p.selected.row+dRow, dSurface)
}

// handlePointer turns raw mouse positions into enter/move/leave events.
// Only roster rows are hit-tested, so a card never captures the pointer.
func (p *RosterPage) handlePointer(x, y int) {
	anchor := model.Anchor{X: x, Y: y}
	ref, ok := p.hit(x, y)
	if ok && ref == p.hovered {
		p.surfaces[ref.surface].PointerMove(anchor)
		return
	}
	p.leave()
	if ok {
		p.enter(ref, anchor)
	}
}

func (p *RosterPage) hit(x, y int) (rowRef, bool) {
	if p.height > 0 && y >= p.height-p.footerHeight() {
		return noRow, false
	}
	for i, s := range p.surfaces {
		if row, ok := s.rowAt(x, y); ok {
			return rowRef{surface: i, row: row}, true
		}
	}
	return noRow, false
}

func (p *RosterPage) enter(ref rowRef, anchor model.Anchor) {
	s := p.surfaces[ref.surface]
	s.PointerEnter(s.section.Entries[ref.row], anchor)
	p.hovered = ref
	p.selected = ref
}

func (p *RosterPage) leave() {
	if p.hovered.surface >= 0 {
		p.surfaces[p.hovered.surface].PointerLeave()
	}
	p.hovered = noRow
}

// selectRow moves the keyboard selection, clamping to existing entries, and
// shows the card anchored at the right end of the selected row. Columns
// without entries are skipped in the direction of travel.
func (p *RosterPage) selectRow(surface, row, dir int) {
	if len(p.surfaces) == 0 {
		return
	}
	surface, ok := p.populated(min(max(surface, 0), len(p.surfaces)-1), dir)
	if !ok {
		return
	}
	s := p.surfaces[surface]
	row = min(max(row, 0), len(s.section.Entries)-1)

	ref := rowRef{surface: surface, row: row}
	anchor := model.Anchor{X: s.x + s.width - 1, Y: s.firstRow + row}
	if ref == p.hovered {
		s.PointerMove(anchor)
		return
	}
	p.leave()
	p.enter(ref, anchor)
}

// populated returns the nearest column with entries, looking from start in
// direction dir (forward when zero) and then the other way.
func (p *RosterPage) populated(start, dir int) (int, bool) {
	if dir == 0 {
		dir = 1
	}
	for _, d := range []int{dir, -dir} {
		for i := start; i >= 0 && i < len(p.surfaces); i += d {
			if len(p.surfaces[i].section.Entries) > 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// footerHeight is the number of screen lines taken by the help footer.
func (p *RosterPage) footerHeight() int {
	return lipgloss.Height(p.help.View(p.keys))
}

// Snapshots returns the preview state of every column, in column order.
func (p *RosterPage) Snapshots() []preview.Snapshot {
	out := make([]preview.Snapshot, len(p.surfaces))
	for i, s := range p.surfaces {
		out[i] = s.preview.Snapshot()
	}
	return out
}

func (p *RosterPage) View(width, height int) string {
	body := p.renderRoster()
	lines := strings.Split(body, "\n")

	footer := lipgloss.NewStyle().Foreground(palette.Muted).Render(p.help.View(p.keys))
	footerLines := strings.Split(footer, "\n")
	if height > 0 {
		room := max(height-p.footerHeight(), 0)
		if len(lines) > room {
			lines = lines[:room]
		}
		for len(lines) < room {
			lines = append(lines, "")
		}
	}
	lines = append(lines, footerLines...)
	screen := strings.Join(lines, "\n")

	vp := placement.Viewport{Width: width, Height: height}
	for _, s := range p.surfaces {
		snap := s.preview.Snapshot()
		card := p.cards.render(snap)
		if card == "" {
			continue
		}
		pt := placement.Place(snap.Anchor, p.cards.geometry, vp)
		screen = overlay(screen, card, pt.X, pt.Y, width, height)
	}
	return screen
}

func (p *RosterPage) renderRoster() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Title).
		MarginLeft(rosterMarginLeft).
		Render(p.title)

	if len(p.surfaces) == 0 {
		return title + "\n\n" + lipgloss.NewStyle().
			Foreground(palette.Muted).
			MarginLeft(rosterMarginLeft).
			Render("No entries in catalog.")
	}

	cols := []string{strings.Repeat(" ", rosterMarginLeft)}
	gap := strings.Repeat(" ", rosterColumnGap)
	for i, s := range p.surfaces {
		if i > 0 {
			cols = append(cols, gap)
		}
		cols = append(cols, p.renderColumn(i, s))
	}
	return title + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (p *RosterPage) renderColumn(idx int, s *hoverSurface) string {
	rows := make([]string, 0, len(s.section.Entries)+1)
	rows = append(rows, lipgloss.NewStyle().
		Width(s.width).
		Bold(true).
		Foreground(palette.Accent).
		Render(s.section.Title))

	for i, e := range s.section.Entries {
		style := lipgloss.NewStyle().Width(s.width).Foreground(palette.Text)
		if (rowRef{surface: idx, row: i}) == p.hovered {
			style = style.Background(palette.Highlight).Bold(true)
		}
		rows = append(rows, style.Render("• "+e.Name))
	}
	return strings.Join(rows, "\n")
}

// Blur starts the grace period on the hovered card.
func (p *RosterPage) Blur() {
	p.leave()
}

// Close stops every pending grace timer.
func (p *RosterPage) Close() {
	for _, s := range p.surfaces {
		s.preview.Close()
	}
}
