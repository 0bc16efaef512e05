package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the root Bubble Tea model. It owns the terminal size and hands it to
// whichever page is active.
type App struct {
	pages  []Page
	byID   map[string]int
	active int
	width  int
	height int
}

// NewApp hosts pages in order; the first one starts active.
func NewApp(pages ...Page) *App {
	byID := make(map[string]int, len(pages))
	for i, p := range pages {
		byID[p.ID()] = i
	}
	return &App{pages: pages, byID: byID}
}

func (a *App) current() Page {
	if a.active < len(a.pages) {
		return a.pages[a.active]
	}
	return nil
}

func (a *App) Init() tea.Cmd {
	if p := a.current(); p != nil {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := a.current()
	if p == nil {
		return a, nil
	}

	// Size changes reach every page so an inactive one is placed correctly
	// when it comes back.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = wsm.Width, wsm.Height
		var cmds []tea.Cmd
		for _, other := range a.pages {
			if other != p {
				cmd, _ := other.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
		cmd, nav := p.Update(msg)
		return a, tea.Batch(append(cmds, cmd, a.navigate(nav))...)
	}

	cmd, nav := p.Update(msg)
	return a, tea.Batch(cmd, a.navigate(nav))
}

func (a *App) navigate(nav *PageNav) tea.Cmd {
	if nav == nil {
		return nil
	}
	next, ok := a.byID[nav.PageID]
	if !ok || next == a.active {
		return nil
	}
	if b, ok := a.current().(Blurrer); ok {
		b.Blur()
	}
	a.active = next
	return a.pages[next].Init()
}

func (a *App) View() string {
	if p := a.current(); p != nil {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

// Close releases every page's timers.
func (a *App) Close() {
	for _, p := range a.pages {
		if c, ok := p.(Closer); ok {
			c.Close()
		}
	}
}
