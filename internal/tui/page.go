package tui

import tea "github.com/charmbracelet/bubbletea"

// Page is a full-screen view hosted by App.
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav asks App to switch to another page.
type PageNav struct {
	PageID string
}

// Blurrer is implemented by pages that show pointer-driven overlays. Blur is
// called when the page stops being the active one, so its cards start
// closing instead of lingering behind the next page.
type Blurrer interface {
	Blur()
}

// Closer is implemented by pages that hold timers and must release them on
// exit.
type Closer interface {
	Close()
}
