package tui

import tea "github.com/charmbracelet/bubbletea"

// previewChangedMsg asks the program to re-render after a controller changed
// state, including changes made by a grace timer off the UI goroutine.
type previewChangedMsg struct{}

// changeNotifier coalesces controller change hooks into at most one pending
// wake-up for the event loop.
type changeNotifier struct {
	ch chan struct{}
}

func newChangeNotifier() *changeNotifier {
	return &changeNotifier{ch: make(chan struct{}, 1)}
}

// Notify is safe to call from any goroutine and never blocks.
func (n *changeNotifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// wait returns a command that resolves on the next notification.
func (n *changeNotifier) wait() tea.Cmd {
	return func() tea.Msg {
		<-n.ch
		return previewChangedMsg{}
	}
}
