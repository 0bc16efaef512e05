package preview

import "github.com/tinytelemetry/peek/internal/model"

// State is the lifecycle stage of a preview card.
type State int

const (
	// Hidden: nothing retained, nothing rendered.
	Hidden State = iota
	// Visible: shown and tracking the pointer.
	Visible
	// ClosingGrace: no longer visible, but the descriptor is kept until the
	// grace period ends so the exit styling has content to draw.
	ClosingGrace
)

func (s State) String() string {
	switch s {
	case Visible:
		return "visible"
	case ClosingGrace:
		return "closing"
	default:
		return "hidden"
	}
}

// Snapshot is a read-only copy of a controller's state.
type Snapshot struct {
	State      State
	Descriptor *model.Descriptor // nil when Hidden
	Anchor     model.Anchor
	Visible    bool // true only in the Visible state
}

// Mounted reports whether the card should be rendered at all.
func (s Snapshot) Mounted() bool {
	return s.State != Hidden && s.Descriptor != nil
}
