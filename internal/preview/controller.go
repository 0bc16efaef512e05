// Package preview holds the state machine behind a hover card: show on
// pointer enter, follow on pointer move, and clear after a short grace
// period on pointer leave.
package preview

import (
	"log"
	"sync"
	"time"

	"github.com/tinytelemetry/peek/internal/clock"
	"github.com/tinytelemetry/peek/internal/model"
)

// Controller owns the preview state for one hover surface. Controllers are
// independent; give every surface its own.
//
// Methods are safe to call from the UI goroutine while the grace timer fires
// on another goroutine.
type Controller struct {
	mu       sync.Mutex
	clock    clock.Clock
	grace    time.Duration
	onChange func()
	name     string

	state      State
	descriptor *model.Descriptor
	anchor     model.Anchor

	timer        clock.Timer
	closingSince time.Time
	// gen invalidates a grace callback that fired but has not yet taken mu.
	gen uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for the grace timer.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) {
		if c != nil {
			ctrl.clock = c
		}
	}
}

// WithGracePeriod sets how long a hidden card keeps its content.
func WithGracePeriod(d time.Duration) Option {
	return func(ctrl *Controller) {
		if d < 0 {
			d = 0
		}
		ctrl.grace = d
	}
}

// WithOnChange registers a hook called after every state change, including
// the one made by the grace timer. It runs without the controller lock held.
func WithOnChange(f func()) Option {
	return func(ctrl *Controller) {
		ctrl.onChange = f
	}
}

// WithName labels the controller in log output.
func WithName(name string) Option {
	return func(ctrl *Controller) {
		ctrl.name = name
	}
}

// New creates a hidden controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		clock: clock.Real(),
		grace: model.DefaultGracePeriod,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show makes the card visible with d at anchor, cancelling any pending clear.
func (c *Controller) Show(d model.Descriptor, anchor model.Anchor) {
	c.mu.Lock()
	c.cancelTimerLocked()
	c.state = Visible
	c.descriptor = &d
	c.anchor = anchor
	c.mu.Unlock()

	c.changed()
}

// Move updates the anchor of a visible card. It is ignored otherwise.
func (c *Controller) Move(anchor model.Anchor) {
	c.mu.Lock()
	if c.state != Visible || c.anchor == anchor {
		c.mu.Unlock()
		return
	}
	c.anchor = anchor
	c.mu.Unlock()

	c.changed()
}

// Hide starts the grace period of a visible card. It is ignored otherwise.
func (c *Controller) Hide() {
	c.mu.Lock()
	if c.state != Visible {
		c.mu.Unlock()
		return
	}
	c.state = ClosingGrace
	c.closingSince = c.clock.Now()
	c.cancelTimerLocked()
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.grace, func() {
		c.expire(gen)
	})
	c.mu.Unlock()

	c.changed()
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:   c.state,
		Anchor:  c.anchor,
		Visible: c.state == Visible,
	}
	if c.descriptor != nil {
		d := *c.descriptor
		snap.Descriptor = &d
	}
	return snap
}

// Close drops any pending grace timer and hides the card immediately.
func (c *Controller) Close() {
	c.mu.Lock()
	c.cancelTimerLocked()
	c.state = Hidden
	c.descriptor = nil
	c.mu.Unlock()
}

func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != ClosingGrace {
		c.mu.Unlock()
		return
	}
	name := c.descriptor.Name
	elapsed := c.clock.Now().Sub(c.closingSince)
	c.state = Hidden
	c.descriptor = nil
	c.timer = nil
	c.mu.Unlock()

	if c.name != "" {
		log.Printf("preview %s: cleared %q after %s", c.name, name, elapsed)
	}
	c.changed()
}

func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
