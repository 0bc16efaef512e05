package preview

import (
	"bytes"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/tinytelemetry/peek/internal/clock"
	"github.com/tinytelemetry/peek/internal/model"
)

var (
	pip   = model.Descriptor{Name: "Pip", ImageSource: "pip.png", Kind: model.KindPet, SpeedStat: model.IntPtr(4)}
	rosie = model.Descriptor{Name: "Rosie", ImageSource: "rosie.png", Kind: model.KindAvatar, Level: model.IntPtr(2)}
)

func newTestController(t *testing.T) (*Controller, *clock.Fake, *int32) {
	t.Helper()
	fake := clock.NewFake(time.Unix(1700000000, 0))
	var changes int32
	c := New(
		WithClock(fake),
		WithGracePeriod(200*time.Millisecond),
		WithOnChange(func() { atomic.AddInt32(&changes, 1) }),
	)
	return c, fake, &changes
}

func TestController_StartsHidden(t *testing.T) {
	c, _, _ := newTestController(t)
	snap := c.Snapshot()
	if snap.State != Hidden || snap.Descriptor != nil || snap.Visible || snap.Mounted() {
		t.Errorf("initial snapshot = %+v, want hidden", snap)
	}
}

func TestController_ShowMoveHide(t *testing.T) {
	c, fake, _ := newTestController(t)

	c.Show(pip, model.Anchor{X: 10, Y: 5})
	c.Move(model.Anchor{X: 12, Y: 6})
	snap := c.Snapshot()
	if snap.State != Visible || !snap.Visible {
		t.Fatalf("state = %v visible=%v, want visible", snap.State, snap.Visible)
	}
	if diff := cmp.Diff(pip, *snap.Descriptor); diff != "" {
		t.Errorf("descriptor changed by Move (-want +got):\n%s", diff)
	}
	if snap.Anchor != (model.Anchor{X: 12, Y: 6}) {
		t.Errorf("anchor = %+v", snap.Anchor)
	}

	c.Hide()
	snap = c.Snapshot()
	if snap.State != ClosingGrace || snap.Visible {
		t.Fatalf("after Hide state = %v visible=%v, want closing/false", snap.State, snap.Visible)
	}
	if snap.Descriptor == nil || snap.Descriptor.Name != "Pip" || !snap.Mounted() {
		t.Fatal("descriptor must be retained during the grace period")
	}
	if snap.Anchor != (model.Anchor{X: 12, Y: 6}) {
		t.Errorf("grace anchor = %+v", snap.Anchor)
	}

	fake.Advance(199 * time.Millisecond)
	if got := c.Snapshot().State; got != ClosingGrace {
		t.Fatalf("state before grace elapsed = %v", got)
	}
	fake.Advance(time.Millisecond)
	snap = c.Snapshot()
	if snap.State != Hidden || snap.Descriptor != nil {
		t.Errorf("after grace snapshot = %+v, want hidden with nil descriptor", snap)
	}
}

func TestController_ShowCancelsPendingHide(t *testing.T) {
	c, fake, _ := newTestController(t)

	c.Show(pip, model.Anchor{X: 1, Y: 1})
	c.Hide()
	fake.Advance(100 * time.Millisecond)
	c.Show(rosie, model.Anchor{X: 2, Y: 2})

	if fake.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0 after Show", fake.Pending())
	}
	fake.Advance(time.Second)

	snap := c.Snapshot()
	if snap.State != Visible || !snap.Visible {
		t.Fatalf("state = %v, want visible", snap.State)
	}
	if snap.Descriptor == nil || snap.Descriptor.Name != "Rosie" {
		t.Errorf("descriptor = %+v, want Rosie", snap.Descriptor)
	}
}

func TestController_StaleTimerCallbackIgnored(t *testing.T) {
	// A timer whose Stop loses the race still runs its callback; the
	// generation check must keep it from clearing the new content.
	stub := &stubClock{}
	c := New(WithClock(stub))

	c.Show(pip, model.Anchor{})
	c.Hide()
	staleFire := stub.last
	c.Show(rosie, model.Anchor{})
	staleFire()

	snap := c.Snapshot()
	if snap.State != Visible || snap.Descriptor.Name != "Rosie" {
		t.Errorf("stale callback changed state to %+v", snap)
	}
}

func TestController_MoveIgnoredWhenNotVisible(t *testing.T) {
	c, fake, changes := newTestController(t)

	c.Move(model.Anchor{X: 3, Y: 3})
	if snap := c.Snapshot(); snap.State != Hidden || snap.Anchor != (model.Anchor{}) {
		t.Errorf("Move while hidden changed state: %+v", snap)
	}
	if atomic.LoadInt32(changes) != 0 {
		t.Errorf("Move while hidden notified %d times", *changes)
	}

	c.Show(pip, model.Anchor{X: 1, Y: 1})
	c.Hide()
	c.Move(model.Anchor{X: 9, Y: 9})
	if snap := c.Snapshot(); snap.Anchor != (model.Anchor{X: 1, Y: 1}) {
		t.Errorf("Move during grace changed anchor to %+v", snap.Anchor)
	}
	fake.Advance(time.Second)
}

func TestController_HideIsIdempotent(t *testing.T) {
	c, fake, _ := newTestController(t)

	c.Hide()
	if fake.Pending() != 0 {
		t.Fatal("Hide while hidden scheduled a timer")
	}

	c.Show(pip, model.Anchor{})
	c.Hide()
	fake.Advance(150 * time.Millisecond)
	c.Hide()
	if fake.Pending() != 1 {
		t.Fatalf("pending = %d, want the original timer only", fake.Pending())
	}
	fake.Advance(50 * time.Millisecond)
	if got := c.Snapshot().State; got != Hidden {
		t.Errorf("second Hide restarted the grace period, state = %v", got)
	}
}

func TestController_OnChangeCalls(t *testing.T) {
	c, fake, changes := newTestController(t)

	c.Show(pip, model.Anchor{})
	c.Move(model.Anchor{X: 1})
	c.Move(model.Anchor{X: 1}) // same anchor, no change
	c.Hide()
	fake.Advance(time.Second)

	if got := atomic.LoadInt32(changes); got != 4 {
		t.Errorf("onChange called %d times, want 4", got)
	}
}

func TestController_SnapshotIsACopy(t *testing.T) {
	c, _, _ := newTestController(t)
	c.Show(pip, model.Anchor{})
	snap := c.Snapshot()
	snap.Descriptor.Name = "mutated"
	if c.Snapshot().Descriptor.Name != "Pip" {
		t.Error("mutating a snapshot leaked into the controller")
	}
}

func TestController_IndependentInstances(t *testing.T) {
	fake := clock.NewFake(time.Unix(0, 0))
	a := New(WithClock(fake))
	b := New(WithClock(fake))

	a.Show(pip, model.Anchor{X: 1})
	b.Show(rosie, model.Anchor{X: 2})
	a.Hide()
	fake.Advance(time.Second)

	if a.Snapshot().State != Hidden {
		t.Error("a should be hidden")
	}
	if snap := b.Snapshot(); snap.State != Visible || snap.Descriptor.Name != "Rosie" {
		t.Errorf("b was affected by a: %+v", snap)
	}
}

func TestController_Close(t *testing.T) {
	c, fake, _ := newTestController(t)
	c.Show(pip, model.Anchor{})
	c.Hide()
	c.Close()
	if fake.Pending() != 0 {
		t.Error("Close left a pending timer")
	}
	if c.Snapshot().State != Hidden {
		t.Error("Close should hide")
	}
}

func TestController_RealClockNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	done := make(chan struct{}, 1)
	c := New(
		WithGracePeriod(5*time.Millisecond),
		WithOnChange(func() {
			select {
			case done <- struct{}{}:
			default:
			}
		}),
	)
	c.Show(pip, model.Anchor{})
	<-done
	c.Hide()
	<-done

	deadline := time.After(2 * time.Second)
	for c.Snapshot().State != Hidden {
		select {
		case <-done:
		case <-deadline:
			t.Fatal("grace period never cleared the card")
		}
	}
}

type stubClock struct {
	last func()
}

func (s *stubClock) Now() time.Time { return time.Time{} }

func (s *stubClock) AfterFunc(_ time.Duration, f func()) clock.Timer {
	s.last = f
	return stubTimer{}
}

type stubTimer struct{}

// Stop reports that the callback already started, like a lost race.
func (stubTimer) Stop() bool { return false }

func TestController_LogsElapsedGrace(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	fake := clock.NewFake(time.Unix(1700000000, 0))
	c := New(WithClock(fake), WithGracePeriod(200*time.Millisecond), WithName("Pets"))

	c.Show(pip, model.Anchor{X: 1, Y: 1})
	fake.Advance(50 * time.Millisecond)
	c.Hide()
	fake.Advance(500 * time.Millisecond)

	if got := buf.String(); !strings.Contains(got, `preview Pets: cleared "Pip" after 200ms`) {
		t.Errorf("log = %q", got)
	}
}
