package placement

import (
	"math/rand"
	"testing"

	"github.com/tinytelemetry/peek/internal/model"
)

var referenceGeometry = Geometry{Width: 200, Height: 250, Offset: 15, Padding: 20}

func TestPlace_Scenarios(t *testing.T) {
	vp := Viewport{Width: 1920, Height: 1080}
	tests := []struct {
		name   string
		anchor model.Anchor
		want   Point
	}{
		{"flip near right edge and clamp top", model.Anchor{X: 1900, Y: 50}, Point{X: 1685, Y: 20}},
		{"default placement", model.Anchor{X: 500, Y: 500}, Point{X: 515, Y: 375}},
		{"clamp bottom", model.Anchor{X: 100, Y: 1070}, Point{X: 115, Y: 1080 - 250 - 20}},
		{"exactly fits right edge", model.Anchor{X: 1900 - 200 - 15, Y: 500}, Point{X: 1900 - 200, Y: 375}},
		{"one cell over right edge", model.Anchor{X: 1900 - 200 - 14, Y: 500}, Point{X: 1900 - 200 - 14 - 215, Y: 375}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(tt.anchor, referenceGeometry, vp)
			if got != tt.want {
				t.Errorf("Place(%+v) = %+v, want %+v", tt.anchor, got, tt.want)
			}
		})
	}
}

func TestPlace_UnknownViewportSkipsClamping(t *testing.T) {
	got := Place(model.Anchor{X: 1900, Y: 50}, referenceGeometry, Unbounded())
	want := Point{X: 1915, Y: -75}
	if got != want {
		t.Errorf("Place = %+v, want %+v", got, want)
	}

	got = Place(model.Anchor{X: 10, Y: 10}, referenceGeometry, Viewport{Width: 0, Height: 1080})
	if got != (Point{X: 25, Y: -115}) {
		t.Errorf("zero-width viewport should be unknown, got %+v", got)
	}
}

func TestPlace_LeftEdgeIsNotRechecked(t *testing.T) {
	// Narrow viewport: the flip lands off-screen to the left and is kept.
	vp := Viewport{Width: 150, Height: 1080}
	got := Place(model.Anchor{X: 40, Y: 500}, referenceGeometry, vp)
	if got.X != 40-200-15 {
		t.Errorf("X = %d, want %d", got.X, 40-200-15)
	}
}

func TestPlace_RightEdgeFlipProperty(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	g := referenceGeometry
	vp := Viewport{Width: 1280, Height: 720}
	for i := 0; i < 1000; i++ {
		a := model.Anchor{X: r.Intn(1400) - 60, Y: r.Intn(800) - 40}
		got := Place(a, g, vp)
		if a.X+g.Offset+g.Width > vp.Width-g.Padding {
			if got.X != a.X-g.Width-g.Offset {
				t.Fatalf("anchor %+v: X = %d, want flipped %d", a, got.X, a.X-g.Width-g.Offset)
			}
		} else if got.X != a.X+g.Offset {
			t.Fatalf("anchor %+v: X = %d, want %d", a, got.X, a.X+g.Offset)
		}
	}
}

func TestPlace_VerticalClampBounds(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	g := referenceGeometry
	for i := 0; i < 1000; i++ {
		vp := Viewport{Width: 1920, Height: g.Height + 2*g.Padding + r.Intn(900)}
		a := model.Anchor{X: r.Intn(1920), Y: r.Intn(vp.Height+400) - 200}
		got := Place(a, g, vp)
		if got.Y < g.Padding || got.Y > vp.Height-g.Height-g.Padding {
			t.Fatalf("anchor %+v viewport %+v: Y = %d out of [%d, %d]",
				a, vp, got.Y, g.Padding, vp.Height-g.Height-g.Padding)
		}
	}
}

func TestPlace_Deterministic(t *testing.T) {
	a := model.Anchor{X: 733, Y: 12}
	vp := Viewport{Width: 800, Height: 600}
	first := Place(a, referenceGeometry, vp)
	for i := 0; i < 100; i++ {
		if got := Place(a, referenceGeometry, vp); got != first {
			t.Fatalf("call %d returned %+v, first was %+v", i, got, first)
		}
	}
}
