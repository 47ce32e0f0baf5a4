package transform

import (
	"math"
	"testing"

	"worship-presenter/internal/deck"
	"worship-presenter/pkg/geometry"
)

var testCanvas = geometry.Size{Width: 1920, Height: 1080}

func start() deck.Transform {
	return deck.Transform{X: 100, Y: 100, Width: 200, Height: 100, Opacity: 1}
}

func TestResize_PerHandle(t *testing.T) {
	type tc struct {
		handle                 Handle
		delta                  geometry.Point2D
		wantX, wantY           float64
		wantWidth, wantHeight  float64
	}

	tests := map[string]tc{
		"nw moves origin and both sizes": {
			handle: HandleNW, delta: geometry.Point2D{X: 10, Y: 20},
			wantX: 110, wantY: 120, wantWidth: 190, wantHeight: 80,
		},
		"n moves top edge only": {
			handle: HandleN, delta: geometry.Point2D{X: 10, Y: 20},
			wantX: 100, wantY: 120, wantWidth: 200, wantHeight: 80,
		},
		"ne moves top and right": {
			handle: HandleNE, delta: geometry.Point2D{X: 10, Y: 20},
			wantX: 100, wantY: 120, wantWidth: 210, wantHeight: 80,
		},
		"e changes width only": {
			handle: HandleE, delta: geometry.Point2D{X: 10, Y: 20},
			wantX: 100, wantY: 100, wantWidth: 210, wantHeight: 100,
		},
		"se grows both sizes": {
			handle: HandleSE, delta: geometry.Point2D{X: 10, Y: 20},
			wantX: 100, wantY: 100, wantWidth: 210, wantHeight: 120,
		},
		"s moves bottom edge only": {
			handle: HandleS, delta: geometry.Point2D{X: 10, Y: 20},
			wantX: 100, wantY: 100, wantWidth: 200, wantHeight: 120,
		},
		"sw moves left and bottom": {
			handle: HandleSW, delta: geometry.Point2D{X: 10, Y: 20},
			wantX: 110, wantY: 100, wantWidth: 190, wantHeight: 120,
		},
		"w moves left edge only": {
			handle: HandleW, delta: geometry.Point2D{X: 10, Y: 20},
			wantX: 110, wantY: 100, wantWidth: 190, wantHeight: 100,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Resize(start(), tt.handle, tt.delta, ResizeOptions{Canvas: testCanvas})
			if got.X != tt.wantX || got.Y != tt.wantY ||
				got.Width != tt.wantWidth || got.Height != tt.wantHeight {
				t.Errorf("Resize(%v) = {%v, %v, %v, %v}, want {%v, %v, %v, %v}",
					tt.handle, got.X, got.Y, got.Width, got.Height,
					tt.wantX, tt.wantY, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestResize_GrowSoutheastUnlocked(t *testing.T) {
	got := Resize(start(), HandleSE, geometry.Point2D{X: 50, Y: 30}, ResizeOptions{Canvas: testCanvas})

	want := deck.Transform{X: 100, Y: 100, Width: 250, Height: 130, Opacity: 1}
	if got != want {
		t.Fatalf("se resize = %+v, want %+v", got, want)
	}
}

func TestResize_NorthwestLockedKeepsBottomRight(t *testing.T) {
	got := Resize(start(), HandleNW, geometry.Point2D{X: -20, Y: -10}, ResizeOptions{
		LockAspect: true,
		Canvas:     testCanvas,
	})

	// Width change (20) dominates height change (10): width drives, height
	// follows the 2:1 ratio, and origin shifts so the bottom-right corner
	// stays put.
	if got.Width != 220 || got.Height != 110 {
		t.Fatalf("size = %vx%v, want 220x110", got.Width, got.Height)
	}
	if got.X != 80 || got.Y != 90 {
		t.Fatalf("origin = (%v, %v), want (80, 90)", got.X, got.Y)
	}
	if br := got.Rect().BottomRight(); br.X != 300 || br.Y != 200 {
		t.Fatalf("bottom-right moved to (%v, %v), want (300, 200)", br.X, br.Y)
	}
}

func TestResize_LockedCornerHeightDominates(t *testing.T) {
	got := Resize(start(), HandleNE, geometry.Point2D{X: 5, Y: -80}, ResizeOptions{
		LockAspect: true,
		Canvas:     testCanvas,
	})

	if got.Width != 360 || got.Height != 180 {
		t.Fatalf("size = %vx%v, want 360x180", got.Width, got.Height)
	}
	if got.X != 100 || got.Y != 20 {
		t.Fatalf("origin = (%v, %v), want (100, 20)", got.X, got.Y)
	}
	if ratio := got.Width / got.Height; math.Abs(ratio-2) > 1e-3 {
		t.Fatalf("aspect ratio = %v, want 2", ratio)
	}
}

func TestResize_LockedEdgeDerivesOtherDimension(t *testing.T) {
	got := Resize(start(), HandleE, geometry.Point2D{X: 100}, ResizeOptions{
		LockAspect: true,
		Canvas:     testCanvas,
	})

	if got.Width != 300 || got.Height != 150 {
		t.Fatalf("size = %vx%v, want 300x150", got.Width, got.Height)
	}
	if got.X != 100 || got.Y != 100 {
		t.Fatalf("origin = (%v, %v), want (100, 100)", got.X, got.Y)
	}
}

func TestResize_MinSizeKeepsAnchor(t *testing.T) {
	type tc struct {
		handle               Handle
		delta                geometry.Point2D
		wantX, wantY         float64
	}

	tests := map[string]tc{
		"west handle collapses to right anchor": {
			handle: HandleW, delta: geometry.Point2D{X: 198},
			wantX: 295, wantY: 100,
		},
		"northwest collapses to bottom-right anchor": {
			handle: HandleNW, delta: geometry.Point2D{X: 500, Y: 500},
			wantX: 295, wantY: 195,
		},
		"southeast collapses to top-left anchor": {
			handle: HandleSE, delta: geometry.Point2D{X: -500, Y: -500},
			wantX: 100, wantY: 100,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Resize(start(), tt.handle, tt.delta, ResizeOptions{Canvas: testCanvas})
			if got.Width != deck.MinLayerSize || got.Height < deck.MinLayerSize {
				t.Errorf("size = %vx%v, want minimum %v", got.Width, got.Height, deck.MinLayerSize)
			}
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("origin = (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestResize_AnchorInvariance(t *testing.T) {
	const tol = 1e-9
	delta := geometry.Point2D{X: 37, Y: -12}

	for _, h := range Handles {
		for _, lock := range []bool{false, true} {
			got := Resize(start(), h, delta, ResizeOptions{LockAspect: lock, Canvas: testCanvas})

			if h.movesLeft() {
				if math.Abs(got.Rect().Right()-300) > tol {
					t.Errorf("%v lock=%v: right edge = %v, want 300", h, lock, got.Rect().Right())
				}
			} else if h.movesRight() {
				if math.Abs(got.X-100) > tol {
					t.Errorf("%v lock=%v: left edge = %v, want 100", h, lock, got.X)
				}
			}
			if h.movesTop() {
				if math.Abs(got.Rect().Bottom()-200) > tol {
					t.Errorf("%v lock=%v: bottom edge = %v, want 200", h, lock, got.Rect().Bottom())
				}
			} else if h.movesBottom() {
				if math.Abs(got.Y-100) > tol {
					t.Errorf("%v lock=%v: top edge = %v, want 100", h, lock, got.Y)
				}
			}
		}
	}
}

func TestResize_GridRoundsMovingEdgeOnly(t *testing.T) {
	// Start at x=103 so a rounded anchor would be visible immediately.
	from := deck.Transform{X: 103, Y: 100, Width: 200, Height: 100, Opacity: 1}

	got := Resize(from, HandleE, geometry.Point2D{X: 13}, ResizeOptions{
		GridSize: 10,
		Canvas:   testCanvas,
	})

	// Raw right edge 103+213=316 rounds to 320; the left anchor never moves.
	if got.X != 103 {
		t.Fatalf("anchor x = %v, want 103 untouched by grid", got.X)
	}
	if got.Width != 217 {
		t.Fatalf("width = %v, want 217 (right edge on grid)", got.Width)
	}
}

func TestResize_ClampsToCanvas(t *testing.T) {
	t.Run("far edge", func(t *testing.T) {
		from := deck.Transform{X: 1800, Y: 100, Width: 100, Height: 100, Opacity: 1}
		got := Resize(from, HandleE, geometry.Point2D{X: 50}, ResizeOptions{Canvas: testCanvas})
		if got.Width != 120 || got.X != 1800 {
			t.Errorf("got {x=%v w=%v}, want {x=1800 w=120}", got.X, got.Width)
		}
	})

	t.Run("near edge absorbs overflow", func(t *testing.T) {
		from := deck.Transform{X: 10, Y: 100, Width: 200, Height: 100, Opacity: 1}
		got := Resize(from, HandleW, geometry.Point2D{X: -20}, ResizeOptions{Canvas: testCanvas})
		if got.X != 0 || got.Width != 210 {
			t.Errorf("got {x=%v w=%v}, want {x=0 w=210}", got.X, got.Width)
		}
		if got.Rect().Right() != 210 {
			t.Errorf("right edge = %v, want anchor 210 preserved", got.Rect().Right())
		}
	})
}

func TestResize_FromCenter(t *testing.T) {
	got := Resize(start(), HandleSE, geometry.Point2D{X: 10, Y: 5}, ResizeOptions{
		FromCenter: true,
		Canvas:     testCanvas,
	})

	if got.Width != 220 || got.Height != 110 {
		t.Fatalf("size = %vx%v, want 220x110 (deltas doubled)", got.Width, got.Height)
	}
	if c := got.Center(); c.X != 200 || c.Y != 150 {
		t.Fatalf("center = (%v, %v), want fixed (200, 150)", c.X, c.Y)
	}
}

func TestResize_FromCenterCappedByCanvas(t *testing.T) {
	from := deck.Transform{X: 10, Y: 100, Width: 40, Height: 50, Opacity: 1}

	got := Resize(from, HandleE, geometry.Point2D{X: 100}, ResizeOptions{
		FromCenter: true,
		Canvas:     testCanvas,
	})

	// Center x=30 allows at most 60 of symmetric width.
	if got.Width != 60 || got.X != 0 {
		t.Fatalf("got {x=%v w=%v}, want {x=0 w=60}", got.X, got.Width)
	}
	if got.Height != 50 || got.Y != 100 {
		t.Fatalf("vertical changed: {y=%v h=%v}, want {y=100 h=50}", got.Y, got.Height)
	}
}

func TestResize_FromCenterLockedCapsUniformly(t *testing.T) {
	from := deck.Transform{X: 10, Y: 100, Width: 40, Height: 50, Opacity: 1}

	got := Resize(from, HandleSE, geometry.Point2D{X: 100, Y: 0}, ResizeOptions{
		FromCenter: true,
		LockAspect: true,
		Canvas:     testCanvas,
	})

	if got.Width != 60 || got.Height != 75 {
		t.Fatalf("size = %vx%v, want 60x75", got.Width, got.Height)
	}
	if ratio := got.Width / got.Height; math.Abs(ratio-0.8) > 1e-3 {
		t.Fatalf("aspect ratio = %v, want 0.8 preserved", ratio)
	}
	if c := got.Center(); c.X != 30 || c.Y != 125 {
		t.Fatalf("center = (%v, %v), want fixed (30, 125)", c.X, c.Y)
	}
}

func TestResize_FromCenterRespectsBoundsPostHoc(t *testing.T) {
	from := deck.Transform{X: 10, Y: 10, Width: 40, Height: 40, Opacity: 1}

	for _, h := range Handles {
		got := Resize(from, h, geometry.Point2D{X: 500, Y: 500}, ResizeOptions{
			FromCenter: true,
			Canvas:     testCanvas,
		})
		r := got.Rect()
		if r.X < 0 || r.Y < 0 || r.Right() > testCanvas.Width || r.Bottom() > testCanvas.Height {
			t.Errorf("%v: result %+v escapes the canvas", h, r)
		}
	}
}

func TestResize_PassesThroughRotationAndOpacity(t *testing.T) {
	from := deck.Transform{X: 100, Y: 100, Width: 200, Height: 100, Rotation: 33, Opacity: 0.5}

	got := Resize(from, HandleSE, geometry.Point2D{X: 10, Y: 10}, ResizeOptions{Canvas: testCanvas})
	if got.Rotation != 33 || got.Opacity != 0.5 {
		t.Fatalf("rotation/opacity = %v/%v, want 33/0.5 untouched", got.Rotation, got.Opacity)
	}
}
