package snap

import (
	"testing"

	"worship-presenter/internal/deck"
	"worship-presenter/pkg/geometry"
)

func TestAxis_SnapsEachCandidate(t *testing.T) {
	type tc struct {
		leading, size float64
		targets       []float64
		want          float64
		wantGuide     float64
	}

	tests := map[string]tc{
		"leading edge to target": {
			leading: 103, size: 100, targets: []float64{100},
			want: 100, wantGuide: 100,
		},
		"center to target": {
			leading: 905, size: 100, targets: []float64{960},
			want: 910, wantGuide: 960,
		},
		"trailing edge to target": {
			leading: 103, size: 100, targets: []float64{200},
			want: 100, wantGuide: 200,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, guide, ok := Axis(Vertical, tt.leading, tt.size, tt.targets)
			if !ok {
				t.Fatalf("expected a snap")
			}
			if got != tt.want {
				t.Errorf("snapped leading = %v, want %v", got, tt.want)
			}
			if guide.Position != tt.wantGuide || guide.Orientation != Vertical {
				t.Errorf("guide = %+v, want vertical at %v", guide, tt.wantGuide)
			}
		})
	}
}

func TestAxis_ThresholdBoundary(t *testing.T) {
	// Distance exactly at the threshold still snaps.
	got, _, ok := Axis(Horizontal, 106, 100, []float64{100})
	if !ok || got != 100 {
		t.Fatalf("distance 6 should snap: got %v, ok=%v", got, ok)
	}

	// Just past the threshold must not.
	got, _, ok = Axis(Horizontal, 106.01, 100, []float64{100})
	if ok || got != 106.01 {
		t.Fatalf("distance 6.01 should not snap: got %v, ok=%v", got, ok)
	}
}

func TestAxis_PicksClosestPair(t *testing.T) {
	// Leading edge at 103 is 3 from target 100; trailing edge at 203 is 2
	// from target 205. The closer pair wins.
	got, guide, ok := Axis(Vertical, 103, 100, []float64{100, 205})
	if !ok {
		t.Fatal("expected a snap")
	}
	if got != 105 || guide.Position != 205 {
		t.Fatalf("got leading %v guide %v, want 105 with guide 205", got, guide.Position)
	}
}

func TestAxis_NoTargets(t *testing.T) {
	got, _, ok := Axis(Vertical, 103, 100, nil)
	if ok || got != 103 {
		t.Fatalf("no targets must not snap: got %v, ok=%v", got, ok)
	}
}

func TestAxis_CanvasCenterScenario(t *testing.T) {
	// Layer of width 100 dragged to raw x=905 on a 1920-wide canvas: its
	// center 955 is 5 from the canvas center 960, inside the threshold.
	targets := axisTargets(0, 1920)

	got, guide, ok := Axis(Vertical, 905, 100, targets)
	if !ok {
		t.Fatal("expected a snap to the canvas center")
	}
	if got != 910 {
		t.Fatalf("snapped leading = %v, want 910 (center exactly 960)", got)
	}
	if guide.Orientation != Vertical || guide.Position != 960 {
		t.Fatalf("guide = %+v, want vertical at 960", guide)
	}
}

func TestBuildTargets(t *testing.T) {
	canvas := geometry.Size{Width: 1920, Height: 1080}

	visible := deck.NewShapeLayer("a", "#fff", deck.Transform{X: 100, Y: 200, Width: 50, Height: 40})
	locked := deck.NewShapeLayer("b", "#fff", deck.Transform{X: 500, Y: 500, Width: 10, Height: 10})
	locked.Locked = true
	hidden := deck.NewShapeLayer("c", "#fff", deck.Transform{X: 700, Y: 700, Width: 10, Height: 10})
	hidden.Visible = false

	targets := BuildTargets(canvas, []*deck.Layer{visible, locked, hidden})

	// Canvas landmarks plus one interactive sibling: 3 + 3 per axis.
	if len(targets.X) != 6 || len(targets.Y) != 6 {
		t.Fatalf("target counts = %d/%d, want 6/6 (locked and hidden excluded)",
			len(targets.X), len(targets.Y))
	}

	wantX := []float64{0, 960, 1920, 100, 125, 150}
	for i, want := range wantX {
		if targets.X[i] != want {
			t.Errorf("targets.X[%d] = %v, want %v", i, targets.X[i], want)
		}
	}
	wantY := []float64{0, 540, 1080, 200, 220, 240}
	for i, want := range wantY {
		if targets.Y[i] != want {
			t.Errorf("targets.Y[%d] = %v, want %v", i, targets.Y[i], want)
		}
	}
}
