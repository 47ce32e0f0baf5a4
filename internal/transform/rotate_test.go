package transform

import (
	"math"
	"testing"

	"worship-presenter/pkg/geometry"
)

func TestPointerAngle(t *testing.T) {
	center := geometry.Point2D{X: 100, Y: 100}

	type tc struct {
		pointer geometry.Point2D
		want    float64
	}

	// Screen coordinates: Y grows downward, so "below center" is +90.
	tests := map[string]tc{
		"east":  {pointer: geometry.Point2D{X: 150, Y: 100}, want: 0},
		"south": {pointer: geometry.Point2D{X: 100, Y: 150}, want: 90},
		"west":  {pointer: geometry.Point2D{X: 50, Y: 100}, want: 180},
		"north": {pointer: geometry.Point2D{X: 100, Y: 50}, want: -90},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := PointerAngle(center, tt.pointer); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PointerAngle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotate_Exact(t *testing.T) {
	if got := Rotate(10, 12.5, false); got != 22.5 {
		t.Fatalf("Rotate = %v, want exactly 22.5", got)
	}
	if got := Rotate(350, 30, false); got != 380 {
		t.Fatalf("Rotate = %v, want 380 (not normalized)", got)
	}
}

func TestRotate_Snapped(t *testing.T) {
	type tc struct {
		start, delta, want float64
	}

	tests := map[string]tc{
		"rounds down":     {start: 0, delta: 52.4, want: 45},
		"rounds up":       {start: 0, delta: 53, want: 60},
		"negative angles": {start: -10, delta: -12, want: -15},
		"already aligned": {start: 30, delta: 15, want: 45},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Rotate(tt.start, tt.delta, true)
			if got != tt.want {
				t.Errorf("Rotate(%v, %v, snap) = %v, want %v", tt.start, tt.delta, got, tt.want)
			}
			if rem := math.Mod(got, RotationSnapStep); rem != 0 {
				t.Errorf("snapped rotation %v is not a multiple of %v", got, RotationSnapStep)
			}
		})
	}
}
