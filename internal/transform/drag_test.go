package transform

import (
	"testing"

	"worship-presenter/internal/deck"
	"worship-presenter/pkg/geometry"
)

func TestMove(t *testing.T) {
	got := Move(start(), geometry.Point2D{X: 50, Y: -30})
	if got.X != 150 || got.Y != 70 {
		t.Fatalf("Move = (%v, %v), want (150, 70)", got.X, got.Y)
	}
	if got.Width != 200 || got.Height != 100 {
		t.Fatalf("Move changed size to %vx%v", got.Width, got.Height)
	}
}

func TestGridRound(t *testing.T) {
	type tc struct {
		v, grid, want float64
	}

	tests := map[string]tc{
		"rounds down":       {v: 104, grid: 10, want: 100},
		"rounds up":         {v: 105, grid: 10, want: 110},
		"exact multiple":    {v: 120, grid: 10, want: 120},
		"negative value":    {v: -14, grid: 10, want: -10},
		"zero grid disables": {v: 104, grid: 0, want: 104},
		"negative grid disables": {v: 104, grid: -5, want: 104},
		"fractional grid":   {v: 7.3, grid: 2.5, want: 7.5},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := GridRound(tt.v, tt.grid); got != tt.want {
				t.Errorf("GridRound(%v, %v) = %v, want %v", tt.v, tt.grid, got, tt.want)
			}
		})
	}
}

func TestClampPosition(t *testing.T) {
	type tc struct {
		in           deck.Transform
		wantX, wantY float64
	}

	tests := map[string]tc{
		"inside untouched": {
			in:    deck.Transform{X: 100, Y: 100, Width: 200, Height: 100},
			wantX: 100, wantY: 100,
		},
		"negative origin": {
			in:    deck.Transform{X: -40, Y: -3, Width: 200, Height: 100},
			wantX: 0, wantY: 0,
		},
		"past far edges": {
			in:    deck.Transform{X: 1900, Y: 1050, Width: 200, Height: 100},
			wantX: 1720, wantY: 980,
		},
		"larger than canvas pins to origin": {
			in:    deck.Transform{X: 50, Y: 50, Width: 4000, Height: 3000},
			wantX: 0, wantY: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ClampPosition(tt.in, testCanvas)
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Errorf("ClampPosition = (%v, %v), want (%v, %v)", got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}
