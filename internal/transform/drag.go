package transform

import (
	"math"

	"worship-presenter/internal/deck"
	"worship-presenter/pkg/geometry"
)

// Move returns start displaced by a slide-space delta. No clamping; the
// caller snaps and clamps afterwards.
func Move(start deck.Transform, delta geometry.Point2D) deck.Transform {
	start.X += delta.X
	start.Y += delta.Y
	return start
}

// GridRound rounds v to the nearest multiple of grid. A non-positive grid
// returns v unchanged.
func GridRound(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// ClampPosition confines the layer position to the canvas without changing
// its size: x into [0, canvasWidth-width], y into [0, canvasHeight-height].
// A layer larger than the canvas pins to the top/left edge.
func ClampPosition(t deck.Transform, canvas geometry.Size) deck.Transform {
	t.X = math.Max(0, math.Min(t.X, canvas.Width-t.Width))
	t.Y = math.Max(0, math.Min(t.Y, canvas.Height-t.Height))
	return t
}
