// Package transform implements the pure placement math behind layer
// gestures: moving, handle-based resizing with aspect and anchor rules, and
// rotation. Every function maps a start transform and a slide-space pointer
// delta to a new transform; nothing here touches state or the toolkit.
package transform

import (
	"math"

	"worship-presenter/internal/deck"
	"worship-presenter/pkg/geometry"
)

// ResizeOptions control how a resize delta is interpreted.
type ResizeOptions struct {
	// LockAspect keeps width/height at the starting ratio.
	LockAspect bool
	// FromCenter resizes symmetrically about the starting center instead of
	// anchoring the opposite edge/corner.
	FromCenter bool
	// GridSize snaps the moving edge to this grid. Zero disables.
	GridSize float64
	// Canvas bounds the result.
	Canvas geometry.Size
}

// Resize computes the transform that results from dragging the given handle
// by a slide-space delta. The edge/corner opposite the handle stays fixed
// (the center, with FromCenter); width and height never drop below
// deck.MinLayerSize; the result never extends past the canvas. Rotation and
// opacity pass through unchanged.
func Resize(start deck.Transform, h Handle, delta geometry.Point2D, opts ResizeOptions) deck.Transform {
	if opts.FromCenter {
		return resizeFromCenter(start, h, delta, opts)
	}
	return resizeAnchored(start, h, delta, opts)
}

func resizeAnchored(start deck.Transform, h Handle, delta geometry.Point2D, opts ResizeOptions) deck.Transform {
	out := start
	aspect := start.AspectRatio()

	// Anchor edges that must not move.
	right := start.X + start.Width
	bottom := start.Y + start.Height

	x, y := start.X, start.Y
	w, hgt := start.Width, start.Height

	// Raw per-handle movement.
	switch {
	case h.movesLeft():
		x = start.X + delta.X
		w = start.Width - delta.X
	case h.movesRight():
		w = start.Width + delta.X
	}
	switch {
	case h.movesTop():
		y = start.Y + delta.Y
		hgt = start.Height - delta.Y
	case h.movesBottom():
		hgt = start.Height + delta.Y
	}

	if opts.LockAspect {
		if h.IsCorner() {
			// The dimension that changed more drives the other.
			if math.Abs(w-start.Width) >= math.Abs(hgt-start.Height) {
				hgt = w / aspect
			} else {
				w = hgt * aspect
			}
		} else if h.Horizontal() {
			hgt = w / aspect
		} else {
			w = hgt * aspect
		}
		// Rederive the moving-side coordinates so the anchor holds.
		if h.movesLeft() {
			x = right - w
		}
		if h.movesTop() {
			y = bottom - hgt
		}
	}

	// Minimum size, keeping the anchor edge fixed.
	x, w = clampMinAnchored(x, w, h.movesLeft(), right)
	y, hgt = clampMinAnchored(y, hgt, h.movesTop(), bottom)

	// Grid applies to the moving edge only, never the anchor.
	if opts.GridSize > 0 {
		switch {
		case h.movesLeft():
			x = GridRound(x, opts.GridSize)
			w = right - x
		case h.movesRight():
			w = GridRound(x+w, opts.GridSize) - x
		}
		switch {
		case h.movesTop():
			y = GridRound(y, opts.GridSize)
			hgt = bottom - y
		case h.movesBottom():
			hgt = GridRound(y+hgt, opts.GridSize) - y
		}
	}

	// Canvas bounds: clip the moving edge, absorbing the overflow into the
	// dimension so the anchor edge stays put.
	if h.movesLeft() && x < 0 {
		w += x
		x = 0
	}
	if h.movesTop() && y < 0 {
		hgt += y
		y = 0
	}
	if h.movesRight() && x+w > opts.Canvas.Width {
		w = opts.Canvas.Width - x
	}
	if h.movesBottom() && y+hgt > opts.Canvas.Height {
		hgt = opts.Canvas.Height - y
	}

	// Bounds clipping can undershoot the minimum size.
	x, w = clampMinAnchored(x, w, h.movesLeft(), right)
	y, hgt = clampMinAnchored(y, hgt, h.movesTop(), bottom)

	out.X, out.Y, out.Width, out.Height = x, y, w, hgt
	return out
}

// clampMinAnchored raises size to the minimum, pulling the coordinate back
// toward the far anchor when the near edge was the moving one.
func clampMinAnchored(pos, size float64, movesNear bool, farAnchor float64) (float64, float64) {
	if size >= deck.MinLayerSize {
		return pos, size
	}
	size = deck.MinLayerSize
	if movesNear {
		pos = farAnchor - size
	}
	return pos, size
}

func resizeFromCenter(start deck.Transform, h Handle, delta geometry.Point2D, opts ResizeOptions) deck.Transform {
	out := start
	aspect := start.AspectRatio()
	c := start.Center()

	w, hgt := start.Width, start.Height

	// Symmetric growth: the pointer moves one edge, the center doubles it.
	switch {
	case h.movesLeft():
		w = start.Width - 2*delta.X
	case h.movesRight():
		w = start.Width + 2*delta.X
	}
	switch {
	case h.movesTop():
		hgt = start.Height - 2*delta.Y
	case h.movesBottom():
		hgt = start.Height + 2*delta.Y
	}

	if opts.LockAspect {
		if h.IsCorner() {
			if math.Abs(w-start.Width) >= math.Abs(hgt-start.Height) {
				hgt = w / aspect
			} else {
				w = hgt * aspect
			}
		} else if h.Horizontal() {
			hgt = w / aspect
		} else {
			w = hgt * aspect
		}
	}

	w = math.Max(w, deck.MinLayerSize)
	hgt = math.Max(hgt, deck.MinLayerSize)

	// Grid applies to the handle's moving edge; size rederives from the
	// fixed center.
	if opts.GridSize > 0 {
		switch {
		case h.movesLeft():
			w = 2 * (c.X - GridRound(c.X-w/2, opts.GridSize))
		case h.movesRight():
			w = 2 * (GridRound(c.X+w/2, opts.GridSize) - c.X)
		}
		switch {
		case h.movesTop():
			hgt = 2 * (c.Y - GridRound(c.Y-hgt/2, opts.GridSize))
		case h.movesBottom():
			hgt = 2 * (GridRound(c.Y+hgt/2, opts.GridSize) - c.Y)
		}
	}

	// Largest symmetric extent the canvas allows about this center.
	maxW := math.Min(2*c.X, 2*(opts.Canvas.Width-c.X))
	maxH := math.Min(2*c.Y, 2*(opts.Canvas.Height-c.Y))
	if opts.LockAspect {
		scale := 1.0
		if w > maxW && w > 0 {
			scale = math.Min(scale, maxW/w)
		}
		if hgt > maxH && hgt > 0 {
			scale = math.Min(scale, maxH/hgt)
		}
		w *= scale
		hgt *= scale
	} else {
		w = math.Min(w, maxW)
		hgt = math.Min(hgt, maxH)
	}

	w = math.Max(w, deck.MinLayerSize)
	hgt = math.Max(hgt, deck.MinLayerSize)

	out.X = c.X - w/2
	out.Y = c.Y - hgt/2
	out.Width = w
	out.Height = hgt
	return out
}
