// Package arrange implements the Arrange menu operations: aligning layers
// against the slide canvas and distributing them with equal gaps. These
// are discrete edits, companions to the pointer gestures: the caller
// wraps each invocation in a single history entry.
package arrange

import (
	"gonum.org/v1/gonum/floats"

	"worship-presenter/internal/deck"
	"worship-presenter/internal/transform"
	"worship-presenter/pkg/geometry"
)

// Alignment selects an edge or center line of the canvas to align against.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenterH
	AlignRight
	AlignTop
	AlignMiddle
	AlignBottom
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenterH:
		return "center"
	case AlignRight:
		return "right"
	case AlignTop:
		return "top"
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Align moves each layer so the chosen edge or center sits on the matching
// canvas landmark. Layers keep their size; results are clamped to the
// canvas. Returns the number of layers moved.
func Align(layers []*deck.Layer, a Alignment, canvas geometry.Size) int {
	moved := 0
	for _, l := range layers {
		t := l.Transform
		switch a {
		case AlignLeft:
			t.X = 0
		case AlignCenterH:
			t.X = canvas.Width/2 - t.Width/2
		case AlignRight:
			t.X = canvas.Width - t.Width
		case AlignTop:
			t.Y = 0
		case AlignMiddle:
			t.Y = canvas.Height/2 - t.Height/2
		case AlignBottom:
			t.Y = canvas.Height - t.Height
		}
		t = transform.ClampPosition(t, canvas)
		if t != l.Transform {
			l.Transform = t
			moved++
		}
	}
	return moved
}

// DistributeHorizontal spaces three or more layers with equal horizontal
// gaps between them. The leftmost and rightmost layers (by center) keep
// their positions; the layers between are ordered by center and spread so
// every gap matches. Returns false when fewer than three layers are given
// or they do not fit.
func DistributeHorizontal(layers []*deck.Layer, canvas geometry.Size) bool {
	return distribute(layers, canvas, true)
}

// DistributeVertical is DistributeHorizontal for the Y axis.
func DistributeVertical(layers []*deck.Layer, canvas geometry.Size) bool {
	return distribute(layers, canvas, false)
}

func distribute(layers []*deck.Layer, canvas geometry.Size, horizontal bool) bool {
	n := len(layers)
	if n < 3 {
		return false
	}

	centers := make([]float64, n)
	inds := make([]int, n)
	total := 0.0
	for i, l := range layers {
		c := l.Transform.Center()
		if horizontal {
			centers[i] = c.X
			total += l.Transform.Width
		} else {
			centers[i] = c.Y
			total += l.Transform.Height
		}
	}
	floats.Argsort(centers, inds)

	first := layers[inds[0]]
	last := layers[inds[n-1]]

	var span float64
	if horizontal {
		span = (last.Transform.X + last.Transform.Width) - first.Transform.X
	} else {
		span = (last.Transform.Y + last.Transform.Height) - first.Transform.Y
	}
	gap := (span - total) / float64(n-1)
	if gap < 0 {
		return false
	}

	pos := 0.0
	if horizontal {
		pos = first.Transform.X
	} else {
		pos = first.Transform.Y
	}
	for _, i := range inds {
		l := layers[i]
		t := l.Transform
		if horizontal {
			t.X = pos
			pos += t.Width + gap
		} else {
			t.Y = pos
			pos += t.Height + gap
		}
		l.Transform = transform.ClampPosition(t, canvas)
	}
	return true
}
