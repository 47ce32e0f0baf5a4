// Package snap implements alignment snapping for layer drags: a moving
// layer's edges and center lock onto canvas landmarks and sibling layer
// positions when close enough, emitting transient guide lines for feedback.
// The engine is UI-agnostic and deterministic so it can be unit tested and
// reused headlessly.
package snap

import (
	"math"

	"worship-presenter/internal/deck"
	"worship-presenter/pkg/geometry"
)

// Threshold is the maximum distance, in slide units, at which a moving
// position locks onto a target.
const Threshold = 6.0

// Orientation of a guide line.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// GuideLine marks the target a snap locked onto, for overlay rendering.
// Guides live only for the duration of a drag: recomputed every pointer
// move, cleared at gesture end, never persisted.
type GuideLine struct {
	Orientation Orientation `json:"orientation"`
	Position    float64     `json:"position"`
}

// Axis snaps one axis of a moving layer. leading is the moving leading edge
// (left for the X axis, top for Y) and size the layer extent on that axis;
// the candidates compared against the targets are the leading edge, the
// center, and the trailing edge. If the closest (target, candidate) pair is
// within Threshold, the returned leading edge is shifted so that candidate
// lands exactly on the target, and the guide marks the target. Otherwise
// leading returns unchanged with no guide.
func Axis(o Orientation, leading, size float64, targets []float64) (float64, GuideLine, bool) {
	candidates := [3]float64{leading, leading + size/2, leading + size}

	bestDist := math.Inf(1)
	bestTarget, bestCandidate := 0.0, 0.0

	for _, t := range targets {
		for _, c := range candidates {
			d := math.Abs(t - c)
			if d < bestDist {
				bestDist = d
				bestTarget = t
				bestCandidate = c
			}
		}
	}

	if bestDist > Threshold {
		return leading, GuideLine{}, false
	}
	snapped := leading + (bestTarget - bestCandidate)
	return snapped, GuideLine{Orientation: o, Position: bestTarget}, true
}

// Targets are the static positions a drag may snap to, per axis.
type Targets struct {
	X []float64
	Y []float64
}

// BuildTargets collects snap targets for a drag: the canvas edges and
// center on each axis, plus the edges and center of every sibling layer
// that is visible and unlocked. The moving layer itself must not be in
// siblings.
func BuildTargets(canvas geometry.Size, siblings []*deck.Layer) Targets {
	t := Targets{
		X: axisTargets(0, canvas.Width),
		Y: axisTargets(0, canvas.Height),
	}
	for _, l := range siblings {
		if !l.Interactive() {
			continue
		}
		r := l.Transform.Rect()
		t.X = append(t.X, axisTargets(r.X, r.Width)...)
		t.Y = append(t.Y, axisTargets(r.Y, r.Height)...)
	}
	return t
}

func axisTargets(leading, size float64) []float64 {
	return []float64{leading, leading + size/2, leading + size}
}
