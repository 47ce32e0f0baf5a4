package interaction

import (
	"math"

	"worship-presenter/pkg/geometry"
)

// Viewport maps between screen pixels and slide units. Offset is the screen
// position of the slide's top-left corner; ScaleX/ScaleY are screen pixels
// per slide unit. Sessions re-read the viewport on every pointer move
// because the window may resize mid-gesture.
type Viewport struct {
	Offset geometry.Point2D
	ScaleX float64
	ScaleY float64
}

// Valid reports whether the viewport can convert coordinates.
func (v Viewport) Valid() bool {
	return v.ScaleX > 0 && v.ScaleY > 0 &&
		!math.IsInf(v.ScaleX, 0) && !math.IsInf(v.ScaleY, 0) &&
		v.Offset.IsFinite()
}

// ToSlide converts a screen position to slide units.
func (v Viewport) ToSlide(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (p.X - v.Offset.X) / v.ScaleX,
		Y: (p.Y - v.Offset.Y) / v.ScaleY,
	}
}

// ToScreen converts a slide position to screen pixels.
func (v Viewport) ToScreen(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: v.Offset.X + p.X*v.ScaleX,
		Y: v.Offset.Y + p.Y*v.ScaleY,
	}
}

// DeltaToSlide converts a screen-space displacement to slide units.
func (v Viewport) DeltaToSlide(d geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{X: d.X / v.ScaleX, Y: d.Y / v.ScaleY}
}
