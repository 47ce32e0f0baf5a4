package transform

import (
	"math"

	"worship-presenter/pkg/geometry"
)

// RotationSnapStep is the increment rotation snaps to while the modifier
// key is held.
const RotationSnapStep = 15.0

// PointerAngle returns the angle, in degrees, of the pointer position about
// a center point. Both points are in the same (screen) coordinate space.
func PointerAngle(center, pointer geometry.Point2D) float64 {
	return geometry.RadToDeg(math.Atan2(pointer.Y-center.Y, pointer.X-center.X))
}

// Rotate advances a rotation by the pointer's angular delta. With snap set,
// the result rounds to the nearest RotationSnapStep. Position and size are
// never affected by rotation.
func Rotate(startRotation, angleDelta float64, snap bool) float64 {
	r := startRotation + angleDelta
	if snap {
		r = math.Round(r/RotationSnapStep) * RotationSnapStep
	}
	return r
}
