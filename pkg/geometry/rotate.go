package geometry

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees maps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// RotatedCorners returns the four corners of the rectangle rotated by the
// given angle (degrees, clockwise in screen coordinates) about its center,
// in order top-left, top-right, bottom-right, bottom-left.
func RotatedCorners(r Rect, degrees float64) [4]Point2D {
	c := r.Center()
	rot := Translation(c.X, c.Y).
		Compose(Rotation(DegToRad(degrees))).
		Compose(Translation(-c.X, -c.Y))

	return [4]Point2D{
		rot.Apply(r.TopLeft()),
		rot.Apply(Point2D{X: r.Right(), Y: r.Y}),
		rot.Apply(r.BottomRight()),
		rot.Apply(Point2D{X: r.X, Y: r.Bottom()}),
	}
}
