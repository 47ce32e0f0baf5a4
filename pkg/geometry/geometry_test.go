package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < epsilon }

func TestNormalizeDegrees(t *testing.T) {
	tests := map[string]struct {
		in, want float64
	}{
		"zero":        {0, 0},
		"in range":    {90, 90},
		"full turn":   {360, 0},
		"over":        {450, 90},
		"negative":    {-90, 270},
		"deep under":  {-720, 0},
		"almost full": {359.5, 359.5},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := NormalizeDegrees(tc.in); !near(got, tc.want) {
				t.Errorf("NormalizeDegrees(%g) = %g, want %g", tc.in, got, tc.want)
			}
		})
	}
}

func TestRotatedCorners(t *testing.T) {
	r := NewRect(100, 100, 200, 100)

	// A quarter turn about the center flips the bounding box dimensions.
	corners := RotatedCorners(r, 90)
	box := BoundingBox(corners[:])
	if !near(box.Width, 100) || !near(box.Height, 200) {
		t.Errorf("bounding box %gx%g, want 100x200", box.Width, box.Height)
	}
	if c := r.Center(); !near(box.Center().X, c.X) || !near(box.Center().Y, c.Y) {
		t.Error("rotation moved the center")
	}

	// Zero rotation returns the rect's own corners.
	corners = RotatedCorners(r, 0)
	if !near(corners[0].X, 100) || !near(corners[2].Y, 200) {
		t.Errorf("unrotated corners: %+v", corners)
	}
}

func TestAffineInverse(t *testing.T) {
	m := Translation(50, -20).Compose(Rotation(DegToRad(30))).Compose(Scale(2, 2))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("invertible matrix reported singular")
	}

	p := Point2D{X: 13, Y: -7}
	back := inv.Apply(m.Apply(p))
	if !near(back.X, p.X) || !near(back.Y, p.Y) {
		t.Errorf("round trip gave %+v, want %+v", back, p)
	}

	if _, ok := Scale(0, 1).Inverse(); ok {
		t.Error("singular matrix reported invertible")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 30, 20)
	if !r.Contains(Point2D{X: 10, Y: 10}) || !r.Contains(Point2D{X: 40, Y: 30}) {
		t.Error("edges must be inside")
	}
	if r.Contains(Point2D{X: 9.9, Y: 15}) {
		t.Error("point left of the rect reported inside")
	}
}

func TestRectUnion(t *testing.T) {
	u := NewRect(0, 0, 10, 10).Union(NewRect(20, 5, 10, 10))
	want := NewRect(0, 0, 30, 15)
	if u != want {
		t.Errorf("union = %+v, want %+v", u, want)
	}
}
