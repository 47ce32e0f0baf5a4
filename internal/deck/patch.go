package deck

// Patch is a partial transform update. Nil fields are left unchanged when
// the patch is applied. Gesture commits carry only the fields the gesture
// moved; the property sheet patches single fields.
type Patch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
}

// Float64 returns a pointer to v, for building patches field by field.
func Float64(v float64) *float64 {
	return &v
}

// MovePatch builds the {x,y} patch a completed drag commits.
func MovePatch(x, y float64) Patch {
	return Patch{X: &x, Y: &y}
}

// ResizePatch builds the {x,y,width,height} patch a completed resize commits.
func ResizePatch(x, y, width, height float64) Patch {
	return Patch{X: &x, Y: &y, Width: &width, Height: &height}
}

// RotationPatch builds the {rotation} patch a completed rotate commits.
func RotationPatch(deg float64) Patch {
	return Patch{Rotation: &deg}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.Rotation == nil && p.Opacity == nil
}

// ApplyTo returns t with the patch's non-nil fields substituted.
func (p Patch) ApplyTo(t Transform) Transform {
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.Width != nil {
		t.Width = *p.Width
	}
	if p.Height != nil {
		t.Height = *p.Height
	}
	if p.Rotation != nil {
		t.Rotation = *p.Rotation
	}
	if p.Opacity != nil {
		t.Opacity = *p.Opacity
	}
	return t
}
