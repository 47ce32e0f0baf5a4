// Package deck defines the in-memory presentation model: a deck of slides,
// each holding an ordered stack of layers positioned on the slide canvas.
// All layer coordinates are slide-space units (the canvas's fixed logical
// resolution), never screen pixels.
package deck

import (
	"encoding/json"
	"math"

	"github.com/google/uuid"

	"worship-presenter/pkg/geometry"
)

// MinLayerSize is the smallest width/height a layer may reach, in slide units.
const MinLayerSize = 5.0

// Transform describes a layer's placement on the slide canvas.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
}

// Rect returns the axis-aligned bounds of the transform (ignores rotation).
func (t Transform) Rect() geometry.Rect {
	return geometry.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// Center returns the center point of the layer bounds.
func (t Transform) Center() geometry.Point2D {
	return t.Rect().Center()
}

// AspectRatio returns width/height, or 1 if height is not positive.
func (t Transform) AspectRatio() float64 {
	if t.Height <= 0 {
		return 1
	}
	return t.Width / t.Height
}

// UnmarshalJSON decodes a transform, defaulting opacity to 1 only when the
// field is absent. An explicit 0 is a fully transparent layer and must
// survive decoding.
func (t *Transform) UnmarshalJSON(data []byte) error {
	var raw struct {
		X        float64  `json:"x"`
		Y        float64  `json:"y"`
		Width    float64  `json:"width"`
		Height   float64  `json:"height"`
		Rotation float64  `json:"rotation"`
		Opacity  *float64 `json:"opacity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.X, t.Y = raw.X, raw.Y
	t.Width, t.Height = raw.Width, raw.Height
	t.Rotation = raw.Rotation
	t.Opacity = 1
	if raw.Opacity != nil {
		t.Opacity = *raw.Opacity
	}
	return nil
}

// IsFinite reports whether every numeric field is a finite number.
func (t Transform) IsFinite() bool {
	for _, v := range []float64{t.X, t.Y, t.Width, t.Height, t.Rotation, t.Opacity} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// LayerKind identifies what a layer holds.
type LayerKind string

// Layer kinds.
const (
	KindText  LayerKind = "text"
	KindShape LayerKind = "shape"
	KindMedia LayerKind = "media"
)

// Layer is one visual element on a slide. Kind-specific fields are unused
// for other kinds and omitted from JSON when empty.
type Layer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      LayerKind `json:"kind"`
	Transform Transform `json:"transform"`
	Locked    bool      `json:"locked"`
	Visible   bool      `json:"visible"`

	Text      string `json:"text,omitempty"`
	TextColor string `json:"textColor,omitempty"`
	Fill      string `json:"fill,omitempty"`
	Stroke    string `json:"stroke,omitempty"`
	MediaID   string `json:"mediaId,omitempty"`
}

// NewLayer creates a layer of the given kind with model defaults applied.
func NewLayer(kind LayerKind, name string, t Transform) *Layer {
	if t.Opacity == 0 {
		t.Opacity = 1
	}
	return &Layer{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Transform: t,
		Visible:   true,
	}
}

// NewTextLayer creates a visible text layer.
func NewTextLayer(name, text string, t Transform) *Layer {
	l := NewLayer(KindText, name, t)
	l.Text = text
	l.TextColor = "#ffffff"
	return l
}

// NewShapeLayer creates a visible shape layer with the given fill color.
func NewShapeLayer(name, fill string, t Transform) *Layer {
	l := NewLayer(KindShape, name, t)
	l.Fill = fill
	return l
}

// NewMediaLayer creates a visible media layer referencing a library entry.
func NewMediaLayer(name, mediaID string, t Transform) *Layer {
	l := NewLayer(KindMedia, name, t)
	l.MediaID = mediaID
	return l
}

// Interactive reports whether the layer participates in pointer gestures
// and snap targeting. Locked or hidden layers do not.
func (l *Layer) Interactive() bool {
	return l != nil && l.Visible && !l.Locked
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	return &c
}

// Slide is one slide: a background plus an ordered layer stack, bottom first.
type Slide struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Background string   `json:"background"`
	Notes      string   `json:"notes,omitempty"`
	Layers     []*Layer `json:"layers"`
}

// NewSlide creates an empty slide with a dark background.
func NewSlide(name string) *Slide {
	return &Slide{
		ID:         uuid.NewString(),
		Name:       name,
		Background: "#101018",
	}
}

// Layer returns the layer with the given id, or nil.
func (s *Slide) Layer(id string) *Layer {
	for _, l := range s.Layers {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// IndexOf returns the stack index of the layer with the given id, or -1.
func (s *Slide) IndexOf(id string) int {
	for i, l := range s.Layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// AddLayer appends a layer to the top of the stack.
func (s *Slide) AddLayer(l *Layer) {
	s.Layers = append(s.Layers, l)
}

// RemoveLayer removes the layer with the given id. Returns false if absent.
func (s *Slide) RemoveLayer(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.Layers = append(s.Layers[:i], s.Layers[i+1:]...)
	return true
}

// MoveLayer shifts the layer by delta stack positions, clamped to the stack
// bounds. Returns false if the layer is absent or did not move.
func (s *Slide) MoveLayer(id string, delta int) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	j := i + delta
	if j < 0 {
		j = 0
	}
	if j > len(s.Layers)-1 {
		j = len(s.Layers) - 1
	}
	if j == i {
		return false
	}
	l := s.Layers[i]
	s.Layers = append(s.Layers[:i], s.Layers[i+1:]...)
	s.Layers = append(s.Layers[:j], append([]*Layer{l}, s.Layers[j:]...)...)
	return true
}

// Siblings returns every layer except the one with the given id.
func (s *Slide) Siblings(id string) []*Layer {
	out := make([]*Layer, 0, len(s.Layers))
	for _, l := range s.Layers {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// Clone returns a deep copy of the slide.
func (s *Slide) Clone() *Slide {
	c := *s
	c.Layers = make([]*Layer, len(s.Layers))
	for i, l := range s.Layers {
		c.Layers[i] = l.Clone()
	}
	return &c
}

// Deck is a whole presentation.
type Deck struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Theme  string   `json:"theme"`
	Slides []*Slide `json:"slides"`
}

// New creates an empty deck using the given theme name.
func New(name, theme string) *Deck {
	return &Deck{
		ID:    uuid.NewString(),
		Name:  name,
		Theme: theme,
	}
}

// Slide returns the slide at index i, or nil if out of range.
func (d *Deck) Slide(i int) *Slide {
	if i < 0 || i >= len(d.Slides) {
		return nil
	}
	return d.Slides[i]
}

// AddSlide appends a slide to the deck.
func (d *Deck) AddSlide(s *Slide) {
	d.Slides = append(d.Slides, s)
}

// RemoveSlide removes the slide at index i. Returns false if out of range.
func (d *Deck) RemoveSlide(i int) bool {
	if i < 0 || i >= len(d.Slides) {
		return false
	}
	d.Slides = append(d.Slides[:i], d.Slides[i+1:]...)
	return true
}

// FindLayer locates a layer anywhere in the deck. Returns the layer and its
// slide, or nils.
func (d *Deck) FindLayer(id string) (*Layer, *Slide) {
	for _, s := range d.Slides {
		if l := s.Layer(id); l != nil {
			return l, s
		}
	}
	return nil, nil
}

// Clone returns a deep copy of the deck.
func (d *Deck) Clone() *Deck {
	c := *d
	c.Slides = make([]*Slide, len(d.Slides))
	for i, s := range d.Slides {
		c.Slides[i] = s.Clone()
	}
	return &c
}
