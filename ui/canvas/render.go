package canvas

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"

	"worship-presenter/internal/app"
	"worship-presenter/internal/deck"
	"worship-presenter/internal/interaction"
	"worship-presenter/internal/snap"
	"worship-presenter/pkg/colorutil"
	"worship-presenter/pkg/geometry"
)

var (
	backdropColor   = color.NRGBA{R: 0x14, G: 0x14, B: 0x1b, A: 0xff}
	slideFrameColor = color.NRGBA{R: 0x48, G: 0x48, B: 0x55, A: 0xff}
	selectionColor  = color.NRGBA{R: 0x4d, G: 0x8f, B: 0xe0, A: 0xff}
	lockedColor     = color.NRGBA{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}
	guideColor      = color.NRGBA{R: 0xff, G: 0x4d, B: 0x8a, A: 0xff}
	labelColor      = color.NRGBA{R: 0xd8, G: 0xd8, B: 0xe0, A: 0xff}
	defaultBoxFill  = color.NRGBA{R: 0x2e, G: 0x2e, B: 0x3a, A: 0xff}
)

// layerBox is the wireframe rendering of one layer: an axis-aligned fill
// rectangle, a name label, and four lines drawn only when the layer is
// rotated.
type layerBox struct {
	id      string
	fill    *fynecanvas.Rectangle
	label   *fynecanvas.Text
	outline [4]*fynecanvas.Line
}

func newLayerBox(l *deck.Layer) *layerBox {
	b := &layerBox{
		id:    l.ID,
		fill:  fynecanvas.NewRectangle(defaultBoxFill),
		label: fynecanvas.NewText(l.Name, labelColor),
	}
	b.fill.StrokeWidth = 1
	b.label.TextSize = 11
	for i := range b.outline {
		b.outline[i] = fynecanvas.NewLine(slideFrameColor)
		b.outline[i].StrokeWidth = 1
	}
	return b
}

// scene owns the full object tree behind the canvas widget. rebuild
// reconstructs it for a slide; the widget's layout pass positions it.
type scene struct {
	backdrop *fynecanvas.Rectangle
	slideBG  *fynecanvas.Rectangle
	boxes    []*layerBox

	// At most one guide per axis.
	guideV *fynecanvas.Line
	guideH *fynecanvas.Line

	chromeOutline [4]*fynecanvas.Line
	handles       [8]*fynecanvas.Rectangle
	rotateStem    *fynecanvas.Line
	rotateGrip    *fynecanvas.Circle
}

func newScene() *scene {
	s := &scene{
		backdrop: fynecanvas.NewRectangle(backdropColor),
		slideBG:  fynecanvas.NewRectangle(colorutil.Black),
		guideV:   fynecanvas.NewLine(guideColor),
		guideH:   fynecanvas.NewLine(guideColor),
	}
	s.slideBG.StrokeColor = slideFrameColor
	s.slideBG.StrokeWidth = 1
	s.guideV.StrokeWidth = 1
	s.guideH.StrokeWidth = 1

	for i := range s.chromeOutline {
		s.chromeOutline[i] = fynecanvas.NewLine(selectionColor)
		s.chromeOutline[i].StrokeWidth = 2
	}
	for i := range s.handles {
		h := fynecanvas.NewRectangle(selectionColor)
		h.StrokeColor = colorutil.White
		h.StrokeWidth = 1
		s.handles[i] = h
	}
	s.rotateStem = fynecanvas.NewLine(selectionColor)
	s.rotateStem.StrokeWidth = 1
	s.rotateGrip = fynecanvas.NewCircle(selectionColor)
	s.rotateGrip.StrokeColor = colorutil.White
	s.rotateGrip.StrokeWidth = 1
	return s
}

// rebuild recreates the per-layer boxes for the current slide.
func (s *scene) rebuild(state *app.State) {
	s.boxes = s.boxes[:0]
	slide := state.CurrentSlide()
	if slide == nil {
		return
	}
	for _, l := range slide.Layers {
		s.boxes = append(s.boxes, newLayerBox(l))
	}
}

// objects returns the draw list, back to front.
func (s *scene) objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, 2+len(s.boxes)*6+17)
	objs = append(objs, s.backdrop, s.slideBG)
	for _, b := range s.boxes {
		objs = append(objs, b.fill)
		for _, ln := range b.outline {
			objs = append(objs, ln)
		}
		objs = append(objs, b.label)
	}
	objs = append(objs, s.guideV, s.guideH)
	for _, ln := range s.chromeOutline {
		objs = append(objs, ln)
	}
	for _, h := range s.handles {
		objs = append(objs, h)
	}
	objs = append(objs, s.rotateStem, s.rotateGrip)
	return objs
}

// layout positions every scene object from the current model and viewport.
func (sc *SlideCanvas) layout(size fyne.Size) {
	s := sc.scene
	s.backdrop.Move(fyne.NewPos(0, 0))
	s.backdrop.Resize(size)

	vp, ok := sc.viewport()
	slide := sc.state.CurrentSlide()
	if !ok || slide == nil {
		s.slideBG.Hide()
		sc.layoutChrome(nil, vp)
		sc.layoutGuides(vp)
		return
	}

	cv := sc.state.CanvasSize()
	s.slideBG.FillColor = colorutil.ParseHexOr(slide.Background, colorutil.Black)
	s.slideBG.Move(posOf(vp.Offset))
	s.slideBG.Resize(fyne.NewSize(float32(cv.Width*vp.ScaleX), float32(cv.Height*vp.ScaleY)))
	s.slideBG.Show()

	for i, b := range s.boxes {
		if i >= len(slide.Layers) || slide.Layers[i].ID != b.id {
			continue
		}
		sc.layoutLayerBox(b, slide.Layers[i], vp)
	}

	var selected *deck.Layer
	if id := sc.state.SelectedLayerID(); id != "" {
		selected = slide.Layer(id)
	}
	sc.layoutChrome(selected, vp)
	sc.layoutGuides(vp)
	sc.layoutEditor(selected, vp)
}

func (sc *SlideCanvas) layoutLayerBox(b *layerBox, l *deck.Layer, vp interaction.Viewport) {
	if !l.Visible {
		b.fill.Hide()
		b.label.Hide()
		for _, ln := range b.outline {
			ln.Hide()
		}
		return
	}

	t := l.Transform
	if l.ID == sc.activeLayer {
		t = sc.preview
	}
	rect := geometry.Rect{
		X:      vp.Offset.X + t.X*vp.ScaleX,
		Y:      vp.Offset.Y + t.Y*vp.ScaleY,
		Width:  t.Width * vp.ScaleX,
		Height: t.Height * vp.ScaleY,
	}

	fill := defaultBoxFill
	if l.Fill != "" {
		fill = colorutil.ParseHexOr(l.Fill, defaultBoxFill)
	}
	fill = colorutil.WithOpacity(fill, 0.35*t.Opacity+0.15)
	b.fill.FillColor = fill
	b.fill.StrokeColor = slideFrameColor
	if l.Locked {
		b.fill.StrokeColor = lockedColor
	}
	b.fill.Move(fyne.NewPos(float32(rect.X), float32(rect.Y)))
	b.fill.Resize(fyne.NewSize(float32(rect.Width), float32(rect.Height)))
	b.fill.Show()

	b.label.Text = l.Name
	if l.Locked {
		b.label.Text = l.Name + " (locked)"
	}
	b.label.Move(fyne.NewPos(float32(rect.X)+3, float32(rect.Y)+2))
	b.label.Show()

	if t.Rotation != 0 {
		corners := geometry.RotatedCorners(rect, t.Rotation)
		for i, ln := range b.outline {
			ln.Position1 = posOf(corners[i])
			ln.Position2 = posOf(corners[(i+1)%4])
			ln.Show()
		}
	} else {
		for _, ln := range b.outline {
			ln.Hide()
		}
	}
}

// layoutChrome positions the selection outline, resize handles, and
// rotate grip around the selected layer, or hides them all.
func (sc *SlideCanvas) layoutChrome(selected *deck.Layer, vp interaction.Viewport) {
	s := sc.scene
	if selected == nil || !selected.Visible || !vp.Valid() {
		for _, ln := range s.chromeOutline {
			ln.Hide()
		}
		for _, h := range s.handles {
			h.Hide()
		}
		s.rotateStem.Hide()
		s.rotateGrip.Hide()
		return
	}

	bounds := sc.layerScreenRect(selected, vp)
	t := selected.Transform
	if selected.ID == sc.activeLayer {
		t = sc.preview
	}

	corners := geometry.RotatedCorners(bounds, t.Rotation)
	for i, ln := range s.chromeOutline {
		ln.Position1 = posOf(corners[i])
		ln.Position2 = posOf(corners[(i+1)%4])
		ln.StrokeColor = selectionColor
		if selected.Locked {
			ln.StrokeColor = lockedColor
		}
		ln.Show()
	}

	if selected.Locked {
		for _, h := range s.handles {
			h.Hide()
		}
		s.rotateStem.Hide()
		s.rotateGrip.Hide()
		return
	}

	// Handles stay axis-aligned on the unrotated bounds, matching the
	// axis-aligned resize model.
	anchors := [8]geometry.Point2D{
		bounds.TopLeft(),
		{X: bounds.X + bounds.Width/2, Y: bounds.Y},
		{X: bounds.Right(), Y: bounds.Y},
		{X: bounds.Right(), Y: bounds.Y + bounds.Height/2},
		bounds.BottomRight(),
		{X: bounds.X + bounds.Width/2, Y: bounds.Bottom()},
		{X: bounds.X, Y: bounds.Bottom()},
		{X: bounds.X, Y: bounds.Y + bounds.Height/2},
	}
	for i, h := range s.handles {
		h.Move(fyne.NewPos(
			float32(anchors[i].X)-handleVisualSize/2,
			float32(anchors[i].Y)-handleVisualSize/2,
		))
		h.Resize(fyne.NewSize(handleVisualSize, handleVisualSize))
		h.Show()
	}

	grip := sc.rotateGripCenter(bounds)
	s.rotateStem.Position1 = fyne.NewPos(float32(grip.X), float32(bounds.Y))
	s.rotateStem.Position2 = posOf(grip)
	s.rotateStem.Show()
	s.rotateGrip.Move(fyne.NewPos(
		float32(grip.X)-rotateGripSize/2,
		float32(grip.Y)-rotateGripSize/2,
	))
	s.rotateGrip.Resize(fyne.NewSize(rotateGripSize, rotateGripSize))
	s.rotateGrip.Show()
}

// layoutGuides positions the snap guide lines spanning the slide area.
func (sc *SlideCanvas) layoutGuides(vp interaction.Viewport) {
	s := sc.scene
	s.guideV.Hide()
	s.guideH.Hide()
	if !vp.Valid() || !sc.state.Config().ShowGuides {
		return
	}

	cv := sc.state.CanvasSize()
	for _, g := range sc.guides {
		switch g.Orientation {
		case snap.Vertical:
			x := float32(vp.Offset.X + g.Position*vp.ScaleX)
			s.guideV.Position1 = fyne.NewPos(x, float32(vp.Offset.Y))
			s.guideV.Position2 = fyne.NewPos(x, float32(vp.Offset.Y+cv.Height*vp.ScaleY))
			s.guideV.Show()
		case snap.Horizontal:
			y := float32(vp.Offset.Y + g.Position*vp.ScaleY)
			s.guideH.Position1 = fyne.NewPos(float32(vp.Offset.X), y)
			s.guideH.Position2 = fyne.NewPos(float32(vp.Offset.X+cv.Width*vp.ScaleX), y)
			s.guideH.Show()
		}
	}
}

// layoutEditor keeps the inline text editor over its layer's bounds.
func (sc *SlideCanvas) layoutEditor(selected *deck.Layer, vp interaction.Viewport) {
	if sc.editEntry == nil {
		return
	}
	slide := sc.state.CurrentSlide()
	if slide == nil {
		return
	}
	l := slide.Layer(sc.editLayer)
	if l == nil || !vp.Valid() {
		return
	}
	rect := sc.layerScreenRect(l, vp)
	sc.editEntry.Move(fyne.NewPos(float32(rect.X), float32(rect.Y)))
	sc.editEntry.Resize(fyne.NewSize(float32(rect.Width), float32(rect.Height)))
}

func posOf(p geometry.Point2D) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}
