// Package canvas provides the slide editing surface: a widget that draws
// the current slide's layers as wireframe boxes, shows selection chrome
// and alignment guides, and feeds pointer input to the gesture engine.
// Slide content is never rasterized here; layers are toolkit objects
// positioned through the slide-to-screen viewport mapping.
package canvas

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"worship-presenter/internal/app"
	"worship-presenter/internal/deck"
	"worship-presenter/internal/interaction"
	"worship-presenter/internal/snap"
	"worship-presenter/internal/transform"
	"worship-presenter/pkg/geometry"
)

const (
	// Margin around the letterboxed slide area, in screen pixels.
	slideMargin = 24
	// Screen distance from the layer's top edge to the rotate grip.
	rotateGripOffset = 26
	rotateGripSize   = 12
	handleVisualSize = 9
)

// hitKind classifies what a pointer-down landed on.
type hitKind int

const (
	hitNothing hitKind = iota
	hitBody
	hitHandle
	hitRotate
)

// SlideCanvas is the editing surface for the current slide.
type SlideCanvas struct {
	widget.BaseWidget

	state  *app.State
	router *interaction.Router

	// Modifier state tracked from mouse events and window key handlers,
	// because drag events carry no modifiers.
	shiftDown bool
	altDown   bool

	// A press on a layer or its chrome arms a pending gesture; the
	// session starts on the first drag event so plain clicks never
	// touch the model or the undo history.
	pending *pendingGesture

	// Live gesture bookkeeping. preview mirrors the active session's
	// last known-good transform so layout can draw it instead of the
	// committed model.
	activeLayer string
	preview     deck.Transform
	guides      []snap.GuideLine

	// Text-edit overlay, present only while editing a text layer.
	editEntry *widget.Entry
	editLayer string

	scene *scene
}

// NewSlideCanvas creates the canvas bound to the application state.
func NewSlideCanvas(state *app.State) *SlideCanvas {
	sc := &SlideCanvas{
		state:  state,
		router: interaction.NewRouter(),
		scene:  newScene(),
	}
	sc.ExtendBaseWidget(sc)
	sc.Rebuild()
	return sc
}

// SetModifierState updates the tracked keyboard modifiers mid-gesture.
func (sc *SlideCanvas) SetModifierState(shift, alt bool) {
	sc.shiftDown = shift
	sc.altDown = alt
}

// Editing reports whether a text layer is being edited inline.
func (sc *SlideCanvas) Editing() bool {
	return sc.editEntry != nil
}

// Rebuild reconstructs the object tree for the current slide. Call after
// slide, deck, or layer-stack changes.
func (sc *SlideCanvas) Rebuild() {
	sc.endTextEdit(true)
	sc.scene.rebuild(sc.state)
	sc.Refresh()
}

// viewport computes the current slide-to-screen mapping from the widget's
// size. Re-queried on every pointer move so a window resize mid-gesture
// stays accurate.
func (sc *SlideCanvas) viewport() (interaction.Viewport, bool) {
	size := sc.Size()
	cv := sc.state.CanvasSize()
	if size.Width <= 2*slideMargin || size.Height <= 2*slideMargin || cv.Width <= 0 || cv.Height <= 0 {
		return interaction.Viewport{}, false
	}

	availW := float64(size.Width) - 2*slideMargin
	availH := float64(size.Height) - 2*slideMargin
	scale := availW / cv.Width
	if s := availH / cv.Height; s < scale {
		scale = s
	}
	if scale <= 0 {
		return interaction.Viewport{}, false
	}

	vp := interaction.Viewport{
		Offset: geometry.Point2D{
			X: (float64(size.Width) - cv.Width*scale) / 2,
			Y: (float64(size.Height) - cv.Height*scale) / 2,
		},
		ScaleX: scale,
		ScaleY: scale,
	}
	return vp, true
}

// env builds the session environment for a gesture on the given layer.
func (sc *SlideCanvas) env(l *deck.Layer) interaction.Env {
	slide := sc.state.CurrentSlide()
	id := l.ID
	return interaction.Env{
		Canvas:   sc.state.CanvasSize(),
		Viewport: sc.viewport,
		Config: func() interaction.Config {
			c := sc.state.Config()
			return interaction.Config{SnapToGrid: c.SnapToGrid, GridSize: c.GridSize}
		},
		Siblings: func() []*deck.Layer {
			if slide == nil {
				return nil
			}
			return slide.Siblings(id)
		},
		OnBegin: func() { sc.state.BeginGesture(id) },
		OnPreview: func(t deck.Transform) {
			sc.preview = t
			sc.Refresh()
		},
		OnGuides: func(g []snap.GuideLine) {
			sc.guides = g
			sc.Refresh()
		},
		OnCommit: func(p deck.Patch) { sc.state.ApplyPatch(id, p) },
	}
}

// pendingGesture remembers what a press landed on until the pointer
// either moves (starting a session) or releases (a plain click).
type pendingGesture struct {
	kind   hitKind
	layer  *deck.Layer
	handle transform.Handle
	press  geometry.Point2D
}

// MouseDown arms a gesture when the press lands on the selected layer's
// chrome or a layer body. Selection itself happens in Tapped.
func (sc *SlideCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	sc.shiftDown = ev.Modifier&fyne.KeyModifierShift != 0
	sc.altDown = ev.Modifier&fyne.KeyModifierAlt != 0

	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	kind, layer, handle := sc.hitTest(pos)
	if kind == hitNothing {
		return
	}
	if kind == hitBody && layer.ID != sc.state.SelectedLayerID() {
		sc.state.SelectLayer(layer.ID)
	}
	sc.pending = &pendingGesture{kind: kind, layer: layer, handle: handle, press: pos}
}

// MouseUp finishes the active gesture: the session commits exactly once.
// A press that never moved is dropped here without touching the model.
func (sc *SlideCanvas) MouseUp(ev *desktop.MouseEvent) {
	sc.pending = nil
	if sc.router.Active() == nil {
		return
	}
	sc.router.Finish()
	sc.activeLayer = ""
	sc.guides = nil
	sc.Refresh()
}

// Dragged forwards pointer movement to the active session, starting it
// from the armed press on the first move.
func (sc *SlideCanvas) Dragged(ev *fyne.DragEvent) {
	if sc.router.Active() == nil {
		p := sc.pending
		if p == nil {
			return
		}
		sc.pending = nil
		switch p.kind {
		case hitRotate:
			sc.router.StartRotate(p.layer, p.press, sc.env(p.layer))
		case hitHandle:
			sc.router.StartResize(p.layer, p.handle, p.press, sc.env(p.layer))
		case hitBody:
			sc.router.StartDrag(p.layer, p.press, sc.env(p.layer))
		}
		s := sc.router.Active()
		if s == nil {
			return
		}
		sc.activeLayer = s.LayerID()
		sc.preview = s.Preview()
	}
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	sc.router.Move(pos, interaction.Modifiers{Shift: sc.shiftDown, Alt: sc.altDown})
}

// DragEnd is handled by MouseUp, which fyne delivers for every press.
func (sc *SlideCanvas) DragEnd() {}

// Tapped selects the layer under the pointer, or clears the selection on
// empty space. A tap outside an inline text editor closes it.
func (sc *SlideCanvas) Tapped(ev *fyne.PointEvent) {
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	kind, layer, _ := sc.hitTest(pos)

	if sc.Editing() && (kind == hitNothing || layer == nil || layer.ID != sc.editLayer) {
		sc.endTextEdit(true)
	}

	switch kind {
	case hitBody:
		sc.state.SelectLayer(layer.ID)
	case hitNothing:
		sc.state.SelectLayer("")
	}
	sc.Refresh()
}

// DoubleTapped opens the inline editor on a text layer.
func (sc *SlideCanvas) DoubleTapped(ev *fyne.PointEvent) {
	pos := geometry.Point2D{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	kind, layer, _ := sc.hitTest(pos)
	if kind != hitBody || layer.Kind != deck.KindText || layer.Locked {
		return
	}
	sc.beginTextEdit(layer)
}

// Deselect clears the selection. Bound to Escape by the window; an
// in-flight gesture keeps running.
func (sc *SlideCanvas) Deselect() {
	if sc.Editing() {
		sc.endTextEdit(true)
		return
	}
	sc.state.SelectLayer("")
	sc.Refresh()
}

// AbandonGesture drops an in-flight gesture without committing.
func (sc *SlideCanvas) AbandonGesture() {
	sc.pending = nil
	if sc.router.Active() == nil {
		return
	}
	sc.router.Abandon()
	sc.activeLayer = ""
	sc.guides = nil
	sc.Refresh()
}

func (sc *SlideCanvas) beginTextEdit(l *deck.Layer) {
	sc.endTextEdit(true)

	entry := widget.NewMultiLineEntry()
	entry.SetText(l.Text)
	entry.Wrapping = fyne.TextWrapWord
	sc.editEntry = entry
	sc.editLayer = l.ID
	sc.router.SetEditing(true)
	sc.Refresh()
	if c := fyne.CurrentApp().Driver().CanvasForObject(sc); c != nil {
		c.Focus(entry)
	}
}

// endTextEdit closes the inline editor, committing the text when commit
// is true.
func (sc *SlideCanvas) endTextEdit(commit bool) {
	if sc.editEntry == nil {
		return
	}
	entry, layerID := sc.editEntry, sc.editLayer
	sc.editEntry = nil
	sc.editLayer = ""
	sc.router.SetEditing(false)

	if commit {
		text := entry.Text
		sc.state.UpdateLayer(layerID, func(l *deck.Layer) {
			if l.Kind == deck.KindText {
				l.Text = text
			}
		})
	}
	sc.Refresh()
}

// hitTest resolves a widget-space position to the selection chrome or the
// topmost visible layer. Handle hit regions use screen-space sizes so
// they stay grabbable at any zoom.
func (sc *SlideCanvas) hitTest(pos geometry.Point2D) (hitKind, *deck.Layer, transform.Handle) {
	vp, ok := sc.viewport()
	if !ok {
		return hitNothing, nil, 0
	}
	slide := sc.state.CurrentSlide()
	if slide == nil {
		return hitNothing, nil, 0
	}

	if sel := sc.state.SelectedLayer(); sel != nil && sel.Interactive() {
		bounds := sc.layerScreenRect(sel, vp)

		grip := sc.rotateGripCenter(bounds)
		if pos.Distance(grip) <= rotateGripSize {
			return hitRotate, sel, 0
		}
		if h, ok := handleAt(bounds, pos); ok {
			return hitHandle, sel, h
		}
	}

	// Topmost layer first.
	for i := len(slide.Layers) - 1; i >= 0; i-- {
		l := slide.Layers[i]
		if !l.Visible {
			continue
		}
		if sc.layerScreenRect(l, vp).Contains(pos) {
			return hitBody, l, 0
		}
	}
	return hitNothing, nil, 0
}

// layerScreenRect maps a layer's slide bounds to widget coordinates,
// substituting the live preview for the layer mid-gesture.
func (sc *SlideCanvas) layerScreenRect(l *deck.Layer, vp interaction.Viewport) geometry.Rect {
	t := l.Transform
	if l.ID == sc.activeLayer {
		t = sc.preview
	}
	tl := vp.ToScreen(geometry.Point2D{X: t.X, Y: t.Y})
	return geometry.Rect{
		X:      tl.X,
		Y:      tl.Y,
		Width:  t.Width * vp.ScaleX,
		Height: t.Height * vp.ScaleY,
	}
}

func (sc *SlideCanvas) rotateGripCenter(bounds geometry.Rect) geometry.Point2D {
	return geometry.Point2D{X: bounds.X + bounds.Width/2, Y: bounds.Y - rotateGripOffset}
}

// handleAt finds the resize handle under a widget-space position: corner
// squares first, then edge bands along each side.
func handleAt(bounds geometry.Rect, pos geometry.Point2D) (transform.Handle, bool) {
	corner := interaction.CornerHitSize
	edge := interaction.EdgeHitThickness

	corners := map[transform.Handle]geometry.Point2D{
		transform.HandleNW: bounds.TopLeft(),
		transform.HandleNE: {X: bounds.Right(), Y: bounds.Y},
		transform.HandleSE: bounds.BottomRight(),
		transform.HandleSW: {X: bounds.X, Y: bounds.Bottom()},
	}
	for h, c := range corners {
		if pos.X >= c.X-corner/2 && pos.X <= c.X+corner/2 &&
			pos.Y >= c.Y-corner/2 && pos.Y <= c.Y+corner/2 {
			return h, true
		}
	}

	withinX := pos.X >= bounds.X && pos.X <= bounds.Right()
	withinY := pos.Y >= bounds.Y && pos.Y <= bounds.Bottom()
	switch {
	case withinX && pos.Y >= bounds.Y-edge/2 && pos.Y <= bounds.Y+edge/2:
		return transform.HandleN, true
	case withinX && pos.Y >= bounds.Bottom()-edge/2 && pos.Y <= bounds.Bottom()+edge/2:
		return transform.HandleS, true
	case withinY && pos.X >= bounds.X-edge/2 && pos.X <= bounds.X+edge/2:
		return transform.HandleW, true
	case withinY && pos.X >= bounds.Right()-edge/2 && pos.X <= bounds.Right()+edge/2:
		return transform.HandleE, true
	}
	return 0, false
}

// CreateRenderer implements fyne.Widget.
func (sc *SlideCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &slideCanvasRenderer{sc: sc}
}

type slideCanvasRenderer struct {
	sc *SlideCanvas
}

func (r *slideCanvasRenderer) Layout(size fyne.Size) {
	r.sc.layout(size)
}

func (r *slideCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 180)
}

func (r *slideCanvasRenderer) Refresh() {
	r.sc.layout(r.sc.Size())
	for _, o := range r.Objects() {
		o.Refresh()
	}
}

func (r *slideCanvasRenderer) Objects() []fyne.CanvasObject {
	objs := r.sc.scene.objects()
	if r.sc.editEntry != nil {
		objs = append(objs, r.sc.editEntry)
	}
	return objs
}

func (r *slideCanvasRenderer) Destroy() {}
