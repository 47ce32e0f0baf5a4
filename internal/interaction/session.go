// Package interaction owns the per-gesture state of the layer editor: one
// Session per active drag/resize/rotate, created by the GestureRouter on
// pointer-down and destroyed on pointer-up. Sessions publish continuous
// live previews while the pointer moves and perform exactly one commit,
// with only the changed fields, when the gesture ends. Session state lives
// outside the event-emitting application store so that pointer-move
// handling never fans out change events.
package interaction

import (
	"worship-presenter/internal/deck"
	"worship-presenter/internal/snap"
	"worship-presenter/internal/transform"
	"worship-presenter/pkg/geometry"
)

// Resize handle hit-region sizes, in slide-adjusted units: squares for the
// four corners, bar thickness for the four edges.
const (
	CornerHitSize    = 14.0
	EdgeHitThickness = 8.0
)

// Phase is the state of a gesture session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseResizing
	PhaseRotating
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	case PhaseRotating:
		return "rotating"
	default:
		return "unknown"
	}
}

// Modifiers are the keyboard modifiers active during a pointer event.
// Shift inverts the per-handle aspect-lock default during resize and snaps
// rotation to 15 degree steps; Alt resizes about the layer center.
type Modifiers struct {
	Shift bool
	Alt   bool
}

// Config is the editor configuration a session reads while handling moves.
type Config struct {
	SnapToGrid bool
	GridSize   float64
}

// Env supplies everything a session reads from the host and the sinks it
// writes to. Viewport and Config are funcs because both must be re-read on
// every pointer move, never cached across moves.
type Env struct {
	// Canvas is the slide's fixed logical resolution.
	Canvas geometry.Size
	// Viewport reports the current screen mapping; ok=false when the
	// container has not been measured yet.
	Viewport func() (Viewport, bool)
	// Config reports the current snap settings.
	Config func() Config
	// Siblings lists every other layer on the slide (snap-target
	// candidates); the session filters out locked and hidden ones.
	Siblings func() []*deck.Layer
	// OnBegin fires at most once per session, before any preview, so the
	// host can push its single undo snapshot for the gesture.
	OnBegin func()
	// OnPreview receives each intermediate transform. Hosts apply it to
	// the visual layer only; the model is untouched until commit.
	OnPreview func(deck.Transform)
	// OnGuides receives the active alignment guides (nil when none).
	OnGuides func([]snap.GuideLine)
	// OnCommit fires exactly once per completed gesture with only the
	// fields the gesture changed.
	OnCommit func(deck.Patch)
}

// Session is one in-flight gesture on one layer. Create through the
// GestureRouter; a Session is single-threaded and never reused.
type Session struct {
	env     env
	layerID string
	phase   Phase
	handle  transform.Handle

	startScreen geometry.Point2D
	start       deck.Transform
	preview     deck.Transform
	guides      []snap.GuideLine

	// Rotation gestures cache the screen-space center at start.
	centerScreen geometry.Point2D
	startAngle   float64

	done bool
}

// env is Env with nil funcs replaced, so sessions can call without checks.
type env struct {
	Canvas    geometry.Size
	Viewport  func() (Viewport, bool)
	Config    func() Config
	Siblings  func() []*deck.Layer
	OnBegin   func()
	OnPreview func(deck.Transform)
	OnGuides  func([]snap.GuideLine)
	OnCommit  func(deck.Patch)
}

func normalizeEnv(e Env) env {
	out := env{
		Canvas:    e.Canvas,
		Viewport:  e.Viewport,
		Config:    e.Config,
		Siblings:  e.Siblings,
		OnBegin:   e.OnBegin,
		OnPreview: e.OnPreview,
		OnGuides:  e.OnGuides,
		OnCommit:  e.OnCommit,
	}
	if out.Viewport == nil {
		out.Viewport = func() (Viewport, bool) { return Viewport{}, false }
	}
	if out.Config == nil {
		out.Config = func() Config { return Config{} }
	}
	if out.Siblings == nil {
		out.Siblings = func() []*deck.Layer { return nil }
	}
	if out.OnBegin == nil {
		out.OnBegin = func() {}
	}
	if out.OnPreview == nil {
		out.OnPreview = func(deck.Transform) {}
	}
	if out.OnGuides == nil {
		out.OnGuides = func([]snap.GuideLine) {}
	}
	if out.OnCommit == nil {
		out.OnCommit = func(deck.Patch) {}
	}
	return out
}

// Phase returns the session's current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// LayerID returns the id of the layer the gesture targets.
func (s *Session) LayerID() string {
	return s.layerID
}

// Preview returns the last known-good transform for rendering.
func (s *Session) Preview() deck.Transform {
	return s.preview
}

// Guides returns the active alignment guides. Empty outside a drag.
func (s *Session) Guides() []snap.GuideLine {
	return s.guides
}

// Handle returns the active resize handle. Meaningful only while resizing.
func (s *Session) Handle() transform.Handle {
	return s.handle
}

// move dispatches one pointer move to the phase handler. No-ops once the
// session is done or when required measurements are unavailable.
func (s *Session) move(screen geometry.Point2D, mods Modifiers) {
	if s.done || s.phase == PhaseIdle {
		return
	}
	if s.phase == PhaseRotating {
		// The rotation center was fixed at gesture start; no viewport
		// conversion is needed for the angle.
		s.rotateTo(screen, mods)
		return
	}

	vp, ok := s.env.Viewport()
	if !ok || !vp.Valid() {
		return
	}
	delta := vp.DeltaToSlide(screen.Sub(s.startScreen))
	if !delta.IsFinite() {
		return
	}

	switch s.phase {
	case PhaseDragging:
		s.dragTo(delta)
	case PhaseResizing:
		s.resizeTo(delta, mods)
	}
}

func (s *Session) dragTo(delta geometry.Point2D) {
	next := transform.Move(s.start, delta)

	targets := snap.BuildTargets(s.env.Canvas, s.env.Siblings())
	var guides []snap.GuideLine
	if x, g, ok := snap.Axis(snap.Vertical, next.X, next.Width, targets.X); ok {
		next.X = x
		guides = append(guides, g)
	}
	if y, g, ok := snap.Axis(snap.Horizontal, next.Y, next.Height, targets.Y); ok {
		next.Y = y
		guides = append(guides, g)
	}

	cfg := s.env.Config()
	if cfg.SnapToGrid {
		next.X = transform.GridRound(next.X, cfg.GridSize)
		next.Y = transform.GridRound(next.Y, cfg.GridSize)
	}

	next = transform.ClampPosition(next, s.env.Canvas)
	s.setPreview(next, guides)
}

func (s *Session) resizeTo(delta geometry.Point2D, mods Modifiers) {
	cfg := s.env.Config()
	opts := transform.ResizeOptions{
		// Corners lock the aspect ratio by default, edges do not; Shift
		// flips whichever default applies.
		LockAspect: s.handle.IsCorner() != mods.Shift,
		FromCenter: mods.Alt,
		Canvas:     s.env.Canvas,
	}
	if cfg.SnapToGrid {
		opts.GridSize = cfg.GridSize
	}
	s.setPreview(transform.Resize(s.start, s.handle, delta, opts), nil)
}

func (s *Session) rotateTo(screen geometry.Point2D, mods Modifiers) {
	angle := transform.PointerAngle(s.centerScreen, screen)
	next := s.start
	next.Rotation = transform.Rotate(s.start.Rotation, angle-s.startAngle, mods.Shift)
	s.setPreview(next, nil)
}

// setPreview publishes a new preview, discarding non-finite results in
// favor of the previous known-good transform.
func (s *Session) setPreview(t deck.Transform, guides []snap.GuideLine) {
	if !t.IsFinite() {
		return
	}
	s.preview = t
	s.guides = guides
	s.env.OnPreview(t)
	s.env.OnGuides(guides)
}

// finish commits the gesture: exactly one OnCommit carrying only the
// fields this gesture type changes, then the session is dead.
func (s *Session) finish() {
	if s.done {
		return
	}
	s.done = true

	var p deck.Patch
	switch s.phase {
	case PhaseDragging:
		p = deck.MovePatch(s.preview.X, s.preview.Y)
	case PhaseResizing:
		p = deck.ResizePatch(s.preview.X, s.preview.Y, s.preview.Width, s.preview.Height)
	case PhaseRotating:
		p = deck.RotationPatch(s.preview.Rotation)
	}

	s.guides = nil
	s.env.OnGuides(nil)
	s.phase = PhaseIdle
	s.env.OnCommit(p)
}

// abandon ends the session without committing, for gestures whose terminal
// pointer event never arrived. The preview is discarded.
func (s *Session) abandon() {
	if s.done {
		return
	}
	s.done = true
	s.guides = nil
	s.env.OnGuides(nil)
	s.phase = PhaseIdle
}
