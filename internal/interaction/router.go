package interaction

import (
	"worship-presenter/internal/deck"
	"worship-presenter/internal/transform"
	"worship-presenter/pkg/geometry"
)

// Router binds pointer-down targets to session creation and serializes
// gestures: at most one session is active at a time, and it receives every
// pointer event until it ends (the caller guarantees exclusive routing for
// the gesture's duration). Pointer-downs on locked or hidden layers, or
// while a text layer is being edited, create no session.
type Router struct {
	active  *Session
	editing bool
}

// NewRouter creates an idle router.
func NewRouter() *Router {
	return &Router{}
}

// SetEditing flags text-edit mode. While set, no gesture can start.
func (r *Router) SetEditing(editing bool) {
	r.editing = editing
}

// Active returns the in-flight session, or nil when idle.
func (r *Router) Active() *Session {
	return r.active
}

func (r *Router) canStart(l *deck.Layer) bool {
	return r.active == nil && !r.editing && l.Interactive()
}

// StartDrag begins a drag session from a pointer-down on the layer body.
// Returns nil if the gesture is refused.
func (r *Router) StartDrag(l *deck.Layer, screen geometry.Point2D, e Env) *Session {
	if l == nil || !r.canStart(l) {
		return nil
	}
	s := &Session{
		env:         normalizeEnv(e),
		layerID:     l.ID,
		phase:       PhaseDragging,
		startScreen: screen,
		start:       l.Transform,
		preview:     l.Transform,
	}
	s.env.OnBegin()
	r.active = s
	return s
}

// StartResize begins a resize session from a pointer-down on a handle.
// Returns nil if the gesture is refused.
func (r *Router) StartResize(l *deck.Layer, h transform.Handle, screen geometry.Point2D, e Env) *Session {
	if l == nil || !r.canStart(l) {
		return nil
	}
	s := &Session{
		env:         normalizeEnv(e),
		layerID:     l.ID,
		phase:       PhaseResizing,
		handle:      h,
		startScreen: screen,
		start:       l.Transform,
		preview:     l.Transform,
	}
	s.env.OnBegin()
	r.active = s
	return s
}

// StartRotate begins a rotation session from a pointer-down on the rotate
// handle. The layer's screen-space center is computed once, here; a missing
// viewport refuses the gesture. Returns nil if refused.
func (r *Router) StartRotate(l *deck.Layer, screen geometry.Point2D, e Env) *Session {
	if l == nil || !r.canStart(l) {
		return nil
	}
	s := &Session{
		env:         normalizeEnv(e),
		layerID:     l.ID,
		phase:       PhaseRotating,
		startScreen: screen,
		start:       l.Transform,
		preview:     l.Transform,
	}
	vp, ok := s.env.Viewport()
	if !ok || !vp.Valid() {
		return nil
	}
	s.centerScreen = vp.ToScreen(l.Transform.Center())
	s.startAngle = transform.PointerAngle(s.centerScreen, screen)
	s.env.OnBegin()
	r.active = s
	return s
}

// Move forwards a pointer move to the active session. No-op when idle.
func (r *Router) Move(screen geometry.Point2D, mods Modifiers) {
	if r.active == nil {
		return
	}
	r.active.move(screen, mods)
}

// Finish ends the active gesture on pointer-up: the session commits once
// and input routing is released. No-op when idle.
func (r *Router) Finish() {
	if r.active == nil {
		return
	}
	s := r.active
	r.active = nil
	s.finish()
}

// Abandon drops the active gesture without committing, for the case where
// the platform never delivers a terminating pointer event.
func (r *Router) Abandon() {
	if r.active == nil {
		return
	}
	s := r.active
	r.active = nil
	s.abandon()
}
