package interaction

import (
	"math"
	"testing"

	"worship-presenter/internal/deck"
	"worship-presenter/internal/snap"
	"worship-presenter/internal/transform"
	"worship-presenter/pkg/geometry"
)

// recorder captures everything a session pushes to its host.
type recorder struct {
	begins     int
	commits    []deck.Patch
	previews   []deck.Transform
	lastGuides []snap.GuideLine
}

type hostState struct {
	rec      *recorder
	vp       *Viewport
	cfg      Config
	siblings []*deck.Layer
}

func newHost() *hostState {
	return &hostState{
		rec: &recorder{},
		vp:  &Viewport{ScaleX: 1, ScaleY: 1},
	}
}

func (h *hostState) env() Env {
	return Env{
		Canvas: geometry.Size{Width: 1920, Height: 1080},
		Viewport: func() (Viewport, bool) {
			if h.vp == nil {
				return Viewport{}, false
			}
			return *h.vp, true
		},
		Config:   func() Config { return h.cfg },
		Siblings: func() []*deck.Layer { return h.siblings },
		OnBegin:  func() { h.rec.begins++ },
		OnPreview: func(t deck.Transform) {
			h.rec.previews = append(h.rec.previews, t)
		},
		OnGuides: func(g []snap.GuideLine) { h.rec.lastGuides = g },
		OnCommit: func(p deck.Patch) { h.rec.commits = append(h.rec.commits, p) },
	}
}

func layerAt(x, y, w, hgt float64) *deck.Layer {
	return deck.NewShapeLayer("box", "#223344", deck.Transform{
		X: x, Y: y, Width: w, Height: hgt,
	})
}

var downAt = geometry.Point2D{X: 500, Y: 500}

func TestDrag_PreviewsThenCommitsOnce(t *testing.T) {
	h := newHost()
	r := NewRouter()
	l := layerAt(100, 100, 200, 100)

	s := r.StartDrag(l, downAt, h.env())
	if s == nil {
		t.Fatal("drag refused for an interactive layer")
	}
	if h.rec.begins != 1 {
		t.Fatalf("begins = %d, want 1 at gesture start", h.rec.begins)
	}

	r.Move(geometry.Point2D{X: 550, Y: 530}, Modifiers{})
	r.Move(geometry.Point2D{X: 560, Y: 510}, Modifiers{})

	if len(h.rec.previews) != 2 {
		t.Fatalf("previews = %d, want 2", len(h.rec.previews))
	}
	if len(h.rec.commits) != 0 {
		t.Fatal("moves must not commit")
	}
	if got := s.Preview(); got.X != 160 || got.Y != 110 {
		t.Fatalf("preview = (%v, %v), want (160, 110)", got.X, got.Y)
	}

	r.Finish()
	r.Finish() // second up is a no-op

	if len(h.rec.commits) != 1 {
		t.Fatalf("commits = %d, want exactly 1", len(h.rec.commits))
	}
	p := h.rec.commits[0]
	if p.X == nil || p.Y == nil || *p.X != 160 || *p.Y != 110 {
		t.Fatalf("commit = %+v, want x=160 y=110", p)
	}
	if p.Width != nil || p.Height != nil || p.Rotation != nil {
		t.Fatalf("drag commit carries extra fields: %+v", p)
	}
	if h.rec.begins != 1 {
		t.Fatalf("begins = %d, want still 1", h.rec.begins)
	}
	if r.Active() != nil {
		t.Fatal("router still has an active session after finish")
	}
}

func TestDrag_SnapsToCanvasCenterWithGuide(t *testing.T) {
	h := newHost()
	r := NewRouter()
	l := layerAt(900, 100, 100, 100)

	s := r.StartDrag(l, downAt, h.env())
	r.Move(geometry.Point2D{X: 505, Y: 500}, Modifiers{})

	// Raw x=905 puts the center at 955, five units from the canvas center.
	if got := s.Preview().X; got != 910 {
		t.Fatalf("preview x = %v, want 910 (center snapped to 960)", got)
	}
	guides := s.Guides()
	if len(guides) != 1 || guides[0].Orientation != snap.Vertical || guides[0].Position != 960 {
		t.Fatalf("guides = %+v, want one vertical at 960", guides)
	}

	r.Finish()

	if h.rec.lastGuides != nil {
		t.Fatal("guides must clear at gesture end")
	}
	if got := *h.rec.commits[0].X; got != 910 {
		t.Fatalf("committed x = %v, want 910", got)
	}
}

func TestDrag_GridAppliesAfterGuideSnap(t *testing.T) {
	h := newHost()
	h.cfg = Config{SnapToGrid: true, GridSize: 10}
	r := NewRouter()

	t.Run("snapped value survives the grid", func(t *testing.T) {
		l := layerAt(900, 100, 100, 100)
		s := r.StartDrag(l, downAt, h.env())
		r.Move(geometry.Point2D{X: 505, Y: 500}, Modifiers{})
		if got := s.Preview().X; got != 910 {
			t.Fatalf("preview x = %v, want 910", got)
		}
		r.Finish()
	})

	t.Run("unsnapped value rounds to the grid", func(t *testing.T) {
		l := layerAt(100, 103, 200, 50)
		s := r.StartDrag(l, downAt, h.env())
		r.Move(geometry.Point2D{X: 502, Y: 502}, Modifiers{})
		got := s.Preview()
		if got.X != 100 || got.Y != 110 {
			t.Fatalf("preview = (%v, %v), want grid-rounded (100, 110)", got.X, got.Y)
		}
		r.Finish()
	})
}

func TestDrag_SiblingSnapHonorsLockAndVisibility(t *testing.T) {
	moving := func() *deck.Layer { return layerAt(100, 100, 100, 100) }
	sibling := func() *deck.Layer { return layerAt(205, 700, 100, 100) }

	t.Run("interactive sibling attracts", func(t *testing.T) {
		h := newHost()
		h.siblings = []*deck.Layer{sibling()}
		r := NewRouter()
		s := r.StartDrag(moving(), downAt, h.env())
		r.Move(geometry.Point2D{X: 503, Y: 500}, Modifiers{})
		// Trailing edge 203 is two units from the sibling's left edge 205.
		if got := s.Preview().X; got != 105 {
			t.Fatalf("preview x = %v, want 105", got)
		}
		if g := s.Guides(); len(g) != 1 || g[0].Position != 205 {
			t.Fatalf("guides = %+v, want one at 205", g)
		}
	})

	t.Run("locked sibling ignored", func(t *testing.T) {
		h := newHost()
		locked := sibling()
		locked.Locked = true
		h.siblings = []*deck.Layer{locked}
		r := NewRouter()
		s := r.StartDrag(moving(), downAt, h.env())
		r.Move(geometry.Point2D{X: 503, Y: 500}, Modifiers{})
		if got := s.Preview().X; got != 103 {
			t.Fatalf("preview x = %v, want unsnapped 103", got)
		}
		if g := s.Guides(); len(g) != 0 {
			t.Fatalf("guides = %+v, want none", g)
		}
	})

	t.Run("hidden sibling ignored", func(t *testing.T) {
		h := newHost()
		hid := sibling()
		hid.Visible = false
		h.siblings = []*deck.Layer{hid}
		r := NewRouter()
		s := r.StartDrag(moving(), downAt, h.env())
		r.Move(geometry.Point2D{X: 503, Y: 500}, Modifiers{})
		if got := s.Preview().X; got != 103 {
			t.Fatalf("preview x = %v, want unsnapped 103", got)
		}
	})
}

func TestDrag_ClampsToCanvas(t *testing.T) {
	h := newHost()
	r := NewRouter()
	l := layerAt(100, 100, 200, 100)

	s := r.StartDrag(l, downAt, h.env())
	r.Move(geometry.Point2D{X: -5000, Y: -5000}, Modifiers{})
	if got := s.Preview(); got.X != 0 || got.Y != 0 {
		t.Fatalf("preview = (%v, %v), want clamped (0, 0)", got.X, got.Y)
	}

	r.Move(geometry.Point2D{X: 9000, Y: 9000}, Modifiers{})
	if got := s.Preview(); got.X != 1720 || got.Y != 980 {
		t.Fatalf("preview = (%v, %v), want clamped (1720, 980)", got.X, got.Y)
	}
}

func TestResize_ShiftInvertsCornerDefault(t *testing.T) {
	t.Run("corner locks by default", func(t *testing.T) {
		h := newHost()
		r := NewRouter()
		s := r.StartResize(layerAt(100, 100, 200, 100), transform.HandleSE, downAt, h.env())
		r.Move(geometry.Point2D{X: 550, Y: 530}, Modifiers{})
		got := s.Preview()
		// Width change dominates; height follows the 2:1 ratio.
		if got.Width != 250 || got.Height != 125 {
			t.Fatalf("size = %vx%v, want locked 250x125", got.Width, got.Height)
		}
	})

	t.Run("shift frees the corner", func(t *testing.T) {
		h := newHost()
		r := NewRouter()
		s := r.StartResize(layerAt(100, 100, 200, 100), transform.HandleSE, downAt, h.env())
		r.Move(geometry.Point2D{X: 550, Y: 530}, Modifiers{Shift: true})
		got := s.Preview()
		if got.X != 100 || got.Y != 100 || got.Width != 250 || got.Height != 130 {
			t.Fatalf("got %+v, want free resize to (100, 100, 250, 130)", got)
		}
	})
}

func TestResize_ShiftLocksEdge(t *testing.T) {
	t.Run("edge free by default", func(t *testing.T) {
		h := newHost()
		r := NewRouter()
		s := r.StartResize(layerAt(100, 100, 200, 100), transform.HandleE, downAt, h.env())
		r.Move(geometry.Point2D{X: 550, Y: 500}, Modifiers{})
		got := s.Preview()
		if got.Width != 250 || got.Height != 100 {
			t.Fatalf("size = %vx%v, want 250x100", got.Width, got.Height)
		}
	})

	t.Run("shift locks the edge", func(t *testing.T) {
		h := newHost()
		r := NewRouter()
		s := r.StartResize(layerAt(100, 100, 200, 100), transform.HandleE, downAt, h.env())
		r.Move(geometry.Point2D{X: 550, Y: 500}, Modifiers{Shift: true})
		got := s.Preview()
		if got.Width != 250 || got.Height != 125 {
			t.Fatalf("size = %vx%v, want ratio-locked 250x125", got.Width, got.Height)
		}
	})
}

func TestResize_AltAnchorsCenter(t *testing.T) {
	h := newHost()
	r := NewRouter()
	s := r.StartResize(layerAt(100, 100, 200, 100), transform.HandleE, downAt, h.env())

	r.Move(geometry.Point2D{X: 510, Y: 500}, Modifiers{Alt: true})
	got := s.Preview()
	if got.Width != 220 {
		t.Fatalf("width = %v, want doubled growth 220", got.Width)
	}
	if c := got.Center(); c.X != 200 || c.Y != 150 {
		t.Fatalf("center = (%v, %v), want fixed (200, 150)", c.X, c.Y)
	}

	r.Finish()
	p := h.rec.commits[0]
	if p.X == nil || p.Y == nil || p.Width == nil || p.Height == nil {
		t.Fatalf("resize commit = %+v, want x/y/width/height set", p)
	}
	if p.Rotation != nil {
		t.Fatal("resize commit must not carry rotation")
	}
}

func TestRotate_TracksPointerAngle(t *testing.T) {
	h := newHost()
	r := NewRouter()
	l := layerAt(100, 100, 100, 50) // center (150, 125)

	s := r.StartRotate(l, geometry.Point2D{X: 250, Y: 125}, h.env())
	if s == nil {
		t.Fatal("rotate refused")
	}

	// Pointer sweeps from due east to due south: +90 degrees.
	r.Move(geometry.Point2D{X: 150, Y: 225}, Modifiers{})
	got := s.Preview()
	if math.Abs(got.Rotation-90) > 1e-9 {
		t.Fatalf("rotation = %v, want 90", got.Rotation)
	}
	if got.X != 100 || got.Y != 100 || got.Width != 100 || got.Height != 50 {
		t.Fatalf("rotation changed bounds: %+v", got)
	}

	r.Finish()
	p := h.rec.commits[0]
	if p.Rotation == nil || math.Abs(*p.Rotation-90) > 1e-9 {
		t.Fatalf("commit = %+v, want rotation 90", p)
	}
	if p.X != nil || p.Y != nil || p.Width != nil || p.Height != nil {
		t.Fatalf("rotate commit carries extra fields: %+v", p)
	}
}

func TestRotate_ShiftSnapsToFifteenDegrees(t *testing.T) {
	h := newHost()
	r := NewRouter()
	l := layerAt(100, 100, 100, 50)

	s := r.StartRotate(l, geometry.Point2D{X: 250, Y: 125}, h.env())
	// atan2(128, 100) is a touch over 52 degrees; snapped, 45.
	r.Move(geometry.Point2D{X: 250, Y: 253}, Modifiers{Shift: true})

	got := s.Preview().Rotation
	if got != 45 {
		t.Fatalf("rotation = %v, want snapped 45", got)
	}
	if rem := math.Mod(got, transform.RotationSnapStep); rem != 0 {
		t.Fatalf("rotation %v not a multiple of %v", got, transform.RotationSnapStep)
	}
}

func TestRotate_RefusedWithoutViewport(t *testing.T) {
	h := newHost()
	h.vp = nil
	r := NewRouter()

	if s := r.StartRotate(layerAt(0, 0, 10, 10), downAt, h.env()); s != nil {
		t.Fatal("rotate must be refused without container measurements")
	}
	if h.rec.begins != 0 {
		t.Fatal("refused gesture must not fire begin")
	}
}

func TestRouter_Guards(t *testing.T) {
	h := newHost()
	r := NewRouter()

	locked := layerAt(0, 0, 10, 10)
	locked.Locked = true
	if r.StartDrag(locked, downAt, h.env()) != nil {
		t.Fatal("locked layer started a drag")
	}

	hidden := layerAt(0, 0, 10, 10)
	hidden.Visible = false
	if r.StartDrag(hidden, downAt, h.env()) != nil {
		t.Fatal("hidden layer started a drag")
	}

	r.SetEditing(true)
	if r.StartDrag(layerAt(0, 0, 10, 10), downAt, h.env()) != nil {
		t.Fatal("drag started during text editing")
	}
	r.SetEditing(false)

	if s := r.StartDrag(layerAt(0, 0, 10, 10), downAt, h.env()); s == nil {
		t.Fatal("interactive layer refused")
	}
	if r.StartDrag(layerAt(50, 50, 10, 10), downAt, h.env()) != nil {
		t.Fatal("second concurrent session started")
	}
	if r.StartResize(layerAt(50, 50, 10, 10), transform.HandleE, downAt, h.env()) != nil {
		t.Fatal("resize started over an active drag")
	}

	if h.rec.begins != 1 {
		t.Fatalf("begins = %d, want 1 (only the accepted gesture)", h.rec.begins)
	}
}

func TestRouter_MoveAndFinishWhenIdle(t *testing.T) {
	r := NewRouter()
	r.Move(downAt, Modifiers{}) // must not panic
	r.Finish()
	r.Abandon()
}

func TestSession_ViewportReReadEveryMove(t *testing.T) {
	h := newHost()
	r := NewRouter()
	l := layerAt(100, 100, 200, 100)

	s := r.StartDrag(l, downAt, h.env())
	r.Move(geometry.Point2D{X: 600, Y: 500}, Modifiers{})
	if got := s.Preview().X; got != 200 {
		t.Fatalf("preview x = %v, want 200 at scale 1", got)
	}

	// The window grew mid-gesture: twice the pixels per slide unit.
	h.vp.ScaleX = 2
	h.vp.ScaleY = 2
	r.Move(geometry.Point2D{X: 600, Y: 500}, Modifiers{})
	if got := s.Preview().X; got != 150 {
		t.Fatalf("preview x = %v, want 150 after rescale", got)
	}
}

func TestSession_MoveNoopsWithoutViewport(t *testing.T) {
	h := newHost()
	h.vp = nil
	r := NewRouter()
	l := layerAt(100, 100, 200, 100)

	s := r.StartDrag(l, downAt, h.env())
	if s == nil {
		t.Fatal("drag start needs no viewport")
	}
	r.Move(geometry.Point2D{X: 600, Y: 500}, Modifiers{})

	if len(h.rec.previews) != 0 {
		t.Fatal("move without measurements must not preview")
	}
	r.Finish()
	p := h.rec.commits[0]
	if *p.X != 100 || *p.Y != 100 {
		t.Fatalf("commit = %+v, want unchanged (100, 100)", p)
	}
}

func TestSession_NonFinitePointerDiscarded(t *testing.T) {
	h := newHost()
	r := NewRouter()
	l := layerAt(100, 100, 200, 100)

	s := r.StartDrag(l, downAt, h.env())
	r.Move(geometry.Point2D{X: math.NaN(), Y: 500}, Modifiers{})
	if got := s.Preview(); got.X != 100 || got.Y != 100 {
		t.Fatalf("preview = (%v, %v), want last known-good (100, 100)", got.X, got.Y)
	}

	r.Move(geometry.Point2D{X: 510, Y: 500}, Modifiers{})
	if got := s.Preview().X; got != 110 {
		t.Fatalf("preview x = %v, want 110 after recovery", got)
	}
}

func TestAbandon_DiscardsWithoutCommit(t *testing.T) {
	h := newHost()
	r := NewRouter()
	l := layerAt(900, 100, 100, 100)

	r.StartDrag(l, downAt, h.env())
	r.Move(geometry.Point2D{X: 505, Y: 500}, Modifiers{})

	r.Abandon()

	if len(h.rec.commits) != 0 {
		t.Fatal("abandoned gesture must not commit")
	}
	if h.rec.lastGuides != nil {
		t.Fatal("abandon must clear guides")
	}
	if r.Active() != nil {
		t.Fatal("router busy after abandon")
	}
}
