// Package app provides the application state store, its change events,
// and the editor-wide configuration. The store is the single commit sink
// for the gesture engine: sessions preview freely, then write once
// through ApplyPatch.
package app

import (
	"sync"

	"worship-presenter/internal/arrange"
	"worship-presenter/internal/deck"
	"worship-presenter/internal/history"
	"worship-presenter/internal/show"
	"worship-presenter/internal/theme"
	"worship-presenter/pkg/geometry"
)

// EditorConfig holds the editor settings the engine and canvas read.
type EditorConfig struct {
	SnapToGrid bool
	GridSize   float64
	ShowGuides bool
}

// DefaultConfig is applied until preferences override it.
func DefaultConfig() EditorConfig {
	return EditorConfig{SnapToGrid: false, GridSize: 10, ShowGuides: true}
}

// EventType identifies application events.
type EventType int

const (
	EventDeckChanged EventType = iota
	EventSlideChanged
	EventSelectionChanged
	EventLayersChanged
	EventConfigChanged
	EventShowChanged
	EventHistoryChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the open deck, the editing context, and the live-show
// state. Mutators emit events after releasing the lock; listeners run on
// the caller's goroutine.
type State struct {
	mu sync.RWMutex

	deck          *deck.Deck
	slideIndex    int
	selectedLayer string
	config        EditorConfig
	show          show.Show
	history       *history.Stack

	listeners map[EventType][]EventListener
}

// NewState creates a state holding the given deck.
func NewState(d *deck.Deck) *State {
	return &State{
		deck:      d,
		config:    DefaultConfig(),
		history:   history.NewStack(0),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Deck returns the open deck. Callers outside commit paths treat it as
// read-only.
func (s *State) Deck() *deck.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck
}

// DeckSnapshot returns an independent copy of the deck, for the remote
// wire.
func (s *State) DeckSnapshot() *deck.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck.Clone()
}

// SetDeck replaces the open deck, resetting selection, slide position,
// history, and the show.
func (s *State) SetDeck(d *deck.Deck) {
	s.mu.Lock()
	s.deck = d
	s.slideIndex = 0
	s.selectedLayer = ""
	s.history.Clear()
	s.show = show.Show{}
	s.mu.Unlock()

	s.Emit(EventDeckChanged, d)
	s.Emit(EventShowChanged, s.Show())
}

// Theme returns the deck's theme, falling back to the default.
func (s *State) Theme() *theme.Theme {
	s.mu.RLock()
	name := s.deck.Theme
	s.mu.RUnlock()
	return theme.GetOrDefault(name)
}

// SetTheme switches the deck to the named theme. Unknown names no-op.
func (s *State) SetTheme(name string) {
	if theme.Get(name) == nil {
		return
	}
	s.mu.Lock()
	changed := s.deck.Theme != name
	s.deck.Theme = name
	s.mu.Unlock()
	if changed {
		s.Emit(EventDeckChanged, nil)
	}
}

// CanvasSize returns the slide resolution of the active theme.
func (s *State) CanvasSize() geometry.Size {
	return s.Theme().CanvasSize()
}

// Config returns the current editor configuration.
func (s *State) Config() EditorConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the editor configuration.
func (s *State) SetConfig(c EditorConfig) {
	s.mu.Lock()
	changed := s.config != c
	s.config = c
	s.mu.Unlock()
	if changed {
		s.Emit(EventConfigChanged, c)
	}
}

// SlideIndex returns the index of the slide being edited.
func (s *State) SlideIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slideIndex
}

// CurrentSlide returns the slide being edited, or nil for an empty deck.
func (s *State) CurrentSlide() *deck.Slide {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck.Slide(s.slideIndex)
}

// SetSlideIndex moves editing to another slide, dropping the selection.
func (s *State) SetSlideIndex(i int) {
	s.mu.Lock()
	if i < 0 || i >= len(s.deck.Slides) || i == s.slideIndex {
		s.mu.Unlock()
		return
	}
	s.slideIndex = i
	s.selectedLayer = ""
	s.mu.Unlock()

	s.Emit(EventSlideChanged, i)
	s.Emit(EventSelectionChanged, "")
}

// SelectedLayerID returns the id of the selected layer, or "".
func (s *State) SelectedLayerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedLayer
}

// SelectedLayer returns the selected layer on the current slide, or nil.
func (s *State) SelectedLayer() *deck.Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slide := s.deck.Slide(s.slideIndex)
	if slide == nil {
		return nil
	}
	return slide.Layer(s.selectedLayer)
}

// SelectLayer changes the selection. An empty id deselects.
func (s *State) SelectLayer(id string) {
	s.mu.Lock()
	if s.selectedLayer == id {
		s.mu.Unlock()
		return
	}
	s.selectedLayer = id
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, id)
}

// BeginGesture pushes the single undo snapshot for a starting gesture.
// The gesture engine calls it once per session, before any preview.
func (s *State) BeginGesture(layerID string) {
	s.mu.Lock()
	s.history.Push(s.deck)
	s.mu.Unlock()
	s.Emit(EventHistoryChanged, nil)
}

// ApplyPatch is the gesture commit sink: it writes a partial transform to
// the layer, anywhere in the deck. A missing layer (removed mid-gesture)
// or an empty patch no-ops.
func (s *State) ApplyPatch(layerID string, p deck.Patch) {
	if p.IsEmpty() {
		return
	}
	s.mu.Lock()
	l, _ := s.deck.FindLayer(layerID)
	if l == nil {
		s.mu.Unlock()
		return
	}
	l.Transform = p.ApplyTo(l.Transform)
	s.mu.Unlock()

	s.Emit(EventLayersChanged, layerID)
}

// Undo restores the previous deck snapshot.
func (s *State) Undo() bool {
	s.mu.Lock()
	d, ok := s.history.Undo(s.deck)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.replaceDeckLocked(d)
	s.mu.Unlock()

	s.Emit(EventDeckChanged, nil)
	s.Emit(EventHistoryChanged, nil)
	return true
}

// Redo re-applies the most recently undone snapshot.
func (s *State) Redo() bool {
	s.mu.Lock()
	d, ok := s.history.Redo(s.deck)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.replaceDeckLocked(d)
	s.mu.Unlock()

	s.Emit(EventDeckChanged, nil)
	s.Emit(EventHistoryChanged, nil)
	return true
}

// replaceDeckLocked swaps the deck in, keeping slide index and selection
// valid against the restored content.
func (s *State) replaceDeckLocked(d *deck.Deck) {
	s.deck = d
	if s.slideIndex >= len(d.Slides) {
		s.slideIndex = len(d.Slides) - 1
		if s.slideIndex < 0 {
			s.slideIndex = 0
		}
	}
	if s.selectedLayer != "" {
		if l, _ := d.FindLayer(s.selectedLayer); l == nil {
			s.selectedLayer = ""
		}
	}
}

// CanUndo reports whether Undo would do anything.
func (s *State) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would do anything.
func (s *State) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// AddLayer appends a layer to the current slide as one undoable edit and
// selects it.
func (s *State) AddLayer(l *deck.Layer) {
	s.mu.Lock()
	slide := s.deck.Slide(s.slideIndex)
	if slide == nil {
		s.mu.Unlock()
		return
	}
	s.history.Push(s.deck)
	slide.AddLayer(l)
	s.selectedLayer = l.ID
	s.mu.Unlock()

	s.Emit(EventLayersChanged, l.ID)
	s.Emit(EventSelectionChanged, l.ID)
	s.Emit(EventHistoryChanged, nil)
}

// RemoveSelectedLayer deletes the selected layer from the current slide.
func (s *State) RemoveSelectedLayer() bool {
	s.mu.Lock()
	slide := s.deck.Slide(s.slideIndex)
	if slide == nil || s.selectedLayer == "" || slide.Layer(s.selectedLayer) == nil {
		s.mu.Unlock()
		return false
	}
	s.history.Push(s.deck)
	slide.RemoveLayer(s.selectedLayer)
	s.selectedLayer = ""
	s.mu.Unlock()

	s.Emit(EventLayersChanged, nil)
	s.Emit(EventSelectionChanged, "")
	s.Emit(EventHistoryChanged, nil)
	return true
}

// ReorderLayer shifts a layer within the current slide's stack.
func (s *State) ReorderLayer(id string, delta int) bool {
	s.mu.Lock()
	slide := s.deck.Slide(s.slideIndex)
	if slide == nil {
		s.mu.Unlock()
		return false
	}
	// A clamped move can refuse without touching the stack; snapshot first
	// and record it only when the order actually changed.
	before := s.deck.Clone()
	ok := slide.MoveLayer(id, delta)
	if ok {
		s.history.PushSnapshot(before)
	}
	s.mu.Unlock()

	if ok {
		s.Emit(EventLayersChanged, id)
		s.Emit(EventHistoryChanged, nil)
	}
	return ok
}

// SetLayerLocked toggles a layer's lock flag.
func (s *State) SetLayerLocked(id string, locked bool) {
	s.mutateLayer(id, func(l *deck.Layer) { l.Locked = locked })
}

// SetLayerVisible toggles a layer's visibility.
func (s *State) SetLayerVisible(id string, visible bool) {
	s.mutateLayer(id, func(l *deck.Layer) { l.Visible = visible })
}

// UpdateLayer applies an arbitrary edit to a layer as one undoable step.
func (s *State) UpdateLayer(id string, edit func(*deck.Layer)) {
	s.mu.Lock()
	l, _ := s.deck.FindLayer(id)
	if l == nil {
		s.mu.Unlock()
		return
	}
	s.history.Push(s.deck)
	edit(l)
	s.mu.Unlock()

	s.Emit(EventLayersChanged, id)
	s.Emit(EventHistoryChanged, nil)
}

func (s *State) mutateLayer(id string, edit func(*deck.Layer)) {
	s.mu.Lock()
	l, _ := s.deck.FindLayer(id)
	if l == nil {
		s.mu.Unlock()
		return
	}
	edit(l)
	s.mu.Unlock()
	s.Emit(EventLayersChanged, id)
}

// AddSlide appends a slide and moves editing to it.
func (s *State) AddSlide(sl *deck.Slide) {
	s.mu.Lock()
	s.history.Push(s.deck)
	s.deck.AddSlide(sl)
	s.slideIndex = len(s.deck.Slides) - 1
	s.selectedLayer = ""
	s.mu.Unlock()

	s.Emit(EventDeckChanged, nil)
	s.Emit(EventSlideChanged, s.SlideIndex())
	s.Emit(EventHistoryChanged, nil)
}

// RemoveSlide deletes the slide at the given index.
func (s *State) RemoveSlide(i int) bool {
	s.mu.Lock()
	if i < 0 || i >= len(s.deck.Slides) {
		s.mu.Unlock()
		return false
	}
	s.history.Push(s.deck)
	s.deck.RemoveSlide(i)
	if s.slideIndex >= len(s.deck.Slides) && s.slideIndex > 0 {
		s.slideIndex--
	}
	s.selectedLayer = ""
	s.mu.Unlock()

	s.Emit(EventDeckChanged, nil)
	s.Emit(EventSlideChanged, s.SlideIndex())
	s.Emit(EventSelectionChanged, "")
	s.Emit(EventHistoryChanged, nil)
	return true
}

// AlignLayers aligns the selected layer, or every interactive layer when
// nothing is selected, against the canvas. One history entry.
func (s *State) AlignLayers(a arrange.Alignment) {
	s.mu.Lock()
	slide := s.deck.Slide(s.slideIndex)
	if slide == nil {
		s.mu.Unlock()
		return
	}
	layers := s.arrangeTargetsLocked(slide)
	if len(layers) == 0 {
		s.mu.Unlock()
		return
	}
	before := s.deck.Clone()
	canvas := theme.GetOrDefault(s.deck.Theme).CanvasSize()
	moved := arrange.Align(layers, a, canvas)
	if moved > 0 {
		s.history.PushSnapshot(before)
	}
	s.mu.Unlock()

	if moved > 0 {
		s.Emit(EventLayersChanged, nil)
		s.Emit(EventHistoryChanged, nil)
	}
}

// DistributeLayers spreads the current slide's interactive layers with
// equal gaps along one axis. One history entry.
func (s *State) DistributeLayers(horizontal bool) {
	s.mu.Lock()
	slide := s.deck.Slide(s.slideIndex)
	if slide == nil {
		s.mu.Unlock()
		return
	}
	var layers []*deck.Layer
	for _, l := range slide.Layers {
		if l.Interactive() {
			layers = append(layers, l)
		}
	}
	before := s.deck.Clone()
	canvas := theme.GetOrDefault(s.deck.Theme).CanvasSize()
	var ok bool
	if horizontal {
		ok = arrange.DistributeHorizontal(layers, canvas)
	} else {
		ok = arrange.DistributeVertical(layers, canvas)
	}
	if ok {
		s.history.PushSnapshot(before)
	}
	s.mu.Unlock()

	if ok {
		s.Emit(EventLayersChanged, nil)
		s.Emit(EventHistoryChanged, nil)
	}
}

func (s *State) arrangeTargetsLocked(slide *deck.Slide) []*deck.Layer {
	if s.selectedLayer != "" {
		if l := slide.Layer(s.selectedLayer); l != nil && l.Interactive() {
			return []*deck.Layer{l}
		}
		return nil
	}
	var out []*deck.Layer
	for _, l := range slide.Layers {
		if l.Interactive() {
			out = append(out, l)
		}
	}
	return out
}

// Show returns the current live-show state.
func (s *State) Show() show.Show {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.show
}

// StartShow begins the show at the slide being edited.
func (s *State) StartShow() {
	s.mu.Lock()
	ok := s.show.Start(s.slideIndex, len(s.deck.Slides))
	sh := s.show
	s.mu.Unlock()
	if ok {
		s.Emit(EventShowChanged, sh)
	}
}

// StopShow ends the show.
func (s *State) StopShow() {
	s.mutateShow(func(sh *show.Show, _ int) bool { return sh.Stop() })
}

// NextSlide advances the show one slide.
func (s *State) NextSlide() {
	s.mutateShow(func(sh *show.Show, n int) bool { return sh.Next(n) })
}

// PrevSlide steps the show back one slide.
func (s *State) PrevSlide() {
	s.mutateShow(func(sh *show.Show, _ int) bool { return sh.Prev() })
}

// GotoSlide jumps the show to the given slide index.
func (s *State) GotoSlide(i int) {
	s.mutateShow(func(sh *show.Show, n int) bool { return sh.Goto(i, n) })
}

// ToggleBlank flips output blanking.
func (s *State) ToggleBlank() {
	s.mutateShow(func(sh *show.Show, _ int) bool { return sh.ToggleBlank() })
}

func (s *State) mutateShow(op func(*show.Show, int) bool) {
	s.mu.Lock()
	ok := op(&s.show, len(s.deck.Slides))
	sh := s.show
	s.mu.Unlock()
	if ok {
		s.Emit(EventShowChanged, sh)
	}
}
