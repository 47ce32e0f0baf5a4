// Package history provides undo/redo for deck edits. Each entry is a full
// deck snapshot; the host pushes one entry per completed gesture or
// discrete edit, at the moment the edit begins.
package history

import "worship-presenter/internal/deck"

// DefaultLimit bounds the undo stack. The oldest snapshot is dropped when
// the limit is exceeded.
const DefaultLimit = 100

// Stack holds undo and redo snapshots. Not safe for concurrent use; the
// owning state serializes access.
type Stack struct {
	limit int
	undo  []*deck.Deck
	redo  []*deck.Deck
}

// NewStack creates a stack bounded to limit snapshots. A non-positive
// limit uses DefaultLimit.
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push records the deck as it is before an edit, clearing any redo
// history.
func (s *Stack) Push(d *deck.Deck) {
	s.PushSnapshot(d.Clone())
}

// PushSnapshot records an already-cloned snapshot. For edits that can fail
// without changing the deck: clone first, apply, push only on success, so a
// failed edit leaves no empty undo entry.
func (s *Stack) PushSnapshot(d *deck.Deck) {
	s.undo = append(s.undo, d)
	if len(s.undo) > s.limit {
		s.undo = s.undo[1:]
	}
	s.redo = nil
}

// Undo trades the current deck for the most recent snapshot. Returns nil
// and false when there is nothing to undo.
func (s *Stack) Undo(current *deck.Deck) (*deck.Deck, bool) {
	if len(s.undo) == 0 {
		return nil, false
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, current.Clone())
	return last, true
}

// Redo re-applies the most recently undone snapshot. Returns nil and false
// when there is nothing to redo.
func (s *Stack) Redo(current *deck.Deck) (*deck.Deck, bool) {
	if len(s.redo) == 0 {
		return nil, false
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, current.Clone())
	return last, true
}

// CanUndo reports whether an undo snapshot is available.
func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether a redo snapshot is available.
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// Clear drops all snapshots, for example when a new deck is opened.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}
