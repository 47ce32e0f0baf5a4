// Package show holds the live-show state: whether a presentation is
// running, which slide is on the outputs, and whether the outputs are
// blanked. The state drives remote clients and the editor's status
// readout; rendering to displays is outside this program.
package show

// Show is the presentation output state. JSON tags serve the remote wire.
type Show struct {
	Running    bool `json:"running"`
	SlideIndex int  `json:"slideIndex"`
	Blanked    bool `json:"blanked"`
}

// Start begins the show at the given slide. slideCount bounds the index.
// Returns false if already running or the deck is empty.
func (s *Show) Start(slide, slideCount int) bool {
	if s.Running || slideCount == 0 {
		return false
	}
	s.Running = true
	s.Blanked = false
	s.SlideIndex = clampIndex(slide, slideCount)
	return true
}

// Stop ends the show. Returns false if not running.
func (s *Show) Stop() bool {
	if !s.Running {
		return false
	}
	s.Running = false
	s.Blanked = false
	return true
}

// Next advances to the following slide. The last slide stays put.
func (s *Show) Next(slideCount int) bool {
	if !s.Running || s.SlideIndex >= slideCount-1 {
		return false
	}
	s.SlideIndex++
	return true
}

// Prev steps back one slide. The first slide stays put.
func (s *Show) Prev() bool {
	if !s.Running || s.SlideIndex <= 0 {
		return false
	}
	s.SlideIndex--
	return true
}

// Goto jumps to a slide, clamped to the deck. Returns false when not
// running or the index did not change.
func (s *Show) Goto(index, slideCount int) bool {
	if !s.Running || slideCount == 0 {
		return false
	}
	i := clampIndex(index, slideCount)
	if i == s.SlideIndex {
		return false
	}
	s.SlideIndex = i
	return true
}

// ToggleBlank flips output blanking. Only meaningful while running.
func (s *Show) ToggleBlank() bool {
	if !s.Running {
		return false
	}
	s.Blanked = !s.Blanked
	return true
}

func clampIndex(i, count int) int {
	if i < 0 {
		return 0
	}
	if i > count-1 {
		return count - 1
	}
	return i
}
