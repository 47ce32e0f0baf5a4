package transform

// Handle identifies one of the eight resize grips around a selected layer.
type Handle int

const (
	HandleNW Handle = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

// Handles lists all eight handles in clockwise order from top-left.
var Handles = []Handle{
	HandleNW, HandleN, HandleNE, HandleE,
	HandleSE, HandleS, HandleSW, HandleW,
}

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleN:
		return "n"
	case HandleNE:
		return "ne"
	case HandleE:
		return "e"
	case HandleSE:
		return "se"
	case HandleS:
		return "s"
	case HandleSW:
		return "sw"
	case HandleW:
		return "w"
	default:
		return "unknown"
	}
}

// ParseHandle maps a handle name ("nw", "e", ...) back to its Handle.
func ParseHandle(s string) (Handle, bool) {
	for _, h := range Handles {
		if h.String() == s {
			return h, true
		}
	}
	return 0, false
}

// IsCorner reports whether the handle sits on a corner rather than an edge.
func (h Handle) IsCorner() bool {
	switch h {
	case HandleNW, HandleNE, HandleSE, HandleSW:
		return true
	}
	return false
}

// Horizontal reports whether the handle moves the left or right edge.
func (h Handle) Horizontal() bool {
	return h.movesLeft() || h.movesRight()
}

// Vertical reports whether the handle moves the top or bottom edge.
func (h Handle) Vertical() bool {
	return h.movesTop() || h.movesBottom()
}

func (h Handle) movesLeft() bool {
	return h == HandleNW || h == HandleSW || h == HandleW
}

func (h Handle) movesRight() bool {
	return h == HandleNE || h == HandleSE || h == HandleE
}

func (h Handle) movesTop() bool {
	return h == HandleNW || h == HandleN || h == HandleNE
}

func (h Handle) movesBottom() bool {
	return h == HandleSE || h == HandleS || h == HandleSW
}
