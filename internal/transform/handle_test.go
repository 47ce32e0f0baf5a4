package transform

import "testing"

func TestHandle_StringRoundTrip(t *testing.T) {
	for _, h := range Handles {
		got, ok := ParseHandle(h.String())
		if !ok || got != h {
			t.Errorf("ParseHandle(%q) = %v, %v; want %v, true", h.String(), got, ok, h)
		}
	}
	if _, ok := ParseHandle("center"); ok {
		t.Error("ParseHandle accepted an unknown name")
	}
}

func TestHandle_Corners(t *testing.T) {
	corners := map[Handle]bool{
		HandleNW: true, HandleNE: true, HandleSE: true, HandleSW: true,
		HandleN: false, HandleE: false, HandleS: false, HandleW: false,
	}
	for h, want := range corners {
		if got := h.IsCorner(); got != want {
			t.Errorf("%v.IsCorner() = %v, want %v", h, got, want)
		}
	}
}

func TestHandle_EdgeAxes(t *testing.T) {
	if !HandleE.Horizontal() || HandleE.Vertical() {
		t.Error("e must be horizontal only")
	}
	if !HandleN.Vertical() || HandleN.Horizontal() {
		t.Error("n must be vertical only")
	}
	if !HandleNW.Horizontal() || !HandleNW.Vertical() {
		t.Error("nw must move both axes")
	}
}
