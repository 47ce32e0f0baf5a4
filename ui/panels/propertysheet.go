package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"worship-presenter/internal/app"
	"worship-presenter/internal/deck"
	"worship-presenter/pkg/colorutil"
	"worship-presenter/pkg/geometry"
)

// PropertySheet displays and edits the selected layer's properties.
// Numeric fields commit on submit, each as a single-field patch through
// the same commit path gestures use.
type PropertySheet struct {
	state     *app.State
	container fyne.CanvasObject

	header *widget.Label

	nameEntry    *widget.Entry
	xEntry       *widget.Entry
	yEntry       *widget.Entry
	widthEntry   *widget.Entry
	heightEntry  *widget.Entry
	rotEntry     *widget.Entry
	opacityEntry *widget.Entry
	fillEntry    *widget.Entry
	lockedCheck  *widget.Check
	visibleCheck *widget.Check

	// Guards against the refresh-triggered change callbacks looping
	// back into the state.
	refreshing bool
}

// NewPropertySheet creates the property sheet panel.
func NewPropertySheet(state *app.State) *PropertySheet {
	ps := &PropertySheet{state: state}

	ps.header = widget.NewLabel("No layer selected")
	ps.header.TextStyle = fyne.TextStyle{Bold: true}

	ps.nameEntry = widget.NewEntry()
	ps.nameEntry.OnSubmitted = func(s string) {
		if s == "" {
			ps.refresh()
			return
		}
		ps.updateSelected(func(l *deck.Layer) { l.Name = s })
	}

	ps.xEntry = ps.numericEntry(func(v float64) deck.Patch { return deck.Patch{X: deck.Float64(v)} })
	ps.yEntry = ps.numericEntry(func(v float64) deck.Patch { return deck.Patch{Y: deck.Float64(v)} })
	ps.widthEntry = ps.numericEntry(func(v float64) deck.Patch {
		return deck.Patch{Width: deck.Float64(maxFloat(v, deck.MinLayerSize))}
	})
	ps.heightEntry = ps.numericEntry(func(v float64) deck.Patch {
		return deck.Patch{Height: deck.Float64(maxFloat(v, deck.MinLayerSize))}
	})
	ps.rotEntry = ps.numericEntry(func(v float64) deck.Patch {
		return deck.Patch{Rotation: deck.Float64(geometry.NormalizeDegrees(v))}
	})
	ps.opacityEntry = ps.numericEntry(func(v float64) deck.Patch {
		return deck.Patch{Opacity: deck.Float64(clamp01(v))}
	})

	ps.fillEntry = widget.NewEntry()
	ps.fillEntry.OnSubmitted = func(s string) {
		if _, err := colorutil.ParseHex(s); err != nil {
			ps.refresh()
			return
		}
		ps.updateSelected(func(l *deck.Layer) { l.Fill = s })
	}

	ps.lockedCheck = widget.NewCheck("Locked", func(on bool) {
		if ps.refreshing {
			return
		}
		if l := state.SelectedLayer(); l != nil {
			state.SetLayerLocked(l.ID, on)
		}
	})
	ps.visibleCheck = widget.NewCheck("Visible", func(on bool) {
		if ps.refreshing {
			return
		}
		if l := state.SelectedLayer(); l != nil {
			state.SetLayerVisible(l.ID, on)
		}
	})

	form := widget.NewForm(
		widget.NewFormItem("Name", ps.nameEntry),
		widget.NewFormItem("X", ps.xEntry),
		widget.NewFormItem("Y", ps.yEntry),
		widget.NewFormItem("Width", ps.widthEntry),
		widget.NewFormItem("Height", ps.heightEntry),
		widget.NewFormItem("Rotation", ps.rotEntry),
		widget.NewFormItem("Opacity", ps.opacityEntry),
		widget.NewFormItem("Fill", ps.fillEntry),
	)

	state.On(app.EventSelectionChanged, func(_ interface{}) { ps.refresh() })
	state.On(app.EventLayersChanged, func(_ interface{}) { ps.refresh() })
	state.On(app.EventSlideChanged, func(_ interface{}) { ps.refresh() })

	ps.container = container.NewVScroll(container.NewVBox(
		ps.header,
		form,
		container.NewHBox(ps.lockedCheck, ps.visibleCheck),
	))
	ps.refresh()
	return ps
}

// Container returns the panel container.
func (ps *PropertySheet) Container() fyne.CanvasObject {
	return ps.container
}

// numericEntry builds an entry that parses on submit and commits the
// resulting patch with an undo snapshot, reverting the field on bad input.
func (ps *PropertySheet) numericEntry(patch func(float64) deck.Patch) *widget.Entry {
	e := widget.NewEntry()
	e.OnSubmitted = func(s string) {
		l := ps.state.SelectedLayer()
		if l == nil {
			return
		}
		v, ok := parseFloat(s)
		if !ok {
			ps.refresh()
			return
		}
		ps.state.BeginGesture(l.ID)
		ps.state.ApplyPatch(l.ID, patch(v))
	}
	return e
}

func (ps *PropertySheet) updateSelected(edit func(*deck.Layer)) {
	l := ps.state.SelectedLayer()
	if l == nil {
		return
	}
	ps.state.UpdateLayer(l.ID, edit)
}

func (ps *PropertySheet) refresh() {
	ps.refreshing = true
	defer func() { ps.refreshing = false }()

	l := ps.state.SelectedLayer()
	if l == nil {
		ps.header.SetText("No layer selected")
		for _, e := range []*widget.Entry{
			ps.nameEntry, ps.xEntry, ps.yEntry, ps.widthEntry,
			ps.heightEntry, ps.rotEntry, ps.opacityEntry, ps.fillEntry,
		} {
			e.SetText("")
			e.Disable()
		}
		ps.lockedCheck.Disable()
		ps.visibleCheck.Disable()
		return
	}

	ps.header.SetText(fmt.Sprintf("%s (%s)", l.Name, l.Kind))

	t := l.Transform
	ps.nameEntry.SetText(l.Name)
	ps.xEntry.SetText(formatFloat(t.X))
	ps.yEntry.SetText(formatFloat(t.Y))
	ps.widthEntry.SetText(formatFloat(t.Width))
	ps.heightEntry.SetText(formatFloat(t.Height))
	ps.rotEntry.SetText(formatFloat(t.Rotation))
	ps.opacityEntry.SetText(formatFloat(t.Opacity))
	ps.fillEntry.SetText(l.Fill)
	for _, e := range []*widget.Entry{
		ps.nameEntry, ps.xEntry, ps.yEntry, ps.widthEntry,
		ps.heightEntry, ps.rotEntry, ps.opacityEntry, ps.fillEntry,
	} {
		e.Enable()
	}
	ps.lockedCheck.Enable()
	ps.lockedCheck.SetChecked(l.Locked)
	ps.visibleCheck.Enable()
	ps.visibleCheck.SetChecked(l.Visible)
}
