// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"worship-presenter/internal/app"
	"worship-presenter/internal/deck"
	"worship-presenter/internal/media"
	"worship-presenter/ui/prefs"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	slidesPanel *SlidesPanel
	layersPanel *LayersPanel
	properties  *PropertySheet
	mediaPanel  *MediaPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, library *media.Library, p *prefs.Prefs) *SidePanel {
	sp := &SidePanel{state: state}

	sp.slidesPanel = NewSlidesPanel(state)
	sp.layersPanel = NewLayersPanel(state)
	sp.properties = NewPropertySheet(state)
	sp.mediaPanel = NewMediaPanel(state, library, p)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Slides", sp.slidesPanel.Container()),
		container.NewTabItem("Layers", sp.layersPanel.Container()),
		container.NewTabItem("Properties", sp.properties.Container()),
		container.NewTabItem("Media", sp.mediaPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.mediaPanel.SetWindow(w)
}

// SlidesPanel lists the deck's slides and manages the slide cursor.
type SlidesPanel struct {
	state     *app.State
	container fyne.CanvasObject

	list       *widget.List
	countLabel *widget.Label
}

// NewSlidesPanel creates the slides panel.
func NewSlidesPanel(state *app.State) *SlidesPanel {
	p := &SlidesPanel{state: state}

	p.countLabel = widget.NewLabel("")

	p.list = widget.NewList(
		func() int {
			return len(state.Deck().Slides)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("slide")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			s := state.Deck().Slide(i)
			if s == nil {
				return
			}
			o.(*widget.Label).SetText(fmt.Sprintf("%d. %s (%d layers)", i+1, s.Name, len(s.Layers)))
		},
	)
	p.list.OnSelected = func(i widget.ListItemID) {
		state.SetSlideIndex(i)
	}

	addButton := widget.NewButton("Add Slide", func() {
		n := len(state.Deck().Slides) + 1
		state.AddSlide(deck.NewSlide(fmt.Sprintf("Slide %d", n)))
	})
	removeButton := widget.NewButton("Remove Slide", func() {
		state.RemoveSlide(state.SlideIndex())
	})

	state.On(app.EventDeckChanged, func(_ interface{}) { p.refresh() })
	state.On(app.EventSlideChanged, func(_ interface{}) { p.refresh() })
	state.On(app.EventLayersChanged, func(_ interface{}) { p.list.Refresh() })

	p.container = container.NewBorder(
		p.countLabel,
		container.NewGridWithColumns(2, addButton, removeButton),
		nil, nil,
		p.list,
	)
	p.refresh()
	return p
}

// Container returns the panel container.
func (p *SlidesPanel) Container() fyne.CanvasObject {
	return p.container
}

func (p *SlidesPanel) refresh() {
	d := p.state.Deck()
	p.countLabel.SetText(fmt.Sprintf("%s: %d slides", d.Name, len(d.Slides)))
	p.list.Refresh()
	if i := p.state.SlideIndex(); i >= 0 && i < len(d.Slides) {
		p.list.Select(i)
	}
}

// LayersPanel lists the current slide's layer stack, topmost first, and
// manages stacking order, locking, and visibility.
type LayersPanel struct {
	state     *app.State
	container fyne.CanvasObject

	list *widget.List
}

// NewLayersPanel creates the layers panel.
func NewLayersPanel(state *app.State) *LayersPanel {
	p := &LayersPanel{state: state}

	p.list = widget.NewList(
		func() int {
			s := state.CurrentSlide()
			if s == nil {
				return 0
			}
			return len(s.Layers)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("layer")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			l := p.layerAt(i)
			if l == nil {
				return
			}
			o.(*widget.Label).SetText(layerListText(l))
		},
	)
	p.list.OnSelected = func(i widget.ListItemID) {
		if l := p.layerAt(i); l != nil {
			state.SelectLayer(l.ID)
		}
	}

	addText := widget.NewButton("Text", func() {
		cv := state.CanvasSize()
		t := deck.Transform{X: cv.Width / 4, Y: cv.Height / 3, Width: cv.Width / 2, Height: cv.Height / 6, Opacity: 1}
		state.AddLayer(deck.NewTextLayer(nextLayerName(state, "Text"), "New text", t))
	})
	addShape := widget.NewButton("Shape", func() {
		cv := state.CanvasSize()
		t := deck.Transform{X: cv.Width / 3, Y: cv.Height / 3, Width: cv.Width / 3, Height: cv.Height / 3, Opacity: 1}
		state.AddLayer(deck.NewShapeLayer(nextLayerName(state, "Shape"), "#3a6ea5", t))
	})
	remove := widget.NewButton("Delete", func() {
		state.RemoveSelectedLayer()
	})

	raise := widget.NewButton("Raise", func() {
		state.ReorderLayer(state.SelectedLayerID(), +1)
	})
	lower := widget.NewButton("Lower", func() {
		state.ReorderLayer(state.SelectedLayerID(), -1)
	})
	lock := widget.NewButton("Lock", func() {
		if l := state.SelectedLayer(); l != nil {
			state.SetLayerLocked(l.ID, !l.Locked)
		}
	})
	hide := widget.NewButton("Hide", func() {
		if l := state.SelectedLayer(); l != nil {
			state.SetLayerVisible(l.ID, !l.Visible)
		}
	})

	state.On(app.EventSlideChanged, func(_ interface{}) { p.refresh() })
	state.On(app.EventDeckChanged, func(_ interface{}) { p.refresh() })
	state.On(app.EventLayersChanged, func(_ interface{}) { p.list.Refresh() })
	state.On(app.EventSelectionChanged, func(_ interface{}) { p.syncSelection() })

	p.container = container.NewBorder(
		nil,
		container.NewVBox(
			container.NewGridWithColumns(3, addText, addShape, remove),
			container.NewGridWithColumns(4, raise, lower, lock, hide),
		),
		nil, nil,
		p.list,
	)
	return p
}

// Container returns the panel container.
func (p *LayersPanel) Container() fyne.CanvasObject {
	return p.container
}

// layerAt maps a list row to a layer, topmost first.
func (p *LayersPanel) layerAt(i int) *deck.Layer {
	s := p.state.CurrentSlide()
	if s == nil || i < 0 || i >= len(s.Layers) {
		return nil
	}
	return s.Layers[len(s.Layers)-1-i]
}

func (p *LayersPanel) refresh() {
	p.list.UnselectAll()
	p.list.Refresh()
	p.syncSelection()
}

func (p *LayersPanel) syncSelection() {
	s := p.state.CurrentSlide()
	id := p.state.SelectedLayerID()
	if s == nil || id == "" {
		p.list.UnselectAll()
		return
	}
	i := s.IndexOf(id)
	if i < 0 {
		p.list.UnselectAll()
		return
	}
	p.list.Select(len(s.Layers) - 1 - i)
}

func layerListText(l *deck.Layer) string {
	text := fmt.Sprintf("%s [%s]", l.Name, l.Kind)
	if l.Locked {
		text += " locked"
	}
	if !l.Visible {
		text += " hidden"
	}
	return text
}

// nextLayerName returns "<base> N" with N one past the layer count, so
// new layers get distinct readable names.
func nextLayerName(state *app.State, base string) string {
	s := state.CurrentSlide()
	if s == nil {
		return base
	}
	return fmt.Sprintf("%s %d", base, len(s.Layers)+1)
}
