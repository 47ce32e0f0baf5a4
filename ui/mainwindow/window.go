// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"worship-presenter/internal/app"
	"worship-presenter/internal/arrange"
	"worship-presenter/internal/deck"
	"worship-presenter/internal/media"
	"worship-presenter/internal/version"
	"worship-presenter/ui/canvas"
	"worship-presenter/ui/dialogs"
	"worship-presenter/ui/panels"
	"worship-presenter/ui/prefs"
)

const deckExt = ".wpdeck"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	state   *app.State
	library *media.Library
	prefs   *prefs.Prefs

	canvas    *canvas.SlideCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	// Path of the currently open deck file, empty for unsaved decks.
	deckPath string
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, library *media.Library, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Worship Presenter")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		state:   state,
		library: library,
		prefs:   p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupKeyHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewSlideCanvas(mw.state)

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.library, mw.prefs)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		mw.canvas,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Deck", mw.onNewDeck),
		fyne.NewMenuItem("Open Deck...", mw.onOpenDeck),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Deck", mw.onSaveDeck),
		fyne.NewMenuItem("Save Deck As...", mw.onSaveDeckAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Layer", mw.onDeleteLayer),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", mw.onSettings),
	)

	insertMenu := fyne.NewMenu("Insert",
		fyne.NewMenuItem("Text Layer", mw.onInsertText),
		fyne.NewMenuItem("Shape Layer", mw.onInsertShape),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Slide", mw.onInsertSlide),
	)

	arrangeMenu := fyne.NewMenu("Arrange",
		fyne.NewMenuItem("Align Left", func() { mw.state.AlignLayers(arrange.AlignLeft) }),
		fyne.NewMenuItem("Align Center", func() { mw.state.AlignLayers(arrange.AlignCenterH) }),
		fyne.NewMenuItem("Align Right", func() { mw.state.AlignLayers(arrange.AlignRight) }),
		fyne.NewMenuItem("Align Top", func() { mw.state.AlignLayers(arrange.AlignTop) }),
		fyne.NewMenuItem("Align Middle", func() { mw.state.AlignLayers(arrange.AlignMiddle) }),
		fyne.NewMenuItem("Align Bottom", func() { mw.state.AlignLayers(arrange.AlignBottom) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Distribute Horizontally", func() { mw.state.DistributeLayers(true) }),
		fyne.NewMenuItem("Distribute Vertically", func() { mw.state.DistributeLayers(false) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Bring Forward", func() { mw.state.ReorderLayer(mw.state.SelectedLayerID(), +1) }),
		fyne.NewMenuItem("Send Backward", func() { mw.state.ReorderLayer(mw.state.SelectedLayerID(), -1) }),
	)

	showMenu := fyne.NewMenu("Show",
		fyne.NewMenuItem("Start Show", func() { mw.state.StartShow() }),
		fyne.NewMenuItem("Stop Show", func() { mw.state.StopShow() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Next Slide", func() { mw.state.NextSlide() }),
		fyne.NewMenuItem("Previous Slide", func() { mw.state.PrevSlide() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Blank Screen", func() { mw.state.ToggleBlank() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, insertMenu, arrangeMenu, showMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventDeckChanged, func(_ interface{}) {
		mw.canvas.Rebuild()
		mw.updateTitle()
	})
	mw.state.On(app.EventSlideChanged, func(_ interface{}) {
		mw.canvas.AbandonGesture()
		mw.canvas.Rebuild()
		mw.updateStatus(fmt.Sprintf("Slide %d of %d",
			mw.state.SlideIndex()+1, len(mw.state.Deck().Slides)))
	})
	mw.state.On(app.EventLayersChanged, func(_ interface{}) {
		mw.canvas.Rebuild()
	})
	mw.state.On(app.EventSelectionChanged, func(_ interface{}) {
		mw.canvas.Refresh()
		if l := mw.state.SelectedLayer(); l != nil {
			mw.updateStatus("Selected: " + l.Name)
		} else {
			mw.updateStatus("Ready")
		}
	})
	mw.state.On(app.EventConfigChanged, func(_ interface{}) {
		mw.canvas.Refresh()
	})
	mw.state.On(app.EventShowChanged, func(_ interface{}) {
		sh := mw.state.Show()
		switch {
		case !sh.Running:
			mw.updateStatus("Show stopped")
		case sh.Blanked:
			mw.updateStatus(fmt.Sprintf("Show: slide %d (blanked)", sh.SlideIndex+1))
		default:
			mw.updateStatus(fmt.Sprintf("Show: slide %d", sh.SlideIndex+1))
		}
	})
}

// setupKeyHandlers wires window-level keyboard input: live Shift/Alt
// tracking for in-flight gestures, plus editing shortcuts.
func (mw *MainWindow) setupKeyHandlers() {
	shift, alt := false, false

	if dc, ok := mw.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			switch ev.Name {
			case desktop.KeyShiftLeft, desktop.KeyShiftRight:
				shift = true
			case desktop.KeyAltLeft, desktop.KeyAltRight:
				alt = true
			}
			mw.canvas.SetModifierState(shift, alt)
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			switch ev.Name {
			case desktop.KeyShiftLeft, desktop.KeyShiftRight:
				shift = false
			case desktop.KeyAltLeft, desktop.KeyAltRight:
				alt = false
			}
			mw.canvas.SetModifierState(shift, alt)
		})
	}

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if mw.canvas.Editing() && ev.Name != fyne.KeyEscape {
			return
		}
		switch ev.Name {
		case fyne.KeyEscape:
			mw.canvas.Deselect()
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.onDeleteLayer()
		case fyne.KeyPageDown:
			mw.state.SetSlideIndex(mw.state.SlideIndex() + 1)
		case fyne.KeyPageUp:
			mw.state.SetSlideIndex(mw.state.SlideIndex() - 1)
		case fyne.KeyRight:
			mw.state.NextSlide()
		case fyne.KeyLeft:
			mw.state.PrevSlide()
		}
	})
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) updateTitle() {
	title := "Worship Presenter - " + mw.state.Deck().Name
	if mw.deckPath != "" {
		title = "Worship Presenter - " + filepath.Base(mw.deckPath)
	}
	mw.SetTitle(title)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastMediaDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// Menu action handlers

func (mw *MainWindow) onNewDeck() {
	mw.deckPath = ""
	mw.state.SetDeck(deck.Sample())
	mw.updateStatus("New deck")
}

func (mw *MainWindow) onOpenDeck() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()

		d, err := deck.Load(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.deckPath = path
		mw.state.SetDeck(d)
		mw.updateStatus("Opened " + filepath.Base(path))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{deckExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveDeck() {
	if mw.deckPath == "" {
		mw.onSaveDeckAs()
		return
	}
	if err := deck.Save(mw.state.DeckSnapshot(), mw.deckPath); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Saved " + filepath.Base(mw.deckPath))
}

func (mw *MainWindow) onSaveDeckAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != deckExt {
			path += deckExt
		}
		if err := deck.Save(mw.state.DeckSnapshot(), path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.deckPath = path
		mw.updateTitle()
		mw.updateStatus("Saved " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("deck" + deckExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	if !mw.state.Undo() {
		mw.updateStatus("Nothing to undo")
	}
}

func (mw *MainWindow) onRedo() {
	if !mw.state.Redo() {
		mw.updateStatus("Nothing to redo")
	}
}

func (mw *MainWindow) onDeleteLayer() {
	mw.canvas.AbandonGesture()
	if !mw.state.RemoveSelectedLayer() {
		mw.updateStatus("No layer selected")
	}
}

func (mw *MainWindow) onInsertText() {
	cv := mw.state.CanvasSize()
	t := deck.Transform{X: cv.Width / 4, Y: cv.Height / 3, Width: cv.Width / 2, Height: cv.Height / 6, Opacity: 1}
	mw.state.AddLayer(deck.NewTextLayer(mw.newLayerName("Text"), "New text", t))
}

func (mw *MainWindow) onInsertShape() {
	cv := mw.state.CanvasSize()
	t := deck.Transform{X: cv.Width / 3, Y: cv.Height / 3, Width: cv.Width / 3, Height: cv.Height / 3, Opacity: 1}
	mw.state.AddLayer(deck.NewShapeLayer(mw.newLayerName("Shape"), "#3a6ea5", t))
}

func (mw *MainWindow) onInsertSlide() {
	mw.state.AddSlide(deck.NewSlide(fmt.Sprintf("Slide %d", len(mw.state.Deck().Slides)+1)))
}

func (mw *MainWindow) newLayerName(base string) string {
	s := mw.state.CurrentSlide()
	if s == nil {
		return base
	}
	return fmt.Sprintf("%s %d", base, len(s.Layers)+1)
}

func (mw *MainWindow) onSettings() {
	dialogs.NewSettingsDialog(mw.state, mw.prefs, mw.Window).Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Worship Presenter",
		fmt.Sprintf("Worship Presenter v%s\n\n"+
			"A slide editor for worship services.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
