package panels

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"worship-presenter/internal/app"
	"worship-presenter/internal/deck"
	"worship-presenter/internal/media"
	"worship-presenter/ui/prefs"
)

// MediaPanel lists the media library and places entries on the current
// slide as media layers.
type MediaPanel struct {
	state   *app.State
	library *media.Library
	prefs   *prefs.Prefs
	window  fyne.Window

	container fyne.CanvasObject
	list      *widget.List
	status    *widget.Label

	selected int
}

// NewMediaPanel creates the media panel.
func NewMediaPanel(state *app.State, library *media.Library, p *prefs.Prefs) *MediaPanel {
	mp := &MediaPanel{
		state:    state,
		library:  library,
		prefs:    p,
		selected: -1,
	}

	mp.status = widget.NewLabel("")
	mp.status.Wrapping = fyne.TextWrapWord

	mp.list = widget.NewList(
		func() int {
			return len(library.List())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("entry")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			entries := library.List()
			if i < 0 || i >= len(entries) {
				return
			}
			o.(*widget.Label).SetText(mediaListText(entries[i]))
		},
	)
	mp.list.OnSelected = func(i widget.ListItemID) {
		mp.selected = i
	}
	mp.list.OnUnselected = func(_ widget.ListItemID) {
		mp.selected = -1
	}

	importButton := widget.NewButton("Import...", func() { mp.showImportDialog() })
	placeButton := widget.NewButton("Add to Slide", func() { mp.placeSelected() })
	removeButton := widget.NewButton("Remove", func() { mp.removeSelected() })

	mp.container = container.NewBorder(
		nil,
		container.NewVBox(
			container.NewGridWithColumns(3, importButton, placeButton, removeButton),
			mp.status,
		),
		nil, nil,
		mp.list,
	)
	return mp
}

// Container returns the panel container.
func (mp *MediaPanel) Container() fyne.CanvasObject {
	return mp.container
}

// SetWindow sets the parent window for dialogs.
func (mp *MediaPanel) SetWindow(w fyne.Window) {
	mp.window = w
}

func (mp *MediaPanel) showImportDialog() {
	if mp.window == nil {
		return
	}
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()

		info, err := mp.library.Import(path)
		if err != nil {
			mp.status.SetText(fmt.Sprintf("Import failed: %v", err))
			return
		}
		mp.prefs.SetString(prefs.KeyLastMediaDir, filepath.Dir(path))
		mp.status.SetText(fmt.Sprintf("Imported %s (%s)", info.Name, info.Kind))
		mp.list.Refresh()
	}, mp.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{
		".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".svg",
		".mp4", ".webm", ".mov", ".mp3", ".wav", ".ogg",
	}))
	if dir := mp.prefs.String(prefs.KeyLastMediaDir); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// placeSelected adds the selected entry to the current slide, sized to
// half the canvas width with the media's own aspect when known.
func (mp *MediaPanel) placeSelected() {
	info := mp.selectedInfo()
	if info == nil {
		return
	}
	cv := mp.state.CanvasSize()

	w := cv.Width / 2
	h := cv.Height / 2
	if info.Width > 0 && info.Height > 0 {
		h = w * float64(info.Height) / float64(info.Width)
		if h > cv.Height {
			h = cv.Height / 2
			w = h * float64(info.Width) / float64(info.Height)
		}
	}

	t := deck.Transform{
		X:       (cv.Width - w) / 2,
		Y:       (cv.Height - h) / 2,
		Width:   w,
		Height:  h,
		Opacity: 1,
	}
	mp.state.AddLayer(deck.NewMediaLayer(info.Name, info.ID, t))
}

func (mp *MediaPanel) removeSelected() {
	info := mp.selectedInfo()
	if info == nil {
		return
	}
	if mp.library.Remove(info.ID) {
		mp.selected = -1
		mp.list.UnselectAll()
		mp.list.Refresh()
		mp.status.SetText(fmt.Sprintf("Removed %s", info.Name))
	}
}

func (mp *MediaPanel) selectedInfo() *media.Info {
	entries := mp.library.List()
	if mp.selected < 0 || mp.selected >= len(entries) {
		return nil
	}
	return entries[mp.selected]
}

func mediaListText(info *media.Info) string {
	if info.Width > 0 && info.Height > 0 {
		return fmt.Sprintf("%s (%s, %dx%d)", info.Name, info.Kind, info.Width, info.Height)
	}
	return fmt.Sprintf("%s (%s)", info.Name, info.Kind)
}
