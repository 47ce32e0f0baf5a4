// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"worship-presenter/internal/app"
	"worship-presenter/internal/theme"
	"worship-presenter/ui/prefs"
)

// SettingsDialog edits the editor configuration and deck theme.
type SettingsDialog struct {
	state  *app.State
	prefs  *prefs.Prefs
	window fyne.Window

	themeSelect   *widget.Select
	snapCheck     *widget.Check
	gridSizeEntry *widget.Entry
	guidesCheck   *widget.Check
}

// NewSettingsDialog creates the settings dialog.
func NewSettingsDialog(state *app.State, p *prefs.Prefs, window fyne.Window) *SettingsDialog {
	return &SettingsDialog{
		state:  state,
		prefs:  p,
		window: window,
	}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	cfg := d.state.Config()

	d.themeSelect = widget.NewSelect(theme.List(), nil)
	d.themeSelect.SetSelected(d.state.Theme().Name())

	d.snapCheck = widget.NewCheck("Snap to grid", nil)
	d.snapCheck.SetChecked(cfg.SnapToGrid)

	d.gridSizeEntry = widget.NewEntry()
	d.gridSizeEntry.SetText(fmt.Sprintf("%g", cfg.GridSize))

	d.guidesCheck = widget.NewCheck("Show alignment guides", nil)
	d.guidesCheck.SetChecked(cfg.ShowGuides)

	content := widget.NewForm(
		widget.NewFormItem("Theme", d.themeSelect),
		widget.NewFormItem("Snapping", d.snapCheck),
		widget.NewFormItem("Grid size", d.gridSizeEntry),
		widget.NewFormItem("Guides", d.guidesCheck),
	)

	dlg := dialog.NewCustomConfirm(
		"Settings",
		"Apply",
		"Cancel",
		content,
		func(apply bool) {
			if apply {
				d.applyChanges()
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(420, 300))
	dlg.Show()
}

func (d *SettingsDialog) applyChanges() {
	cfg := d.state.Config()
	cfg.SnapToGrid = d.snapCheck.Checked
	cfg.ShowGuides = d.guidesCheck.Checked
	if v, err := strconv.ParseFloat(strings.TrimSpace(d.gridSizeEntry.Text), 64); err == nil && v > 0 {
		cfg.GridSize = v
	}
	d.state.SetConfig(cfg)

	if name := d.themeSelect.Selected; name != "" && name != d.state.Theme().Name() {
		d.state.SetTheme(name)
	}

	d.prefs.SetBool(prefs.KeySnapToGrid, cfg.SnapToGrid)
	d.prefs.SetFloat(prefs.KeyGridSize, cfg.GridSize)
	d.prefs.SetBool(prefs.KeyShowGuides, cfg.ShowGuides)
	if err := d.prefs.Save(); err != nil {
		dialog.ShowError(err, d.window)
	}
}
