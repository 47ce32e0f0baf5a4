package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PresenterTheme provides a custom theme for the editor.
type PresenterTheme struct{}

var _ fyne.Theme = (*PresenterTheme)(nil)

func (t *PresenterTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x4D, G: 0x8F, B: 0xE0, A: 0xFF} // Stage blue
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x4D, G: 0x8F, B: 0xE0, A: 0x60}
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // Visible gray scrollbar
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *PresenterTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PresenterTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *PresenterTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16 // Wider scrollbar for easier grabbing
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
