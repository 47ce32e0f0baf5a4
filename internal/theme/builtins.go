package theme

// DefaultName is the theme applied to new decks.
const DefaultName = "Default Dark"

// DefaultDark is the stock 16:9 dark stage theme.
func DefaultDark() *Theme {
	return &Theme{
		ThemeName:  DefaultName,
		Aspect:     Aspect16x9,
		Background: "#101018",
		TextColor:  "#ffffff",
		Accent:     "#4d8fe0",
	}
}

// Classic is a 4:3 theme for legacy projectors.
func Classic() *Theme {
	return &Theme{
		ThemeName:  "Classic",
		Aspect:     Aspect4x3,
		Background: "#000000",
		TextColor:  "#f5f0dc",
		Accent:     "#b08d2f",
	}
}

// WidescreenStage is a 16:10 theme for stage-display monitors.
func WidescreenStage() *Theme {
	return &Theme{
		ThemeName:  "Widescreen Stage",
		Aspect:     Aspect16x10,
		Background: "#0a0a0a",
		TextColor:  "#e8e8e8",
		Accent:     "#5fb0a0",
	}
}

func init() {
	// Register built-in themes
	Register(DefaultDark())
	Register(Classic())
	Register(WidescreenStage())
}
