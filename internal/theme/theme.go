// Package theme provides presentation theme definitions and management.
package theme

import (
	"fmt"
	"sort"

	"worship-presenter/pkg/geometry"
)

// AspectRatio identifies the canvas proportions a theme targets.
type AspectRatio string

const (
	Aspect16x9  AspectRatio = "16:9"
	Aspect4x3   AspectRatio = "4:3"
	Aspect16x10 AspectRatio = "16:10"
)

// CanvasSize returns the fixed logical resolution for the aspect ratio.
// Unknown ratios fall back to 16:9.
func (a AspectRatio) CanvasSize() geometry.Size {
	switch a {
	case Aspect4x3:
		return geometry.Size{Width: 1440, Height: 1080}
	case Aspect16x10:
		return geometry.Size{Width: 1920, Height: 1200}
	default:
		return geometry.Size{Width: 1920, Height: 1080}
	}
}

// Theme describes the look of a deck: canvas proportions plus default colors
// applied to new slides and layers.
type Theme struct {
	ThemeName  string      `json:"name"`
	Aspect     AspectRatio `json:"aspect"`
	Background string      `json:"background"`
	TextColor  string      `json:"textColor"`
	Accent     string      `json:"accent"`
}

// Name returns the registry name of the theme.
func (t *Theme) Name() string {
	return t.ThemeName
}

// CanvasSize returns the slide canvas resolution for the theme.
func (t *Theme) CanvasSize() geometry.Size {
	return t.Aspect.CanvasSize()
}

// Validate checks the theme for required fields.
func (t *Theme) Validate() error {
	if t.ThemeName == "" {
		return fmt.Errorf("theme name is required")
	}
	switch t.Aspect {
	case Aspect16x9, Aspect4x3, Aspect16x10:
	default:
		return fmt.Errorf("unknown aspect ratio %q", t.Aspect)
	}
	return nil
}

// Registry of known themes
var registry = make(map[string]*Theme)

// Register adds a theme to the registry.
func Register(t *Theme) {
	registry[t.Name()] = t
}

// Get returns a theme by name, or nil.
func Get(name string) *Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return nil
}

// GetOrDefault returns the named theme, falling back to the default theme.
func GetOrDefault(name string) *Theme {
	if t := Get(name); t != nil {
		return t
	}
	return Get(DefaultName)
}

// List returns all registered theme names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
