// Package colorutil provides shared color utilities for the presenter application.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common UI colors used throughout the application.
var (
	Black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// ParseHex parses a "#rrggbb" or "#rrggbbaa" color string. The leading '#'
// is optional. Alpha defaults to 255 when omitted.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var r, g, b, a uint8
	switch len(h) {
	case 6:
		if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		a = 255
	case 8:
		if _, err := fmt.Sscanf(h, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: want 6 or 8 digits", s)
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// ParseHexOr parses a hex color, falling back to the given color on error.
func ParseHexOr(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// FormatHex renders a color as "#rrggbb" ("#rrggbbaa" when alpha < 255).
func FormatHex(c color.NRGBA) string {
	if c.A < 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithOpacity scales the alpha channel by an opacity factor in [0,1].
func WithOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}
