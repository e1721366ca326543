// Package colorutil provides shared color utilities for the menu book application.
package colorutil

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Brand colors used throughout the application.
var (
	Accent   = color.RGBA{R: 0xFF, G: 0x4F, B: 0x18, A: 0xFF} // Order-now orange
	Charcoal = color.RGBA{R: 0x11, G: 0x13, B: 0x18, A: 0xFF}
	White    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ParseHex parses a "#RRGGBB" or "RRGGBB" hex color string.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats a color as "#RRGGBB", discarding alpha.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGBToHSV converts RGB (0-255) to HSV (H 0-360, S 0-1, V 0-1).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC

	if maxC == 0 {
		s = 0
	} else {
		s = diff / maxC
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	return h, s, v
}

// HSVToRGB converts HSV (H 0-360, S 0-1, V 0-1) back to RGB (0-255).
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	c := v * s
	hp := math.Mod(h, 360) / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := v - c
	return (r + m) * 255, (g + m) * 255, (b + m) * 255
}
