package crop

import (
	"image"
	"image/color"

	"menubook/pkg/colorutil"
	"menubook/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

const (
	hueBins    = 36 // 10 degrees per bin
	maxSamples = 20000
)

// SuggestBackground proposes a banner background color from the cropped
// region: the dominant hue of the region's saturated pixels, slightly
// darkened so white text stays readable on top of it. Low-saturation images
// (grayscale photos, white plates on white cloth) fall back to the region's
// mean tone.
func SuggestBackground(img image.Image, rect geometry.RectInt) string {
	bounds := img.Bounds()
	rect = rect.ClampTo(bounds.Dx(), bounds.Dy())
	if rect.Empty() {
		return colorutil.Hex(colorutil.Charcoal)
	}

	// Sample on a grid to bound the work for large crops.
	step := 1
	for (rect.Width/step)*(rect.Height/step) > maxSamples {
		step++
	}

	var hues, sats, vals, weights []float64
	var meanR, meanG, meanB float64
	var n float64

	for y := rect.Y; y < rect.Y+rect.Height; y += step {
		for x := rect.X; x < rect.X+rect.Width; x += step {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			fr := float64(r >> 8)
			fg := float64(g >> 8)
			fb := float64(b >> 8)
			meanR += fr
			meanG += fg
			meanB += fb
			n++

			h, s, v := colorutil.RGBToHSV(fr, fg, fb)
			if s < 0.15 || v < 0.10 {
				continue // too gray or too dark to define a hue
			}
			hues = append(hues, h)
			sats = append(sats, s)
			vals = append(vals, v)
			weights = append(weights, s*v)
		}
	}

	if len(hues) < 16 {
		// Not enough chromatic signal: darken the mean tone instead.
		if n == 0 {
			return colorutil.Hex(colorutil.Charcoal)
		}
		return hexFromRGB(meanR/n*0.6, meanG/n*0.6, meanB/n*0.6)
	}

	// Weighted hue histogram; the peak bin's members define the suggestion.
	hist := make([]float64, hueBins)
	for i, h := range hues {
		bin := int(h/360*hueBins) % hueBins
		hist[bin] += weights[i]
	}
	peak := 0
	for i := range hist {
		if hist[i] > hist[peak] {
			peak = i
		}
	}

	var binHues, binSats, binVals, binW []float64
	for i, h := range hues {
		if int(h/360*hueBins)%hueBins == peak {
			binHues = append(binHues, h)
			binSats = append(binSats, sats[i])
			binVals = append(binVals, vals[i])
			binW = append(binW, weights[i])
		}
	}

	h := stat.Mean(binHues, binW)
	s := stat.Mean(binSats, binW)
	v := stat.Mean(binVals, binW)

	// Darken toward a usable backdrop.
	v *= 0.75
	if v > 0.85 {
		v = 0.85
	}

	r, g, b := colorutil.HSVToRGB(h, s, v)
	return hexFromRGB(r, g, b)
}

func hexFromRGB(r, g, b float64) string {
	clampByte := func(f float64) uint8 {
		if f < 0 {
			return 0
		}
		if f > 255 {
			return 255
		}
		return uint8(f)
	}
	return colorutil.Hex(color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255})
}
