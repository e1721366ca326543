package crop

import (
	"menubook/pkg/geometry"
)

// Zoom limits for the interactive crop box.
const (
	MinZoom = 1.0
	MaxZoom = 3.0
)

// Selection describes the operator's crop choice independently of the source
// image's pixel dimensions. Aspect is the target width/height ratio of the
// slot being edited; Zoom shrinks the selection relative to the largest
// aspect-locked rectangle that fits the image; CX/CY place the selection
// center in normalized source coordinates (0..1).
type Selection struct {
	Aspect float64
	Zoom   float64
	CX, CY float64
}

// NewSelection returns a centered, fully zoomed-out selection for the given
// target aspect ratio.
func NewSelection(aspect float64) Selection {
	return Selection{Aspect: aspect, Zoom: MinZoom, CX: 0.5, CY: 0.5}
}

// WithZoom returns a copy with zoom clamped to [MinZoom, MaxZoom].
func (s Selection) WithZoom(zoom float64) Selection {
	s.Zoom = geometry.Clamp(zoom, MinZoom, MaxZoom)
	return s
}

// WithCenter returns a copy with the center moved to (cx, cy), each clamped
// to [0, 1]. The pixel-space clamp in PixelRect keeps the selection inside
// the image even at the edges.
func (s Selection) WithCenter(cx, cy float64) Selection {
	s.CX = geometry.Clamp(cx, 0, 1)
	s.CY = geometry.Clamp(cy, 0, 1)
	return s
}

// PixelRect resolves the selection against a source image of naturalW x
// naturalH pixels. The result always lies fully inside the image, and its
// width/height ratio matches Aspect as closely as whole pixels allow: the
// width is derived first, then the height from the aspect, so callers get
// deterministic dimensions for a given selection.
func (s Selection) PixelRect(naturalW, naturalH int) geometry.RectInt {
	if naturalW <= 0 || naturalH <= 0 || s.Aspect <= 0 {
		return geometry.RectInt{}
	}

	zoom := geometry.Clamp(s.Zoom, MinZoom, MaxZoom)
	base := geometry.LargestInscribed(naturalW, naturalH, s.Aspect)

	w := base.Width / zoom
	h := w / s.Aspect

	rect := geometry.Rect{
		X:      s.CX*float64(naturalW) - w/2,
		Y:      s.CY*float64(naturalH) - h/2,
		Width:  w,
		Height: h,
	}.ToInt()

	// Re-derive height from the rounded width so integer rounding cannot
	// drift the output off the slot's aspect ratio.
	rect.Height = int(float64(rect.Width)/s.Aspect + 0.5)
	if rect.Width < 1 {
		rect.Width = 1
	}
	if rect.Height < 1 {
		rect.Height = 1
	}

	return rect.ClampTo(naturalW, naturalH)
}
