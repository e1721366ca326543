// Package dialogs provides modal dialogs for the studio.
package dialogs

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"menubook/internal/banner"
	"menubook/internal/crop"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// CropCallback receives the finished crop. suggestedBg is a hex color
// proposal derived from the cropped region.
type CropCallback func(result *crop.Result, suggestedBg string)

// ShowCrop opens the interactive crop dialog for a source image destined for
// the given slot. The selection is locked to the slot's aspect ratio; the
// operator drags to position and zooms between 1x and 3x. Cancel discards
// everything; Done runs the crop engine off the UI thread and reports
// through cb.
func ShowCrop(parent fyne.Window, src image.Image, slot banner.Slot, cb CropCallback) {
	area := newCropArea(src, slot.Aspect())

	zoom := widget.NewSlider(crop.MinZoom, crop.MaxZoom)
	zoom.Step = 0.1
	zoom.Value = crop.MinZoom
	zoom.OnChanged = func(v float64) {
		area.setZoom(v)
	}

	sizeLabel := widget.NewLabel("")
	area.onChange = func() {
		rect := area.sel.PixelRect(area.natW, area.natH)
		sizeLabel.SetText(fmt.Sprintf("%d x %d px", rect.Width, rect.Height))
	}
	area.onChange()

	content := container.NewBorder(
		nil,
		container.NewBorder(nil, nil, widget.NewLabel("Zoom"), sizeLabel, zoom),
		nil,
		nil,
		area,
	)

	dlg := dialog.NewCustomConfirm("Crop Image", "Done", "Cancel", content,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			sel := area.sel
			go func() {
				rect := sel.PixelRect(area.natW, area.natH)
				result, err := crop.Crop(src, rect)
				if err != nil {
					log.Printf("crop failed: %v", err)
					return
				}
				suggested := crop.SuggestBackground(src, rect)
				cb(result, suggested)
			}()
		}, parent)
	dlg.Resize(fyne.NewSize(720, 560))
	dlg.Show()
}

// cropArea renders the source image with the aspect-locked selection
// rectangle on top. Dragging moves the selection center.
type cropArea struct {
	widget.BaseWidget

	src        image.Image
	natW, natH int
	sel        crop.Selection

	display  *fynecanvas.Image
	overlay  *fynecanvas.Rectangle
	onChange func()
}

func newCropArea(src image.Image, aspect float64) *cropArea {
	bounds := src.Bounds()
	a := &cropArea{
		src:  src,
		natW: bounds.Dx(),
		natH: bounds.Dy(),
		sel:  crop.NewSelection(aspect),
	}
	a.display = fynecanvas.NewImageFromImage(src)
	a.display.FillMode = fynecanvas.ImageFillContain
	a.overlay = fynecanvas.NewRectangle(color.Transparent)
	a.overlay.StrokeColor = color.NRGBA{R: 0xFF, G: 0x4F, B: 0x18, A: 0xFF}
	a.overlay.StrokeWidth = 2
	a.ExtendBaseWidget(a)
	return a
}

func (a *cropArea) setZoom(zoom float64) {
	a.sel = a.sel.WithZoom(zoom)
	a.Refresh()
	if a.onChange != nil {
		a.onChange()
	}
}

// Dragged moves the selection center by the drag delta, converted from
// screen points to normalized source coordinates.
func (a *cropArea) Dragged(ev *fyne.DragEvent) {
	scale := a.displayScale()
	if scale == 0 {
		return
	}
	dx := float64(ev.Dragged.DX) / (scale * float64(a.natW))
	dy := float64(ev.Dragged.DY) / (scale * float64(a.natH))
	a.sel = a.sel.WithCenter(a.sel.CX+dx, a.sel.CY+dy)
	a.Refresh()
	if a.onChange != nil {
		a.onChange()
	}
}

func (a *cropArea) DragEnd() {}

// displayScale returns screen points per source pixel for the letterboxed
// image, or 0 before layout.
func (a *cropArea) displayScale() float64 {
	size := a.Size()
	if size.Width == 0 || size.Height == 0 || a.natW == 0 || a.natH == 0 {
		return 0
	}
	sx := float64(size.Width) / float64(a.natW)
	sy := float64(size.Height) / float64(a.natH)
	if sx < sy {
		return sx
	}
	return sy
}

// CreateRenderer implements fyne.Widget.
func (a *cropArea) CreateRenderer() fyne.WidgetRenderer {
	return &cropAreaRenderer{area: a}
}

type cropAreaRenderer struct {
	area *cropArea
}

func (r *cropAreaRenderer) Layout(size fyne.Size) {
	a := r.area
	a.display.Resize(size)
	a.display.Move(fyne.NewPos(0, 0))
	r.placeOverlay(size)
}

// placeOverlay maps the selection's source-pixel rectangle into the
// letterboxed screen rectangle.
func (r *cropAreaRenderer) placeOverlay(size fyne.Size) {
	a := r.area
	scale := a.displayScale()
	if scale == 0 {
		return
	}

	drawnW := scale * float64(a.natW)
	drawnH := scale * float64(a.natH)
	offX := (float64(size.Width) - drawnW) / 2
	offY := (float64(size.Height) - drawnH) / 2

	rect := a.sel.PixelRect(a.natW, a.natH)
	a.overlay.Move(fyne.NewPos(
		float32(offX+float64(rect.X)*scale),
		float32(offY+float64(rect.Y)*scale),
	))
	a.overlay.Resize(fyne.NewSize(
		float32(float64(rect.Width)*scale),
		float32(float64(rect.Height)*scale),
	))
}

func (r *cropAreaRenderer) MinSize() fyne.Size {
	return fyne.NewSize(560, 400)
}

func (r *cropAreaRenderer) Refresh() {
	r.placeOverlay(r.area.Size())
	fynecanvas.Refresh(r.area)
}

func (r *cropAreaRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.area.display, r.area.overlay}
}

func (r *cropAreaRenderer) Destroy() {}
