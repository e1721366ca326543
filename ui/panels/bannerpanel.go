// Package panels provides UI panels for the studio window.
package panels

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"menubook/internal/app"
	"menubook/internal/banner"
	"menubook/internal/crop"
	"menubook/internal/menu"
	"menubook/ui/dialogs"
	"menubook/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// imageExtensions accepted by the file pickers.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".tiff", ".tif", ".webp"}

// slotEditor is the form block for one banner slot.
type slotEditor struct {
	slot     banner.Slot
	title    *widget.Entry
	subtitle *widget.Entry
	price    *widget.Entry // nil except for sideTop
	bgColor  *widget.Entry
	preview  *fynecanvas.Image
}

// BannerPanel is the banner editing surface: a restaurant selector, three
// slot forms with live previews, and the atomic save action.
type BannerPanel struct {
	state     *app.State
	window    fyne.Window
	prefs     *prefs.Prefs
	container fyne.CanvasObject

	selector  *widget.Select
	slugByIdx map[string]string // display name -> slug

	editors map[banner.Slot]*slotEditor

	saveBtn   *widget.Button
	reloadBtn *widget.Button
	status    *widget.Label
}

// NewBannerPanel creates the banner editor panel.
func NewBannerPanel(state *app.State, window fyne.Window, p *prefs.Prefs) *BannerPanel {
	bp := &BannerPanel{
		state:     state,
		window:    window,
		prefs:     p,
		slugByIdx: make(map[string]string),
		editors:   make(map[banner.Slot]*slotEditor),
	}

	bp.selector = widget.NewSelect(nil, bp.onRestaurantSelected)
	bp.selector.PlaceHolder = "-- Select a Restaurant --"

	sections := []fyne.CanvasObject{
		container.NewBorder(nil, nil, widget.NewLabel("Restaurant"), nil, bp.selector),
	}
	titles := map[banner.Slot]string{
		banner.SlotMain:       "Main Banner",
		banner.SlotSideTop:    "Top Side Card",
		banner.SlotSideBottom: "Bottom Side Card",
	}
	for _, slot := range banner.Slots {
		ed := bp.newSlotEditor(slot)
		bp.editors[slot] = ed
		sections = append(sections, widget.NewCard(titles[slot], "", bp.slotForm(ed)))
	}

	bp.status = widget.NewLabel("")
	bp.status.Wrapping = fyne.TextWrapWord

	bp.saveBtn = widget.NewButton("Save Updates", bp.onSave)
	bp.saveBtn.Importance = widget.HighImportance
	bp.saveBtn.Disable()

	bp.reloadBtn = widget.NewButton("Reload From Server", bp.onReload)
	bp.reloadBtn.Hide()

	sections = append(sections, bp.saveBtn, bp.reloadBtn, bp.status)
	bp.container = container.NewVScroll(container.NewVBox(sections...))

	bp.wireEvents()
	return bp
}

// Container returns the panel's root object.
func (bp *BannerPanel) Container() fyne.CanvasObject {
	return bp.container
}

func (bp *BannerPanel) newSlotEditor(slot banner.Slot) *slotEditor {
	ed := &slotEditor{slot: slot}

	ed.title = widget.NewEntry()
	if slot == banner.SlotMain {
		ed.title.MultiLine = true
	}
	ed.subtitle = widget.NewEntry()
	if slot.HasField(banner.FieldPrice) {
		ed.price = widget.NewEntry()
		ed.price.SetPlaceHolder("$0.00")
	}
	ed.bgColor = widget.NewEntry()
	ed.bgColor.SetPlaceHolder("#RRGGBB")

	ed.preview = fynecanvas.NewImageFromImage(nil)
	ed.preview.FillMode = fynecanvas.ImageFillContain
	ed.preview.SetMinSize(fyne.NewSize(220, 124))

	ed.title.OnChanged = bp.fieldSetter(slot, banner.FieldTitle)
	ed.subtitle.OnChanged = bp.fieldSetter(slot, banner.FieldSubtitle)
	if ed.price != nil {
		ed.price.OnChanged = bp.fieldSetter(slot, banner.FieldPrice)
	}
	ed.bgColor.OnChanged = bp.fieldSetter(slot, banner.FieldBgColor)

	return ed
}

func (bp *BannerPanel) slotForm(ed *slotEditor) fyne.CanvasObject {
	items := []*widget.FormItem{
		widget.NewFormItem("Title", ed.title),
		widget.NewFormItem("Subtitle", ed.subtitle),
	}
	if ed.price != nil {
		items = append(items, widget.NewFormItem("Price", ed.price))
	}
	items = append(items, widget.NewFormItem("Background", ed.bgColor))

	uploadBtn := widget.NewButton("Upload Image...", func() {
		bp.pickImage(ed.slot)
	})

	form := widget.NewForm(items...)
	return container.NewBorder(nil, uploadBtn, nil, ed.preview, form)
}

// fieldSetter routes an entry change into the draft.
func (bp *BannerPanel) fieldSetter(slot banner.Slot, field banner.Field) func(string) {
	return func(value string) {
		if err := bp.state.Draft.SetField(slot, field, value); err != nil {
			log.Printf("set %s.%s: %v", slot, field, err)
		}
	}
}

// wireEvents subscribes to state changes.
func (bp *BannerPanel) wireEvents() {
	bp.state.On(app.EventRestaurantListLoaded, func(data interface{}) {
		list, ok := data.([]menu.ListItem)
		if !ok {
			return
		}
		options := make([]string, 0, len(list))
		bp.slugByIdx = make(map[string]string, len(list))
		for _, item := range list {
			options = append(options, item.Name)
			bp.slugByIdx[item.Name] = item.Slug
		}
		bp.selector.Options = options
		bp.selector.Refresh()
	})

	bp.state.On(app.EventRestaurantLoaded, func(data interface{}) {
		if _, ok := data.(*menu.Record); !ok {
			return
		}
		bp.refreshFromDraft()
		bp.saveBtn.Enable()
		bp.reloadBtn.Hide()
		bp.status.SetText("")
	})

	bp.state.On(app.EventSaveSucceeded, func(interface{}) {
		bp.saveBtn.Enable()
		bp.status.SetText("Banners updated successfully.")
	})

	bp.state.On(app.EventSaveFailed, func(data interface{}) {
		bp.saveBtn.Enable()
		bp.reloadBtn.Show()
		bp.status.SetText(fmt.Sprintf("Failed to update banners: %v. "+
			"Your edits are kept; reload from server before the next save to verify state.", data))
	})
}

// onRestaurantSelected fetches the chosen restaurant's record.
func (bp *BannerPanel) onRestaurantSelected(name string) {
	slug, ok := bp.slugByIdx[name]
	if !ok {
		return
	}
	bp.status.SetText("Loading...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := bp.state.SelectRestaurant(ctx, slug); err != nil {
			bp.status.SetText(fmt.Sprintf("Failed to load %s: %v", name, err))
		}
	}()
}

// refreshFromDraft repopulates every form field and preview from the draft.
func (bp *BannerPanel) refreshFromDraft() {
	for slot, ed := range bp.editors {
		fields := bp.state.Draft.Fields(slot)
		ed.title.SetText(fields.Title)
		ed.subtitle.SetText(fields.Subtitle)
		if ed.price != nil {
			ed.price.SetText(fields.Price)
		}
		ed.bgColor.SetText(fields.BgColor)
		bp.refreshPreview(slot)
	}
}

// refreshPreview shows the slot's pending preview blob if one exists,
// otherwise fetches the remote image.
func (bp *BannerPanel) refreshPreview(slot banner.Slot) {
	ed := bp.editors[slot]
	blob, remote := bp.state.Draft.DisplayImage(slot)

	if blob != nil {
		img, err := crop.Decode(bytes.NewReader(blob))
		if err != nil {
			log.Printf("preview decode %s: %v", slot, err)
			return
		}
		ed.preview.Image = img
		ed.preview.Refresh()
		return
	}

	if remote == "" {
		ed.preview.Image = nil
		ed.preview.Refresh()
		return
	}

	subject := bp.state.Draft.Subject()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		data, err := bp.state.Client().FetchImage(ctx, remote)
		if err != nil {
			log.Printf("banner image fetch %s: %v", slot, err)
			return
		}
		img, err := crop.Decode(bytes.NewReader(data))
		if err != nil {
			log.Printf("banner image decode %s: %v", slot, err)
			return
		}
		if bp.state.Draft.Subject() != subject {
			return // switched restaurants while fetching
		}
		ed.preview.Image = img
		ed.preview.Refresh()
	}()
}

// pickImage opens the file dialog, then the crop dialog, for a slot.
func (bp *BannerPanel) pickImage(slot banner.Slot) {
	if bp.state.Draft.Subject() == "" {
		bp.status.SetText("Select a restaurant first.")
		return
	}

	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		rememberImportDir(bp.prefs, reader.URI())

		src, err := crop.Decode(reader)
		if err != nil {
			dialog.ShowError(err, bp.window)
			return
		}
		bp.openCrop(slot, src)
	}, bp.window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	if loc, ok := lastImportLocation(bp.prefs); ok {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// openCrop runs the crop dialog and applies the result to the draft. The
// subject captured here guards against the operator switching restaurants
// while the crop engine runs.
func (bp *BannerPanel) openCrop(slot banner.Slot, src image.Image) {
	subject := bp.state.Draft.Subject()

	dialogs.ShowCrop(bp.window, src, slot, func(result *crop.Result, suggestedBg string) {
		if bp.state.Draft.Subject() != subject {
			return // stale: discard silently, nothing was minted yet
		}

		handle := bp.state.Previews.Mint(result.JPEG)
		if err := bp.state.Draft.ApplyCroppedAsset(slot, handle, result.JPEG); err != nil {
			bp.state.Previews.Release(handle)
			log.Printf("apply cropped asset: %v", err)
			return
		}

		ed := bp.editors[slot]
		ed.preview.Image = result.Image
		ed.preview.Refresh()
		bp.state.Emit(app.EventDraftChanged, slot)
		if suggestedBg != "" {
			// Offer the dominant-hue suggestion; SetText routes it into the
			// draft and the operator can still override it.
			bp.editors[slot].bgColor.SetText(suggestedBg)
		}
		bp.status.SetText(fmt.Sprintf("Cropped %dx%d for %s. Suggested background: %s",
			result.Width, result.Height, slot, suggestedBg))
	})
}

// onSave packages and submits the draft.
func (bp *BannerPanel) onSave() {
	bp.saveBtn.Disable()
	bp.status.SetText("Saving...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		_ = bp.state.SaveBanners(ctx) // outcome surfaces through events
	}()
}

// onReload re-fetches the authoritative record after a failed save.
func (bp *BannerPanel) onReload() {
	subject := bp.state.Draft.Subject()
	if subject == "" {
		return
	}
	bp.status.SetText("Reloading...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := bp.state.SelectRestaurant(ctx, subject); err != nil {
			bp.status.SetText(fmt.Sprintf("Reload failed: %v", err))
		}
	}()
}
