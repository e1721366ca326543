package banner

import (
	"fmt"
	"sync"

	"menubook/internal/menu"
)

// slotState is the complete editing state of one slot.
type slotState struct {
	fields Fields

	// Display reference. A non-empty previewHandle supersedes remoteURL for
	// preview purposes; the remote URL is kept as the fallback record.
	remoteURL     string
	previewHandle string

	// Pending encoded raster, present only if the operator replaced this
	// slot's image in the current session. Absent means "keep the server
	// image".
	pending []byte
}

// Draft is the single source of truth for all three banner slots during one
// editing session. One logical actor (the operator) mutates it; mutations
// apply in call order.
type Draft struct {
	mu       sync.Mutex
	subject  string // slug of the restaurant being edited
	slots    map[Slot]*slotState
	previews *PreviewRegistry
}

// NewDraft creates a draft with every slot at its built-in defaults.
// Previews minted for this draft live in registry.
func NewDraft(registry *PreviewRegistry) *Draft {
	d := &Draft{
		slots:    make(map[Slot]*slotState, len(Slots)),
		previews: registry,
	}
	for _, s := range Slots {
		d.slots[s] = &slotState{fields: defaultFields(s)}
	}
	return d
}

// Subject returns the slug this draft is editing. In-flight crop and submit
// goroutines compare their captured slug against this before applying
// results; a mismatch means the operator switched restaurants and the result
// must be discarded.
func (d *Draft) Subject() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.subject
}

// LoadRecord resets the draft to the server state for slug, merging each
// present server field over the slot defaults. All pending blobs are
// discarded and their previews released: switching the subject of editing
// always drops unsent local edits.
func (d *Draft) LoadRecord(slug string, banners menu.Banners) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.subject = slug
	data := map[Slot]*menu.BannerData{
		SlotMain:       banners.Main,
		SlotSideTop:    banners.SideTop,
		SlotSideBottom: banners.SideBottom,
	}
	for _, s := range Slots {
		st := d.slots[s]
		d.releasePreviewLocked(st)
		st.pending = nil
		st.remoteURL = ""
		st.fields = defaultFields(s)

		src := data[s]
		if src == nil {
			continue
		}
		if src.Title != "" {
			st.fields.Title = src.Title
		}
		if src.Subtitle != "" {
			st.fields.Subtitle = src.Subtitle
		}
		if src.Price != "" && s.HasField(FieldPrice) {
			st.fields.Price = src.Price
		}
		if src.BgColor != "" {
			st.fields.BgColor = src.BgColor
		}
		st.remoteURL = src.Image
	}
}

// SetField updates one text/color field. The only validation is that the
// slot carries the field at all.
func (d *Draft) SetField(slot Slot, field Field, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.slots[slot]
	if !ok {
		return fmt.Errorf("unknown slot %v", slot)
	}
	if !slot.HasField(field) {
		return fmt.Errorf("slot %s has no field %q", slot, field)
	}
	switch field {
	case FieldTitle:
		st.fields.Title = value
	case FieldSubtitle:
		st.fields.Subtitle = value
	case FieldPrice:
		st.fields.Price = value
	case FieldBgColor:
		st.fields.BgColor = value
	}
	return nil
}

// Fields returns a copy of the slot's current field values.
func (d *Draft) Fields(slot Slot) Fields {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slots[slot].fields
}

// ApplyCroppedAsset replaces the slot's displayed image with the preview
// handle and records blob as pending for submission. Other fields are not
// touched. A previously pending preview for the same slot is released.
func (d *Draft) ApplyCroppedAsset(slot Slot, previewHandle string, blob []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	st, ok := d.slots[slot]
	if !ok {
		return fmt.Errorf("unknown slot %v", slot)
	}
	d.releasePreviewLocked(st)
	st.previewHandle = previewHandle
	st.pending = blob
	return nil
}

// DisplayImage returns what the preview should show for a slot: the local
// preview blob if one is pending, otherwise the remote URL. Exactly one of
// the two return values is meaningful.
func (d *Draft) DisplayImage(slot Slot) (previewBlob []byte, remoteURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := d.slots[slot]
	if st.previewHandle != "" {
		if blob := d.previews.Get(st.previewHandle); blob != nil {
			return blob, ""
		}
	}
	return nil, st.remoteURL
}

// Pending returns the slot's pending blob, or nil if the server image is to
// be kept.
func (d *Draft) Pending(slot Slot) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slots[slot].pending
}

// HasPending reports whether any slot carries a pending image replacement.
func (d *Draft) HasPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, st := range d.slots {
		if st.pending != nil {
			return true
		}
	}
	return false
}

// Close releases every live preview held by the draft. Called when the
// editing session ends.
func (d *Draft) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, st := range d.slots {
		d.releasePreviewLocked(st)
	}
}

func (d *Draft) releasePreviewLocked(st *slotState) {
	if st.previewHandle != "" {
		d.previews.Release(st.previewHandle)
		st.previewHandle = ""
	}
}
