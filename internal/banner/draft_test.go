package banner

import (
	"bytes"
	"testing"

	"menubook/internal/menu"
)

func TestSlotAspect(t *testing.T) {
	if got := SlotMain.Aspect(); got != 16.0/9.0 {
		t.Errorf("main aspect = %v, want 16:9", got)
	}
	if got := SlotSideTop.Aspect(); got != 4.0/3.0 {
		t.Errorf("sideTop aspect = %v, want 4:3", got)
	}
	if got := SlotSideBottom.Aspect(); got != 4.0/3.0 {
		t.Errorf("sideBottom aspect = %v, want 4:3", got)
	}
}

func TestHasField(t *testing.T) {
	for _, s := range Slots {
		if !s.HasField(FieldTitle) || !s.HasField(FieldSubtitle) || !s.HasField(FieldBgColor) {
			t.Errorf("slot %s missing a universal field", s)
		}
	}
	if !SlotSideTop.HasField(FieldPrice) {
		t.Error("sideTop should carry a price")
	}
	if SlotMain.HasField(FieldPrice) || SlotSideBottom.HasField(FieldPrice) {
		t.Error("price must be exclusive to sideTop")
	}
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft(NewPreviewRegistry())

	if got := d.Fields(SlotMain).BgColor; got != "#EAB308" {
		t.Errorf("main default bg = %q", got)
	}
	if got := d.Fields(SlotSideTop).BgColor; got != "#D97746" {
		t.Errorf("sideTop default bg = %q", got)
	}
	if got := d.Fields(SlotSideBottom).BgColor; got != "#2D1A16" {
		t.Errorf("sideBottom default bg = %q", got)
	}
	if d.HasPending() {
		t.Error("fresh draft has pending images")
	}
}

func TestLoadRecordMergesOverDefaults(t *testing.T) {
	d := NewDraft(NewPreviewRegistry())

	// sideTop entirely absent; main has a title but no bg color.
	d.LoadRecord("grill-town", menu.Banners{
		Main: &menu.BannerData{
			Title: "Weekend Feast",
			Image: "https://cdn.example.com/main.jpg",
		},
		SideBottom: &menu.BannerData{BgColor: "#101010"},
	})

	if got := d.Subject(); got != "grill-town" {
		t.Errorf("Subject() = %q", got)
	}

	main := d.Fields(SlotMain)
	if main.Title != "Weekend Feast" {
		t.Errorf("main title = %q", main.Title)
	}
	if main.BgColor != "#EAB308" {
		t.Errorf("missing server bg must keep default, got %q", main.BgColor)
	}

	if got := d.Fields(SlotSideTop); got != (Fields{BgColor: "#D97746"}) {
		t.Errorf("absent sideTop should be pure defaults, got %+v", got)
	}
	if got := d.Fields(SlotSideBottom).BgColor; got != "#101010" {
		t.Errorf("sideBottom bg = %q", got)
	}

	blob, url := d.DisplayImage(SlotMain)
	if blob != nil || url != "https://cdn.example.com/main.jpg" {
		t.Errorf("DisplayImage(main) = (%v, %q)", blob, url)
	}
}

func TestSetFieldValidation(t *testing.T) {
	d := NewDraft(NewPreviewRegistry())

	if err := d.SetField(SlotSideTop, FieldPrice, "AED 49"); err != nil {
		t.Fatalf("sideTop price: %v", err)
	}
	if got := d.Fields(SlotSideTop).Price; got != "AED 49" {
		t.Errorf("price = %q", got)
	}

	if err := d.SetField(SlotMain, FieldPrice, "AED 49"); err == nil {
		t.Error("main slot accepted a price")
	}
	if err := d.SetField(SlotSideBottom, FieldPrice, "AED 49"); err == nil {
		t.Error("sideBottom slot accepted a price")
	}
}

func TestApplyCroppedAssetSupersedesPreview(t *testing.T) {
	reg := NewPreviewRegistry()
	d := NewDraft(reg)
	d.LoadRecord("grill-town", menu.Banners{})

	first := []byte("jpeg-one")
	h1 := reg.Mint(first)
	if err := d.ApplyCroppedAsset(SlotMain, h1, first); err != nil {
		t.Fatal(err)
	}

	blob, url := d.DisplayImage(SlotMain)
	if !bytes.Equal(blob, first) || url != "" {
		t.Fatalf("DisplayImage = (%q, %q), want first blob", blob, url)
	}

	second := []byte("jpeg-two")
	h2 := reg.Mint(second)
	if err := d.ApplyCroppedAsset(SlotMain, h2, second); err != nil {
		t.Fatal(err)
	}

	if got := reg.Get(h1); got != nil {
		t.Error("superseded preview was not released")
	}
	blob, _ = d.DisplayImage(SlotMain)
	if !bytes.Equal(blob, second) {
		t.Errorf("DisplayImage = %q, want second blob", blob)
	}
	if !bytes.Equal(d.Pending(SlotMain), second) {
		t.Error("pending blob not replaced")
	}
}

func TestLoadRecordDiscardsPending(t *testing.T) {
	reg := NewPreviewRegistry()
	d := NewDraft(reg)
	d.LoadRecord("grill-town", menu.Banners{})

	blob := []byte("jpeg-bytes")
	h := reg.Mint(blob)
	if err := d.ApplyCroppedAsset(SlotSideTop, h, blob); err != nil {
		t.Fatal(err)
	}
	if err := d.SetField(SlotSideTop, FieldTitle, "unsaved"); err != nil {
		t.Fatal(err)
	}

	// Switching restaurants drops all unsent edits.
	d.LoadRecord("other-place", menu.Banners{})

	if d.HasPending() {
		t.Error("pending blob survived a subject switch")
	}
	if got := d.Fields(SlotSideTop).Title; got != "" {
		t.Errorf("unsaved title survived: %q", got)
	}
	if reg.Get(h) != nil {
		t.Error("preview not released on subject switch")
	}

	minted, released := reg.Counts()
	if minted != released {
		t.Errorf("preview leak: minted %d, released %d", minted, released)
	}
}

func TestCloseReleasesAllPreviews(t *testing.T) {
	reg := NewPreviewRegistry()
	d := NewDraft(reg)
	d.LoadRecord("grill-town", menu.Banners{})

	for _, s := range Slots {
		blob := []byte(s.String())
		if err := d.ApplyCroppedAsset(s, reg.Mint(blob), blob); err != nil {
			t.Fatal(err)
		}
	}
	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}

	d.Close()

	if reg.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", reg.Len())
	}
	minted, released := reg.Counts()
	if minted != 3 || released != 3 {
		t.Errorf("counts = (%d, %d), want (3, 3)", minted, released)
	}
}

func TestReleaseUnknownHandleIsNoop(t *testing.T) {
	reg := NewPreviewRegistry()
	reg.Release("")
	reg.Release("never-minted")

	if _, released := reg.Counts(); released != 0 {
		t.Errorf("released = %d, want 0", released)
	}
}
