package banner

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"menubook/internal/menu"
)

// parsePayload splits a payload back into its text fields and file parts.
func parsePayload(t *testing.T, p *Payload) (map[string]string, map[string]struct {
	filename string
	data     []byte
}) {
	t.Helper()

	_, params, err := mime.ParseMediaType(p.ContentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	mr := multipart.NewReader(bytes.NewReader(p.Body), params["boundary"])

	fields := make(map[string]string)
	files := make(map[string]struct {
		filename string
		data     []byte
	})
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		if part.FileName() != "" {
			files[part.FormName()] = struct {
				filename string
				data     []byte
			}{part.FileName(), data}
		} else {
			fields[part.FormName()] = string(data)
		}
	}
	return fields, files
}

var allTextFields = []string{
	"mainTitle", "mainSubtitle", "mainBg",
	"sideTopTitle", "sideTopSubtitle", "sideTopPrice", "sideTopBg",
	"sideBottomTitle", "sideBottomSubtitle", "sideBottomBg",
}

func TestBuildPayloadTextOnlyEdit(t *testing.T) {
	d := NewDraft(NewPreviewRegistry())
	d.LoadRecord("grill-town", menu.Banners{})
	if err := d.SetField(SlotSideBottom, FieldTitle, "Family Combo"); err != nil {
		t.Fatal(err)
	}

	p, err := BuildPayload(d)
	if err != nil {
		t.Fatal(err)
	}
	fields, files := parsePayload(t, p)

	// A single edited field still produces the complete field state.
	for _, name := range allTextFields {
		if _, ok := fields[name]; !ok {
			t.Errorf("missing text field %q", name)
		}
	}
	if got := fields["sideBottomTitle"]; got != "Family Combo" {
		t.Errorf("sideBottomTitle = %q", got)
	}
	if got := fields["mainBg"]; got != "#EAB308" {
		t.Errorf("mainBg = %q", got)
	}

	if len(files) != 0 {
		t.Errorf("text-only edit produced %d file parts", len(files))
	}
}

func TestBuildPayloadFileParts(t *testing.T) {
	reg := NewPreviewRegistry()
	d := NewDraft(reg)
	d.LoadRecord("grill-town", menu.Banners{})

	mainBlob := []byte("main-jpeg")
	topBlob := []byte("top-jpeg")
	if err := d.ApplyCroppedAsset(SlotMain, reg.Mint(mainBlob), mainBlob); err != nil {
		t.Fatal(err)
	}
	if err := d.ApplyCroppedAsset(SlotSideTop, reg.Mint(topBlob), topBlob); err != nil {
		t.Fatal(err)
	}

	p, err := BuildPayload(d)
	if err != nil {
		t.Fatal(err)
	}
	_, files := parsePayload(t, p)

	if len(files) != 2 {
		t.Fatalf("got %d file parts, want 2", len(files))
	}

	mainPart, ok := files["mainImage"]
	if !ok {
		t.Fatal("missing mainImage part")
	}
	if mainPart.filename != "main.jpg" || !bytes.Equal(mainPart.data, mainBlob) {
		t.Errorf("mainImage = (%q, %q)", mainPart.filename, mainPart.data)
	}

	topPart, ok := files["sideTopImage"]
	if !ok {
		t.Fatal("missing sideTopImage part")
	}
	if topPart.filename != "top.jpg" || !bytes.Equal(topPart.data, topBlob) {
		t.Errorf("sideTopImage = (%q, %q)", topPart.filename, topPart.data)
	}

	if _, ok := files["sideBottomImage"]; ok {
		t.Error("untouched sideBottom produced a file part")
	}
}
