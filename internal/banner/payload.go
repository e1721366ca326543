package banner

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// Payload is one atomic multipart request body for the update-banners
// endpoint.
type Payload struct {
	Body        []byte
	ContentType string
}

// Upload filenames are fixed; the server keys on the part name, not the
// filename.
var uploadNames = map[Slot]struct{ field, filename string }{
	SlotMain:       {"mainImage", "main.jpg"},
	SlotSideTop:    {"sideTopImage", "top.jpg"},
	SlotSideBottom: {"sideBottomImage", "bottom.jpg"},
}

// BuildPayload serializes the draft into a single multipart body. Every
// text/color field of every slot is always written, so the request is the
// complete desired field state; binary parts are written only for slots with
// a pending blob, which is the sole mechanism for partial image update.
func BuildPayload(d *Draft) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	main := d.Fields(SlotMain)
	top := d.Fields(SlotSideTop)
	bottom := d.Fields(SlotSideBottom)

	fields := []struct{ name, value string }{
		{"mainTitle", main.Title},
		{"mainSubtitle", main.Subtitle},
		{"mainBg", main.BgColor},
		{"sideTopTitle", top.Title},
		{"sideTopSubtitle", top.Subtitle},
		{"sideTopPrice", top.Price},
		{"sideTopBg", top.BgColor},
		{"sideBottomTitle", bottom.Title},
		{"sideBottomSubtitle", bottom.Subtitle},
		{"sideBottomBg", bottom.BgColor},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	for _, slot := range Slots {
		blob := d.Pending(slot)
		if blob == nil {
			continue
		}
		names := uploadNames[slot]
		part, err := w.CreateFormFile(names.field, names.filename)
		if err != nil {
			return nil, fmt.Errorf("create part %s: %w", names.field, err)
		}
		if _, err := part.Write(blob); err != nil {
			return nil, fmt.Errorf("write part %s: %w", names.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize payload: %w", err)
	}

	return &Payload{
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
	}, nil
}
