// Package banner holds the editing-session state for the three promotional
// banner slots and packages it for submission.
package banner

// Slot identifies one of the three fixed banner positions.
type Slot int

const (
	SlotMain Slot = iota
	SlotSideTop
	SlotSideBottom
)

// Slots lists all slots in display order.
var Slots = []Slot{SlotMain, SlotSideTop, SlotSideBottom}

func (s Slot) String() string {
	switch s {
	case SlotMain:
		return "main"
	case SlotSideTop:
		return "sideTop"
	case SlotSideBottom:
		return "sideBottom"
	default:
		return "unknown"
	}
}

// Aspect returns the slot's fixed target aspect ratio (width/height):
// 16:9 for the main banner, 4:3 for both side cards.
func (s Slot) Aspect() float64 {
	if s == SlotMain {
		return 16.0 / 9.0
	}
	return 4.0 / 3.0
}

// Field names a text or color field within a slot.
type Field string

const (
	FieldTitle    Field = "title"
	FieldSubtitle Field = "subtitle"
	FieldPrice    Field = "price"
	FieldBgColor  Field = "bgColor"
)

// HasField reports whether the slot carries the given field. Only the top
// side card has a price.
func (s Slot) HasField(f Field) bool {
	switch f {
	case FieldTitle, FieldSubtitle, FieldBgColor:
		return true
	case FieldPrice:
		return s == SlotSideTop
	default:
		return false
	}
}

// Fields holds the current text/color values of one slot.
type Fields struct {
	Title    string
	Subtitle string
	Price    string
	BgColor  string
}

// defaultFields returns the built-in per-slot defaults. Every field has a
// default so a missing server field never produces a blank visual state.
func defaultFields(s Slot) Fields {
	switch s {
	case SlotMain:
		return Fields{BgColor: "#EAB308"}
	case SlotSideTop:
		return Fields{BgColor: "#D97746"}
	default:
		return Fields{BgColor: "#2D1A16"}
	}
}
