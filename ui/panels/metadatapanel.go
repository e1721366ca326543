package panels

import (
	"context"
	"fmt"
	"time"

	"menubook/internal/app"
	"menubook/internal/menu"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MetadataPanel edits a restaurant's details and SEO overrides, submitted as
// one full metadata object.
type MetadataPanel struct {
	state     *app.State
	container fyne.CanvasObject

	selector *widget.Select
	items    []menu.ListItem
	idByName map[string]string

	name, slug, shortDesc   *widget.Entry
	city, area, cuisine     *widget.Entry
	whatsapp, address, maps *widget.Entry
	status                  *widget.Select
	metaTitle, metaDesc     *widget.Entry

	selectedID string
	msg        *widget.Label
}

// NewMetadataPanel creates the details editor panel.
func NewMetadataPanel(state *app.State) *MetadataPanel {
	mp := &MetadataPanel{state: state, idByName: make(map[string]string)}

	mp.selector = widget.NewSelect(nil, mp.onSelected)
	mp.selector.PlaceHolder = "-- Choose a Restaurant --"

	mp.name = widget.NewEntry()
	mp.slug = widget.NewEntry()
	mp.slug.SetPlaceHolder("e.g. grill-town")
	mp.shortDesc = widget.NewEntry()
	mp.shortDesc.MultiLine = true
	mp.city = widget.NewEntry()
	mp.area = widget.NewEntry()
	mp.cuisine = widget.NewEntry()
	mp.whatsapp = widget.NewEntry()
	mp.address = widget.NewEntry()
	mp.maps = widget.NewEntry()
	mp.status = widget.NewSelect([]string{"Active", "Paused"}, nil)
	mp.metaTitle = widget.NewEntry()
	mp.metaDesc = widget.NewEntry()
	mp.metaDesc.MultiLine = true

	form := widget.NewForm(
		widget.NewFormItem("Name", mp.name),
		widget.NewFormItem("Slug", mp.slug),
		widget.NewFormItem("Description", mp.shortDesc),
		widget.NewFormItem("City", mp.city),
		widget.NewFormItem("Area", mp.area),
		widget.NewFormItem("Cuisine", mp.cuisine),
		widget.NewFormItem("WhatsApp", mp.whatsapp),
		widget.NewFormItem("Address", mp.address),
		widget.NewFormItem("Maps Link", mp.maps),
		widget.NewFormItem("Status", mp.status),
		widget.NewFormItem("Meta Title", mp.metaTitle),
		widget.NewFormItem("Meta Description", mp.metaDesc),
	)

	save := widget.NewButton("Save Settings", mp.onSave)
	save.Importance = widget.HighImportance
	mp.msg = widget.NewLabel("")
	mp.msg.Wrapping = fyne.TextWrapWord

	mp.container = container.NewVScroll(container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Restaurant"), nil, mp.selector),
		form,
		save,
		mp.msg,
	))

	state.On(app.EventRestaurantListLoaded, func(data interface{}) {
		list, ok := data.([]menu.ListItem)
		if !ok {
			return
		}
		options := make([]string, 0, len(list))
		mp.items = list
		mp.idByName = make(map[string]string, len(list))
		for _, item := range list {
			options = append(options, item.Name)
			mp.idByName[item.Name] = item.ID
		}
		mp.selector.Options = options
		mp.selector.Refresh()
	})

	return mp
}

// Container returns the panel's root object.
func (mp *MetadataPanel) Container() fyne.CanvasObject {
	return mp.container
}

// onSelected loads the chosen restaurant's current details into the form.
func (mp *MetadataPanel) onSelected(name string) {
	id, ok := mp.idByName[name]
	if !ok {
		return
	}
	mp.selectedID = id
	mp.msg.SetText("")

	// The list row carries only identity; details come from the full record.
	var slug string
	for _, item := range mp.items {
		if item.ID == id {
			slug = item.Slug
			break
		}
	}
	if slug == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		rec, err := mp.state.Client().Restaurant(ctx, slug)
		if err != nil {
			mp.msg.SetText(fmt.Sprintf("Failed to load details: %v", err))
			return
		}
		mp.name.SetText(rec.Name)
		mp.slug.SetText(rec.Slug)
		mp.whatsapp.SetText(rec.WhatsappNumber)
		if rec.IsActive {
			mp.status.SetSelected("Active")
		} else {
			mp.status.SetSelected("Paused")
		}
	}()
}

// onSave submits the complete metadata object.
func (mp *MetadataPanel) onSave() {
	if mp.selectedID == "" {
		mp.msg.SetText("Choose a restaurant first.")
		return
	}

	details := menu.Details{
		Name:             mp.name.Text,
		Slug:             mp.slug.Text,
		ShortDescription: mp.shortDesc.Text,
		City:             mp.city.Text,
		Area:             mp.area.Text,
		Cuisine:          mp.cuisine.Text,
		WhatsappNumber:   mp.whatsapp.Text,
		FullAddress:      mp.address.Text,
		GoogleMapsLink:   mp.maps.Text,
		Status:           mp.status.Selected,
		SEOOverrides: menu.SEOOverrides{
			MetaTitle:       mp.metaTitle.Text,
			MetaDescription: mp.metaDesc.Text,
		},
	}

	mp.msg.SetText("Saving...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mp.state.Client().UpdateDetails(ctx, mp.selectedID, details); err != nil {
			mp.msg.SetText(fmt.Sprintf("Failed to save settings: %v", err))
			return
		}
		mp.msg.SetText("Settings updated successfully.")
	}()
}
