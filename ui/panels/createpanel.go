package panels

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"menubook/internal/api"
	"menubook/internal/app"
	"menubook/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// ratioPresets maps the studio's page-shape choices to width/height ratios.
var ratioPresets = []struct {
	label string
	value float64
}{
	{"Tall (917:2048)", 917.0 / 2048.0},
	{"A4 (210:297)", 210.0 / 297.0},
	{"Square (1:1)", 1},
	{"Custom", 0},
}

// CreatePanel registers a new restaurant: name, contact number, page ratio
// and the initial book assets.
type CreatePanel struct {
	state     *app.State
	window    fyne.Window
	prefs     *prefs.Prefs
	container fyne.CanvasObject

	name      *widget.Entry
	whatsapp  *widget.Entry
	ratioSel  *widget.Select
	ratioText *widget.Entry

	logo  *api.FileUpload
	front *api.FileUpload
	back  *api.FileUpload
	pages []api.FileUpload

	logoLabel  *widget.Label
	frontLabel *widget.Label
	backLabel  *widget.Label
	pagesLabel *widget.Label

	msg *widget.Label
}

// NewCreatePanel builds the create form. The window anchors file dialogs.
func NewCreatePanel(state *app.State, window fyne.Window, p *prefs.Prefs) *CreatePanel {
	cp := &CreatePanel{state: state, window: window, prefs: p}

	cp.name = widget.NewEntry()
	cp.name.SetPlaceHolder("Restaurant name")
	cp.whatsapp = widget.NewEntry()
	cp.whatsapp.SetPlaceHolder("9715xxxxxxxx")

	cp.ratioText = widget.NewEntry()
	cp.ratioText.SetPlaceHolder("width/height, e.g. 0.7")
	cp.ratioText.Disable()

	labels := make([]string, len(ratioPresets))
	for i, p := range ratioPresets {
		labels[i] = p.label
	}
	cp.ratioSel = widget.NewSelect(labels, func(label string) {
		if label == "Custom" {
			cp.ratioText.Enable()
			return
		}
		cp.ratioText.Disable()
		cp.ratioText.SetText("")
	})
	cp.ratioSel.SetSelected(labels[0])

	cp.logoLabel = widget.NewLabel("no file")
	cp.frontLabel = widget.NewLabel("no file")
	cp.backLabel = widget.NewLabel("no file")
	cp.pagesLabel = widget.NewLabel("no files")

	logoBtn := widget.NewButton("Choose Logo", func() {
		cp.pickSingle(func(f *api.FileUpload) {
			cp.logo = f
			cp.logoLabel.SetText(f.Filename)
		})
	})
	frontBtn := widget.NewButton("Choose Front Cover", func() {
		cp.pickSingle(func(f *api.FileUpload) {
			cp.front = f
			cp.frontLabel.SetText(f.Filename)
		})
	})
	backBtn := widget.NewButton("Choose Back Cover", func() {
		cp.pickSingle(func(f *api.FileUpload) {
			cp.back = f
			cp.backLabel.SetText(f.Filename)
		})
	})
	pageBtn := widget.NewButton("Add Page", func() {
		cp.pickSingle(func(f *api.FileUpload) {
			cp.pages = append(cp.pages, *f)
			cp.pagesLabel.SetText(fmt.Sprintf("%d page(s)", len(cp.pages)))
		})
	})
	clearPages := widget.NewButton("Clear Pages", func() {
		cp.pages = nil
		cp.pagesLabel.SetText("no files")
	})

	submit := widget.NewButton("Create Restaurant", cp.onSubmit)
	submit.Importance = widget.HighImportance
	cp.msg = widget.NewLabel("")
	cp.msg.Wrapping = fyne.TextWrapWord

	form := widget.NewForm(
		widget.NewFormItem("Name", cp.name),
		widget.NewFormItem("WhatsApp", cp.whatsapp),
		widget.NewFormItem("Page Shape", cp.ratioSel),
		widget.NewFormItem("Custom Ratio", cp.ratioText),
	)

	files := container.NewVBox(
		container.NewBorder(nil, nil, logoBtn, nil, cp.logoLabel),
		container.NewBorder(nil, nil, frontBtn, nil, cp.frontLabel),
		container.NewBorder(nil, nil, backBtn, nil, cp.backLabel),
		container.NewBorder(nil, nil, container.NewHBox(pageBtn, clearPages), nil, cp.pagesLabel),
	)

	cp.container = container.NewVScroll(container.NewVBox(
		form,
		widget.NewCard("Book Assets", "Pages are appended in pick order.", files),
		submit,
		cp.msg,
	))
	return cp
}

// Container returns the panel's root object.
func (cp *CreatePanel) Container() fyne.CanvasObject {
	return cp.container
}

// pickSingle opens a file dialog and reads the chosen image into memory.
func (cp *CreatePanel) pickSingle(accept func(*api.FileUpload)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		rememberImportDir(cp.prefs, reader.URI())
		data, err := io.ReadAll(reader)
		if err != nil {
			cp.msg.SetText(fmt.Sprintf("Failed to read file: %v", err))
			return
		}
		accept(&api.FileUpload{
			Filename: filepath.Base(reader.URI().Path()),
			Data:     data,
		})
	}, cp.window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	if loc, ok := lastImportLocation(cp.prefs); ok {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// ratio resolves the selected preset, or parses the custom entry.
func (cp *CreatePanel) ratio() (float64, error) {
	for _, p := range ratioPresets {
		if p.label == cp.ratioSel.Selected && p.label != "Custom" {
			return p.value, nil
		}
	}
	v, err := strconv.ParseFloat(cp.ratioText.Text, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid ratio %q", cp.ratioText.Text)
	}
	return v, nil
}

func (cp *CreatePanel) onSubmit() {
	if cp.name.Text == "" {
		cp.msg.SetText("A restaurant name is required.")
		return
	}
	ratio, err := cp.ratio()
	if err != nil {
		cp.msg.SetText(err.Error())
		return
	}

	req := api.CreateRequest{
		Name:           cp.name.Text,
		WhatsappNumber: cp.whatsapp.Text,
		Ratio:          ratio,
		Logo:           cp.logo,
		Front:          cp.front,
		Back:           cp.back,
		Pages:          cp.pages,
	}

	cp.msg.SetText("Creating...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()
		id, err := cp.state.Client().Create(ctx, req)
		if err != nil {
			cp.msg.SetText(fmt.Sprintf("Create failed: %v", err))
			return
		}
		if id != "" {
			cp.msg.SetText(fmt.Sprintf("Restaurant created (id %s).", id))
		} else {
			cp.msg.SetText("Restaurant created.")
		}
		cp.state.Emit(app.EventRestaurantCreated, id)
		cp.state.RefreshRestaurants(context.Background())
	}()
}
