package viewer

import (
	"menubook/internal/menu"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Dock is the page-button strip below the carousel. It renders purely from
// the controller's shared index and reports clicks back through
// DockSelected; it never talks to the carousel directly.
type Dock struct {
	controller *menu.PageController
	buttons    []*widget.Button
	box        *fyne.Container
}

// NewDock builds one button per page, with the first labeled "Cover".
func NewDock(controller *menu.PageController, pages menu.PageSet) *Dock {
	d := &Dock{controller: controller}

	for i := range pages {
		index := i
		btn := widget.NewButton(pages.Label(i), func() {
			d.controller.DockSelected(index)
		})
		d.buttons = append(d.buttons, btn)
	}

	objects := make([]fyne.CanvasObject, len(d.buttons))
	for i, b := range d.buttons {
		objects[i] = b
	}
	d.box = container.NewHBox(objects...)

	controller.OnPageChange(d.highlight)
	d.highlight(controller.Page())
	return d
}

// Container returns the dock's root object, wrapped for horizontal overflow.
func (d *Dock) Container() fyne.CanvasObject {
	return container.NewHScroll(container.NewCenter(d.box))
}

// highlight marks the current page's button.
func (d *Dock) highlight(index int) {
	for i, b := range d.buttons {
		if i == index {
			b.Importance = widget.HighImportance
		} else {
			b.Importance = widget.MediumImportance
		}
		b.Refresh()
	}
}
