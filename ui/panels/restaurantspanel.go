package panels

import (
	"context"
	"fmt"
	"log"
	"time"

	"menubook/internal/app"
	"menubook/internal/menu"
	"menubook/ui/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RestaurantsPanel lists all restaurants with their status, and offers
// toggle-status and open-viewer actions per row.
type RestaurantsPanel struct {
	state     *app.State
	fyneApp   fyne.App
	container fyne.CanvasObject

	list  *widget.List
	items []menu.ListItem
}

// NewRestaurantsPanel creates the restaurant list panel.
func NewRestaurantsPanel(state *app.State, fyneApp fyne.App) *RestaurantsPanel {
	rp := &RestaurantsPanel{state: state, fyneApp: fyneApp}

	rp.list = widget.NewList(
		func() int { return len(rp.items) },
		func() fyne.CanvasObject {
			name := widget.NewLabel("Name")
			status := widget.NewLabel("Status")
			toggle := widget.NewButton("Toggle", nil)
			open := widget.NewButton("View Menu", nil)
			return container.NewHBox(name, status, toggle, open)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if int(id) >= len(rp.items) {
				return
			}
			item := rp.items[id]
			row := obj.(*fyne.Container)
			name := row.Objects[0].(*widget.Label)
			status := row.Objects[1].(*widget.Label)
			toggle := row.Objects[2].(*widget.Button)
			open := row.Objects[3].(*widget.Button)

			name.SetText(fmt.Sprintf("%s  (%s)", item.Name, item.Slug))
			status.SetText(item.Status)
			toggle.OnTapped = func() { rp.toggleStatus(item.Slug) }
			open.OnTapped = func() {
				viewer.Open(rp.fyneApp, rp.state.Client(), item.Slug, 0)
			}
		},
	)

	refresh := widget.NewButton("Refresh", rp.refresh)
	rp.container = container.NewBorder(refresh, nil, nil, nil, rp.list)

	state.On(app.EventRestaurantListLoaded, func(data interface{}) {
		if list, ok := data.([]menu.ListItem); ok {
			rp.items = list
			rp.list.Refresh()
		}
	})

	return rp
}

// Container returns the panel's root object.
func (rp *RestaurantsPanel) Container() fyne.CanvasObject {
	return rp.container
}

func (rp *RestaurantsPanel) refresh() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := rp.state.RefreshRestaurants(ctx); err != nil {
			log.Printf("restaurant list refresh: %v", err)
		}
	}()
}

func (rp *RestaurantsPanel) toggleStatus(slug string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := rp.state.Client().ToggleStatus(ctx, slug); err != nil {
			log.Printf("toggle status %s: %v", slug, err)
			return
		}
		rp.state.Emit(app.EventStatusToggled, slug)
		// The list's status column comes from the server; re-fetch it.
		if err := rp.state.RefreshRestaurants(ctx); err != nil {
			log.Printf("restaurant list refresh: %v", err)
		}
	}()
}
