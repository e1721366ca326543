package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"menubook/internal/api"
	"menubook/internal/crop"
	"menubook/internal/menu"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Viewer is the end-user menu window for one restaurant.
type Viewer struct {
	fyne.Window

	app        fyne.App
	client     *api.Client
	controller *menu.PageController
	carousel   *Carousel
}

// Open fetches the restaurant for slug and shows its menu book in a new
// window. An unknown slug shows a not-found state; an inactive restaurant
// shows an unavailable state and loads no images.
func Open(fyneApp fyne.App, client *api.Client, slug string, autoplayInterval time.Duration) *Viewer {
	win := fyneApp.NewWindow("Menu")
	win.Resize(fyne.NewSize(900, 700))

	v := &Viewer{
		Window: win,
		app:    fyneApp,
		client: client,
	}

	loading := widget.NewLabel("Loading Menu...")
	win.SetContent(container.NewCenter(loading))
	win.Show()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rec, err := client.Restaurant(ctx, slug)
		if err != nil {
			v.showError(err)
			return
		}
		v.show(rec, autoplayInterval)
	}()

	return v
}

// show builds the full menu experience for an active restaurant.
func (v *Viewer) show(rec *menu.Record, autoplayInterval time.Duration) {
	if !rec.IsActive {
		v.SetTitle(rec.Name)
		v.SetContent(container.NewCenter(container.NewVBox(
			widget.NewLabelWithStyle("Menu Currently Unavailable",
				fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Please contact the restaurant for more information.",
				fyne.TextAlignCenter, fyne.TextStyle{}),
		)))
		return
	}

	pages := menu.BuildPageSet(rec.Book)
	v.controller = menu.NewPageController(len(pages))

	fetch := func(u string) ([]byte, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return v.client.FetchImage(ctx, u)
	}

	v.carousel = NewCarousel(v.controller, pages, fetch)
	v.controller.AttachCarousel(v.carousel)
	dock := NewDock(v.controller, pages)

	header := v.buildHeader(rec, fetch)

	v.SetTitle(rec.Name)
	v.SetContent(container.NewBorder(
		header,           // top
		dock.Container(), // bottom
		nil,
		nil,
		v.carousel, // center
	))

	if autoplayInterval > 0 && len(pages) > 1 {
		v.carousel.StartAutoplay(autoplayInterval)
	}

	v.SetOnClosed(func() {
		if v.carousel != nil {
			v.carousel.StopAutoplay()
		}
		v.controller.Close()
	})
}

// buildHeader shows the restaurant logo and the WhatsApp order button.
func (v *Viewer) buildHeader(rec *menu.Record, fetch ImageFetcher) fyne.CanvasObject {
	logo := fynecanvas.NewImageFromImage(nil)
	logo.FillMode = fynecanvas.ImageFillContain
	logo.SetMinSize(fyne.NewSize(96, 48))

	if rec.LogoURL != "" {
		go func() {
			data, err := fetch(rec.LogoURL)
			if err != nil {
				log.Printf("logo fetch failed: %v", err)
				return
			}
			img, err := crop.Decode(bytes.NewReader(data))
			if err != nil {
				log.Printf("logo decode failed: %v", err)
				return
			}
			logo.Image = img
			logo.Refresh()
		}()
	}

	orderBtn := widget.NewButton("Order Now", func() {
		v.openWhatsApp(rec.WhatsappNumber)
	})
	orderBtn.Importance = widget.HighImportance

	return container.NewBorder(nil, nil, logo, orderBtn)
}

// openWhatsApp launches the wa.me ordering link in the system browser.
func (v *Viewer) openWhatsApp(number string) {
	msg := url.QueryEscape("Hi! I would like to place an order.")
	u, err := url.Parse(fmt.Sprintf("https://wa.me/%s?text=%s", number, msg))
	if err != nil {
		log.Printf("whatsapp url: %v", err)
		return
	}
	if err := v.app.OpenURL(u); err != nil {
		log.Printf("open whatsapp: %v", err)
	}
}

// showError renders the terminal not-found state or a generic failure.
func (v *Viewer) showError(err error) {
	msg := "Failed to load menu."
	if errors.Is(err, api.ErrNotFound) {
		msg = "Menu not found."
	}
	log.Printf("viewer: %v", err)
	v.SetContent(container.NewCenter(
		widget.NewLabelWithStyle(msg, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})))
}
