// Package viewer provides the end-user menu book window: a swipeable page
// carousel kept in lockstep with a button dock through a shared controller.
package viewer

import (
	"bytes"
	"image"
	"log"
	"sync"
	"time"

	"menubook/internal/crop"
	"menubook/internal/menu"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// swipeThreshold is how far (in points) a horizontal drag must travel before
// release to count as a page turn.
const swipeThreshold = 60

// ImageFetcher downloads a page image by URL. Blocking; the carousel calls
// it from background goroutines.
type ImageFetcher func(url string) ([]byte, error)

// Carousel shows one menu page at a time and reports gesture-driven page
// changes to the controller. It never writes the shared index directly: a
// completed swipe "settles" and the controller takes it from there.
type Carousel struct {
	widget.BaseWidget

	controller *menu.PageController
	fetch      ImageFetcher

	mu      sync.Mutex
	pages   menu.PageSet
	cache   map[int]image.Image
	current int

	dragX float32

	display *fynecanvas.Image

	autoplay     *time.Ticker
	autoplayStop chan struct{}
	lastGesture  time.Time
}

// NewCarousel creates a carousel over the given pages.
func NewCarousel(controller *menu.PageController, pages menu.PageSet, fetch ImageFetcher) *Carousel {
	c := &Carousel{
		controller: controller,
		fetch:      fetch,
		pages:      pages,
		cache:      make(map[int]image.Image),
	}
	c.display = fynecanvas.NewImageFromImage(nil)
	c.display.FillMode = fynecanvas.ImageFillContain
	c.display.SetMinSize(fyne.NewSize(420, 560))
	c.ExtendBaseWidget(c)
	c.showPage(0)
	return c
}

// CreateRenderer implements fyne.Widget.
func (c *Carousel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.display)
}

// SlideTo animates the carousel to the given slide. This is the command
// surface the controller uses for dock-driven repositioning; it does not
// report a settle back, which is what keeps the update cycle loop-free.
func (c *Carousel) SlideTo(index int) {
	c.showPage(index)
}

// Current returns the slide the carousel is showing.
func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Dragged accumulates horizontal swipe distance.
func (c *Carousel) Dragged(ev *fyne.DragEvent) {
	c.dragX += ev.Dragged.DX
}

// DragEnd resolves the swipe: past the threshold it turns one page and
// reports the settle to the controller.
func (c *Carousel) DragEnd() {
	dx := c.dragX
	c.dragX = 0

	c.mu.Lock()
	c.lastGesture = time.Now()
	target := c.current
	c.mu.Unlock()

	switch {
	case dx < -swipeThreshold:
		target++
	case dx > swipeThreshold:
		target--
	default:
		return
	}
	if target < 0 || target >= len(c.pages) {
		return
	}

	c.showPage(target)
	c.controller.CarouselSettled(target)
}

// Tapped is required for the widget to receive drag events on all platforms.
func (c *Carousel) Tapped(*fyne.PointEvent) {}

// StartAutoplay turns pages automatically at the given interval, skipping
// beats while the user is interacting. Stops at the back cover.
func (c *Carousel) StartAutoplay(interval time.Duration) {
	c.StopAutoplay()
	c.autoplay = time.NewTicker(interval)
	c.autoplayStop = make(chan struct{})

	go func(ticker *time.Ticker, stop chan struct{}) {
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				recent := time.Since(c.lastGesture) < interval
				next := c.current + 1
				c.mu.Unlock()

				if recent || next >= len(c.pages) {
					continue
				}
				c.showPage(next)
				c.controller.CarouselSettled(next)
			}
		}
	}(c.autoplay, c.autoplayStop)
}

// StopAutoplay halts automatic page turning.
func (c *Carousel) StopAutoplay() {
	if c.autoplay != nil {
		c.autoplay.Stop()
		close(c.autoplayStop)
		c.autoplay = nil
	}
}

// showPage switches the displayed slide, loading the image on first view.
func (c *Carousel) showPage(index int) {
	if index < 0 || index >= len(c.pages) {
		return
	}

	c.mu.Lock()
	c.current = index
	img, ok := c.cache[index]
	url := c.pages[index]
	c.mu.Unlock()

	if ok {
		c.display.Image = img
		c.display.Refresh()
		return
	}

	// First view of this page: fetch and decode off the UI thread.
	go func() {
		data, err := c.fetch(url)
		if err != nil {
			log.Printf("page %d fetch failed: %v", index, err)
			return
		}
		decoded, err := crop.Decode(bytes.NewReader(data))
		if err != nil {
			log.Printf("page %d decode failed: %v", index, err)
			return
		}

		c.mu.Lock()
		c.cache[index] = decoded
		stillCurrent := c.current == index
		c.mu.Unlock()

		if stillCurrent {
			c.display.Image = decoded
			c.display.Refresh()
		}
	}()
}
