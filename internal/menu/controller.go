package menu

import (
	"sync"
)

// Carousel is the narrow command surface the controller needs from the page
// carousel: the ability to animate to a given slide.
type Carousel interface {
	SlideTo(index int)
}

// PageObserver is notified after the shared page index changes.
type PageObserver func(index int)

// PageController owns the single page index shared by the carousel and the
// navigation dock. Both surfaces report user interaction to the controller
// and re-render from its state; the controller is the only writer.
//
// The anti-loop rule: a carousel settle updates shared state but never
// commands the carousel, and a dock selection commands the carousel only
// when the carousel's own last-reported index differs from the target. This
// keeps every external event bounded to at most one corrective command.
type PageController struct {
	mu sync.Mutex

	pageCount int
	page      int

	// The slide index the carousel itself last reported. Dock-driven
	// repositioning compares against this, not against page, so a settle
	// that already produced the target index is not re-animated.
	lastCarousel int

	carousel  Carousel
	observers []PageObserver
}

// NewPageController creates a controller for a book with pageCount pages,
// starting at the cover (index 0).
func NewPageController(pageCount int) *PageController {
	return &PageController{pageCount: pageCount}
}

// AttachCarousel injects the carousel command surface. May be nil during
// tests or before the viewer is mounted.
func (c *PageController) AttachCarousel(car Carousel) {
	c.mu.Lock()
	c.carousel = car
	c.mu.Unlock()
}

// OnPageChange registers an observer. Observers run synchronously, in
// registration order, outside the controller lock.
func (c *PageController) OnPageChange(obs PageObserver) {
	c.mu.Lock()
	c.observers = append(c.observers, obs)
	c.mu.Unlock()
}

// Page returns the current shared page index.
func (c *PageController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageCount returns the number of pages in the current book.
func (c *PageController) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageCount
}

// SetPage clamps index into range and updates shared state. Setting the
// current value is a no-op; otherwise every observer is notified exactly once.
func (c *PageController) SetPage(index int) {
	c.mu.Lock()
	index = c.clamp(index)
	if c.pageCount == 0 || index == c.page {
		c.mu.Unlock()
		return
	}
	c.page = index
	observers := make([]PageObserver, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, obs := range observers {
		obs(index)
	}
}

// CarouselSettled is called when a gesture-driven scroll settles on a slide.
// The carousel is the source of truth here: shared state follows it, and no
// slide command is issued back in the same pass.
func (c *PageController) CarouselSettled(index int) {
	c.mu.Lock()
	c.lastCarousel = c.clamp(index)
	c.mu.Unlock()
	c.SetPage(index)
}

// DockSelected is called on an explicit page-button press. Updates shared
// state, then commands the carousel to animate there if the carousel is not
// already on that slide.
func (c *PageController) DockSelected(index int) {
	c.SetPage(index)

	c.mu.Lock()
	index = c.clamp(index)
	car := c.carousel
	needSlide := car != nil && c.lastCarousel != index
	if needSlide {
		c.lastCarousel = index
	}
	c.mu.Unlock()

	if needSlide {
		car.SlideTo(index)
	}
}

// Reset reconfigures the controller for a new book and returns to the cover.
// Observers are notified if the index actually moved.
func (c *PageController) Reset(pageCount int) {
	c.mu.Lock()
	c.pageCount = pageCount
	c.lastCarousel = 0
	moved := c.page != 0
	c.page = 0
	observers := make([]PageObserver, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	if moved {
		for _, obs := range observers {
			obs(0)
		}
	}
}

// Close detaches all observers and the carousel. Called when the viewer is
// unmounted.
func (c *PageController) Close() {
	c.mu.Lock()
	c.observers = nil
	c.carousel = nil
	c.mu.Unlock()
}

// clamp restricts index to [0, pageCount-1]. Caller must hold the lock.
func (c *PageController) clamp(index int) int {
	if index < 0 {
		return 0
	}
	if c.pageCount > 0 && index >= c.pageCount {
		return c.pageCount - 1
	}
	return index
}
