// Package app provides application lifecycle management, shared state, and events.
package app

import (
	"context"
	"log"
	"sync"

	"menubook/internal/api"
	"menubook/internal/banner"
	"menubook/internal/menu"
)

// EventType identifies different application events.
type EventType int

const (
	EventRestaurantListLoaded EventType = iota
	EventRestaurantLoaded
	EventRestaurantLoadFailed
	EventDraftChanged
	EventSaveSucceeded
	EventSaveFailed
	EventStatusToggled
	EventRestaurantCreated
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the studio's shared state: the backend client, the restaurant
// list, the currently selected restaurant, and the banner draft for the
// active editing session.
type State struct {
	mu sync.RWMutex

	client *api.Client

	// Restaurant list for the selectors
	Restaurants []menu.ListItem

	// Currently selected restaurant (editing subject)
	Current *menu.Record

	// Slug of the most recent selection request; in-flight fetches compare
	// against this to detect staleness.
	pendingSlug string

	// Banner editing session
	Previews *banner.PreviewRegistry
	Draft    *banner.Draft

	// Set after a failed banner save: the server's state is unknown until
	// the next successful fetch, so the UI offers a reload.
	Unverified bool

	listeners map[EventType][]EventListener
}

// NewState creates application state backed by the given API client.
func NewState(client *api.Client) *State {
	previews := banner.NewPreviewRegistry()
	return &State{
		client:    client,
		Previews:  previews,
		Draft:     banner.NewDraft(previews),
		listeners: make(map[EventType][]EventListener),
	}
}

// Client returns the backend API client.
func (s *State) Client() *api.Client {
	return s.client
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// RefreshRestaurants fetches the restaurant list. Blocking; run from a
// goroutine off the UI thread.
func (s *State) RefreshRestaurants(ctx context.Context) error {
	list, err := s.client.Restaurants(ctx)
	if err != nil {
		log.Printf("restaurant list fetch failed: %v", err)
		return err
	}

	s.mu.Lock()
	s.Restaurants = list
	s.mu.Unlock()

	s.Emit(EventRestaurantListLoaded, list)
	return nil
}

// SelectRestaurant fetches slug's record and resets the banner draft to its
// server state. Blocking; run from a goroutine off the UI thread. If a
// different restaurant was selected while the fetch was in flight, the
// result is discarded silently.
func (s *State) SelectRestaurant(ctx context.Context, slug string) error {
	s.mu.Lock()
	s.pendingSlug = slug
	s.mu.Unlock()

	rec, err := s.client.Restaurant(ctx, slug)
	if err != nil {
		s.mu.Lock()
		superseded := s.pendingSlug != slug
		s.mu.Unlock()
		if superseded {
			// A newer selection owns the status line now.
			return nil
		}
		s.Emit(EventRestaurantLoadFailed, err)
		return err
	}

	s.mu.Lock()
	if s.pendingSlug != slug {
		// Operator moved on while we were fetching.
		s.mu.Unlock()
		return nil
	}
	s.Current = rec
	s.Unverified = false
	s.mu.Unlock()

	s.Draft.LoadRecord(slug, rec.Banners)
	s.Emit(EventRestaurantLoaded, rec)
	return nil
}

// CurrentRecord returns the selected restaurant record, or nil.
func (s *State) CurrentRecord() *menu.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Current
}

// SaveBanners packages the draft and submits it atomically. On failure the
// draft is left untouched so the operator can retry, and the state is marked
// unverified until the next successful fetch. Blocking; run from a goroutine.
func (s *State) SaveBanners(ctx context.Context) error {
	subject := s.Draft.Subject()
	if subject == "" {
		return nil
	}

	payload, err := banner.BuildPayload(s.Draft)
	if err != nil {
		s.Emit(EventSaveFailed, err)
		return err
	}

	if err := s.client.UpdateBanners(ctx, subject, payload); err != nil {
		s.mu.Lock()
		s.Unverified = true
		s.mu.Unlock()
		s.Emit(EventSaveFailed, err)
		return err
	}

	// Guard against the operator having switched subjects mid-submit: the
	// success applies to the captured subject, not necessarily the current one.
	if s.Draft.Subject() == subject {
		s.Emit(EventSaveSucceeded, subject)
	}
	return nil
}

// CloseSession releases the draft's previews. Called at shutdown.
func (s *State) CloseSession() {
	s.Draft.Close()
}
