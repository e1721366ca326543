package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"menubook/internal/api"
	"menubook/internal/banner"
	"menubook/internal/menu"
)

func testServer(t *testing.T, saveStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/restaurants", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"a1","name":"Grill Town","slug":"grill-town"}]`))
	})
	mux.HandleFunc("/api/restaurants/grill-town", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"a1","name":"Grill Town","slug":"grill-town","isActive":true,
			"banners":{"main":{"title":"Feast"}}}`))
	})
	mux.HandleFunc("/api/restaurants/update-banners/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(saveStatus)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRefreshRestaurants(t *testing.T) {
	srv := testServer(t, http.StatusOK)
	s := NewState(api.NewClient(srv.URL))

	var seen []menu.ListItem
	s.On(EventRestaurantListLoaded, func(data interface{}) {
		if list, ok := data.([]menu.ListItem); ok {
			seen = list
		}
	})

	if err := s.RefreshRestaurants(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0].Slug != "grill-town" {
		t.Errorf("event payload = %+v", seen)
	}
	if len(s.Restaurants) != 1 {
		t.Errorf("Restaurants = %+v", s.Restaurants)
	}
}

func TestSelectRestaurantLoadsDraft(t *testing.T) {
	srv := testServer(t, http.StatusOK)
	s := NewState(api.NewClient(srv.URL))

	loaded := false
	s.On(EventRestaurantLoaded, func(interface{}) { loaded = true })

	if err := s.SelectRestaurant(context.Background(), "grill-town"); err != nil {
		t.Fatal(err)
	}
	if !loaded {
		t.Error("EventRestaurantLoaded not emitted")
	}
	if got := s.Draft.Subject(); got != "grill-town" {
		t.Errorf("draft subject = %q", got)
	}
	if got := s.Draft.Fields(banner.SlotMain).Title; got != "Feast" {
		t.Errorf("draft title = %q", got)
	}
	if rec := s.CurrentRecord(); rec == nil || rec.ID != "a1" {
		t.Errorf("CurrentRecord = %+v", rec)
	}
}

func TestSelectRestaurantUnknownSlug(t *testing.T) {
	srv := testServer(t, http.StatusOK)
	s := NewState(api.NewClient(srv.URL))

	var failure error
	s.On(EventRestaurantLoadFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			failure = err
		}
	})

	err := s.SelectRestaurant(context.Background(), "no-such-place")
	if !errors.Is(err, api.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if !errors.Is(failure, api.ErrNotFound) {
		t.Errorf("event payload = %v, want ErrNotFound", failure)
	}
}

func TestSelectRestaurantStaleFailureDiscarded(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/restaurants/grill-town", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"a1","name":"Grill Town","slug":"grill-town","isActive":true}`))
	})
	mux.HandleFunc("/api/restaurants/phantom", func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := NewState(api.NewClient(srv.URL))

	var failure error
	s.On(EventRestaurantLoadFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			failure = err
		}
	})

	done := make(chan error, 1)
	go func() { done <- s.SelectRestaurant(context.Background(), "phantom") }()

	// Move on to another restaurant while the first fetch is still in flight,
	// then let the first one fail.
	<-arrived
	if err := s.SelectRestaurant(context.Background(), "grill-town"); err != nil {
		t.Fatal(err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Errorf("superseded selection returned %v, want nil", err)
	}
	if failure != nil {
		t.Errorf("stale failure emitted: %v", failure)
	}
	if rec := s.CurrentRecord(); rec == nil || rec.Slug != "grill-town" {
		t.Errorf("CurrentRecord = %+v", rec)
	}
}

func TestSaveBannersSuccess(t *testing.T) {
	srv := testServer(t, http.StatusOK)
	s := NewState(api.NewClient(srv.URL))
	if err := s.SelectRestaurant(context.Background(), "grill-town"); err != nil {
		t.Fatal(err)
	}

	saved := false
	s.On(EventSaveSucceeded, func(interface{}) { saved = true })

	if err := s.SaveBanners(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !saved {
		t.Error("EventSaveSucceeded not emitted")
	}
	if s.Unverified {
		t.Error("Unverified set after successful save")
	}
}

func TestSaveBannersFailureMarksUnverified(t *testing.T) {
	srv := testServer(t, http.StatusInternalServerError)
	s := NewState(api.NewClient(srv.URL))
	if err := s.SelectRestaurant(context.Background(), "grill-town"); err != nil {
		t.Fatal(err)
	}

	// Draft edits must survive the failure for retry.
	if err := s.Draft.SetField(banner.SlotMain, banner.FieldSubtitle, "unsent"); err != nil {
		t.Fatal(err)
	}

	var failure error
	s.On(EventSaveFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			failure = err
		}
	})

	err := s.SaveBanners(context.Background())
	if !errors.Is(err, api.ErrSaveFailed) {
		t.Fatalf("error = %v, want ErrSaveFailed", err)
	}
	if !errors.Is(failure, api.ErrSaveFailed) {
		t.Errorf("event payload = %v", failure)
	}
	if !s.Unverified {
		t.Error("Unverified not set after failed save")
	}
	if got := s.Draft.Fields(banner.SlotMain).Subtitle; got != "unsent" {
		t.Errorf("draft edit lost on failure: %q", got)
	}

	// A successful re-fetch clears the flag.
	if err := s.SelectRestaurant(context.Background(), "grill-town"); err != nil {
		t.Fatal(err)
	}
	if s.Unverified {
		t.Error("Unverified not cleared by re-fetch")
	}
}

func TestSaveBannersNoSubject(t *testing.T) {
	srv := testServer(t, http.StatusOK)
	s := NewState(api.NewClient(srv.URL))

	emitted := false
	s.On(EventSaveSucceeded, func(interface{}) { emitted = true })
	s.On(EventSaveFailed, func(interface{}) { emitted = true })

	if err := s.SaveBanners(context.Background()); err != nil {
		t.Fatal(err)
	}
	if emitted {
		t.Error("save with no subject emitted an event")
	}
}
