package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"menubook/internal/banner"
	"menubook/internal/menu"
)

func TestRestaurants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/restaurants" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"a1","name":"Grill Town","slug":"grill-town"},
			{"_id":"b2","name":"Sea Breeze","slug":"sea-breeze"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	list, err := c.Restaurants(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d items, want 2", len(list))
	}
	if list[0].Slug != "grill-town" || list[1].Name != "Sea Breeze" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestRestaurantFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/restaurants/grill-town" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"_id": "a1",
			"name": "Grill Town",
			"slug": "grill-town",
			"isActive": true,
			"book": {"coverUrl": "c.jpg", "backUrl": "b.jpg", "pages": ["1.jpg"]},
			"banners": {"main": {"title": "Feast", "bgColor": "#112233", "image": "m.jpg"}}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	rec, err := c.Restaurant(context.Background(), "grill-town")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Name != "Grill Town" || !rec.IsActive {
		t.Errorf("record = %+v", rec)
	}
	if rec.Book.CoverURL != "c.jpg" || len(rec.Book.Pages) != 1 {
		t.Errorf("book = %+v", rec.Book)
	}
	if rec.Banners.Main == nil || rec.Banners.Main.Title != "Feast" {
		t.Errorf("banners = %+v", rec.Banners)
	}
	if rec.Banners.SideTop != nil {
		t.Error("absent sideTop should decode as nil")
	}

	_, err = c.Restaurant(context.Background(), "no-such-place")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown slug error = %v, want ErrNotFound", err)
	}
}

func TestUpdateBanners(t *testing.T) {
	reg := banner.NewPreviewRegistry()
	d := banner.NewDraft(reg)
	d.LoadRecord("grill-town", menu.Banners{})
	blob := []byte("jpeg-bytes")
	if err := d.ApplyCroppedAsset(banner.SlotMain, reg.Mint(blob), blob); err != nil {
		t.Fatal(err)
	}
	payload, err := banner.BuildPayload(d)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/restaurants/update-banners/grill-town" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if got := r.FormValue("mainBg"); got != "#EAB308" {
			t.Errorf("mainBg = %q", got)
		}
		if _, hdr, err := r.FormFile("mainImage"); err != nil {
			t.Errorf("mainImage: %v", err)
		} else if hdr.Filename != "main.jpg" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.UpdateBanners(context.Background(), "grill-town", payload); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateBannersServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := banner.NewDraft(banner.NewPreviewRegistry())
	d.LoadRecord("grill-town", menu.Banners{})
	payload, err := banner.BuildPayload(d)
	if err != nil {
		t.Fatal(err)
	}

	c := NewClient(srv.URL)
	err = c.UpdateBanners(context.Background(), "grill-town", payload)
	if !errors.Is(err, ErrSaveFailed) {
		t.Errorf("error = %v, want ErrSaveFailed", err)
	}
}

func TestUpdateBannersConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening

	d := banner.NewDraft(banner.NewPreviewRegistry())
	d.LoadRecord("grill-town", menu.Banners{})
	payload, err := banner.BuildPayload(d)
	if err != nil {
		t.Fatal(err)
	}

	c := NewClient(srv.URL)
	err = c.UpdateBanners(context.Background(), "grill-town", payload)
	if !errors.Is(err, ErrSaveFailed) {
		t.Errorf("error = %v, want ErrSaveFailed", err)
	}
}

func TestUpdateDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/restaurants/update-details/a1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content type = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.UpdateDetails(context.Background(), "a1", menu.Details{Name: "Grill Town"})
	if err != nil {
		t.Fatal(err)
	}
}

func TestToggleStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/restaurants/grill-town/toggle-status" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.ToggleStatus(context.Background(), "grill-town"); err != nil {
		t.Fatal(err)
	}
}

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/restaurants/create" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if got := r.FormValue("name"); got != "Sea Breeze" {
			t.Errorf("name = %q", got)
		}
		if got := r.FormValue("ratio"); got != "0.75" {
			t.Errorf("ratio = %q", got)
		}
		if r.MultipartForm == nil || len(r.MultipartForm.File["pages"]) != 2 {
			t.Error("expected 2 page uploads")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"c3"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	id, err := c.Create(context.Background(), CreateRequest{
		Name:           "Sea Breeze",
		WhatsappNumber: "971500000000",
		Ratio:          0.75,
		Logo:           &FileUpload{Filename: "logo.png", Data: []byte("logo")},
		Pages: []FileUpload{
			{Filename: "p1.jpg", Data: []byte("one")},
			{Filename: "p2.jpg", Data: []byte("two")},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "c3" {
		t.Errorf("id = %q, want c3", id)
	}
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/m.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	data, err := c.FetchImage(context.Background(), srv.URL+"/assets/m.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("data = %q", data)
	}

	if _, err := c.FetchImage(context.Background(), srv.URL+"/assets/missing.jpg"); err == nil {
		t.Error("expected error for missing image")
	}
}
