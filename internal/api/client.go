// Package api is the HTTP client for the restaurant backend. The backend is
// an opaque collaborator: this package owns only the wire contract and the
// error taxonomy, never business state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"menubook/internal/banner"
	"menubook/internal/menu"
)

var (
	// ErrNotFound means the identifier did not resolve. Terminal for the
	// requesting view.
	ErrNotFound = errors.New("restaurant not found")

	// ErrSaveFailed wraps any network or server failure during a write. The
	// client cannot know whether the server applied part of the write, so
	// callers must re-fetch before trusting their local view again.
	ErrSaveFailed = errors.New("save failed")
)

// Client talks to the restaurant backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://192.168.1.89:5000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithHTTP creates a client with a caller-supplied http.Client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, http: hc}
}

// Restaurants returns the list of restaurants for selection dropdowns.
func (c *Client) Restaurants(ctx context.Context) ([]menu.ListItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/restaurants", nil)
	if err != nil {
		return nil, err
	}
	var list []menu.ListItem
	if err := c.doJSON(req, &list); err != nil {
		return nil, fmt.Errorf("fetch restaurant list: %w", err)
	}
	return list, nil
}

// Restaurant fetches the full record for a slug. A 404 is ErrNotFound.
func (c *Client) Restaurant(ctx context.Context, slug string) (*menu.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/restaurants/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}
	var rec menu.Record
	if err := c.doJSON(req, &rec); err != nil {
		return nil, fmt.Errorf("fetch restaurant %s: %w", slug, err)
	}
	return &rec, nil
}

// UpdateBanners submits one atomic banner payload for a slug. Any failure is
// reported as ErrSaveFailed; the caller's draft state must stay intact so
// the operator can retry without re-entering anything.
func (c *Client) UpdateBanners(ctx context.Context, slug string, payload *banner.Payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/api/restaurants/update-banners/"+url.PathEscape(slug),
		bytes.NewReader(payload.Body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", payload.ContentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: server returned %s", ErrSaveFailed, resp.Status)
	}
	return nil
}

// UpdateDetails replaces the full metadata object for a restaurant id.
func (c *Client) UpdateDetails(ctx context.Context, id string, details menu.Details) error {
	body, err := json.Marshal(details)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/api/restaurants/update-details/"+url.PathEscape(id),
		bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: server returned %s", ErrSaveFailed, resp.Status)
	}
	return nil
}

// ToggleStatus flips a restaurant's active flag.
func (c *Client) ToggleStatus(ctx context.Context, slug string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/api/restaurants/"+url.PathEscape(slug)+"/toggle-status", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: server returned %s", ErrSaveFailed, resp.Status)
	}
	return nil
}

// FetchImage downloads a remote image (menu page, logo, existing banner).
func (c *Client) FetchImage(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image %s: server returned %s", rawURL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// doJSON executes the request and decodes a JSON body into out.
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
