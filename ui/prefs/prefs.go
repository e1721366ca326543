// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const prefsFile = "preferences.json"

// Well-known preference keys.
const (
	KeyServerURL       = "serverUrl"
	KeyLastSlug        = "lastSlug"
	KeyAutoplaySeconds = "autoplaySeconds"
	KeyWindowWidth     = "windowWidth"
	KeyWindowHeight    = "windowHeight"
	KeyLastImportDir   = "lastImportDirectory"
)

// DefaultServerURL is used until the operator configures a backend.
const DefaultServerURL = "http://localhost:5000"

// Prefs stores application preferences as a key-value map.
type Prefs struct {
	mu      sync.RWMutex
	values  map[string]interface{}
	path    string
	changed bool
}

// Load reads preferences from ~/.config/menubook/preferences.json.
// Returns a Prefs with defaults if the file doesn't exist.
func Load() *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	dir := filepath.Join(configDir, "menubook")
	p.path = filepath.Join(dir, prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, &p.values)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return err
	}

	p.mu.Lock()
	p.changed = false
	p.mu.Unlock()
	return nil
}

// SaveIfChanged writes preferences only if a setter ran since the last save.
func (p *Prefs) SaveIfChanged() error {
	p.mu.RLock()
	changed := p.changed
	p.mu.RUnlock()
	if !changed {
		return nil
	}
	return p.Save()
}

// String returns a string preference, or fallback if not set.
func (p *Prefs) String(key, fallback string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// SetString stores a string preference.
func (p *Prefs) SetString(key, val string) {
	p.mu.Lock()
	p.values[key] = val
	p.changed = true
	p.mu.Unlock()
}

// Float returns a float64 preference, or fallback if not set.
func (p *Prefs) Float(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return fallback
}

// SetFloat stores a float64 preference.
func (p *Prefs) SetFloat(key string, val float64) {
	p.mu.Lock()
	p.values[key] = val
	p.changed = true
	p.mu.Unlock()
}

// Bool returns a bool preference, or fallback if not set.
func (p *Prefs) Bool(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// SetBool stores a bool preference.
func (p *Prefs) SetBool(key string, val bool) {
	p.mu.Lock()
	p.values[key] = val
	p.changed = true
	p.mu.Unlock()
}
