package banner

import (
	"sync"

	"github.com/google/uuid"
)

// PreviewRegistry holds in-memory preview rasters keyed by handle. It is the
// Go analog of object URLs: every minted handle must be released when it is
// superseded or the editing session ends, or the encoded bytes accumulate
// for as long as the studio stays open.
type PreviewRegistry struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	minted   int
	released int
}

// NewPreviewRegistry creates an empty registry.
func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{blobs: make(map[string][]byte)}
}

// Mint stores blob and returns its handle.
func (pr *PreviewRegistry) Mint(blob []byte) string {
	handle := uuid.NewString()
	pr.mu.Lock()
	pr.blobs[handle] = blob
	pr.minted++
	pr.mu.Unlock()
	return handle
}

// Get returns the blob for a handle, or nil if it was released.
func (pr *PreviewRegistry) Get(handle string) []byte {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.blobs[handle]
}

// Release drops the blob for a handle. Releasing an unknown or already
// released handle is a no-op.
func (pr *PreviewRegistry) Release(handle string) {
	if handle == "" {
		return
	}
	pr.mu.Lock()
	if _, ok := pr.blobs[handle]; ok {
		delete(pr.blobs, handle)
		pr.released++
	}
	pr.mu.Unlock()
}

// Len returns the number of live previews.
func (pr *PreviewRegistry) Len() int {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return len(pr.blobs)
}

// Counts returns how many previews were ever minted and released. Tests use
// this to assert that superseded previews are not leaked.
func (pr *PreviewRegistry) Counts() (minted, released int) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.minted, pr.released
}
