// Package crop turns a source image and an aspect-locked selection into a
// pixel-exact JPEG raster ready for upload.
package crop

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode indicates the source image could not be decoded (corrupt data,
// unsupported format, truncated download). The draft is never mutated when
// this is returned.
var ErrDecode = errors.New("image decode failed")

// Open loads and decodes a source image from disk.
func Open(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDecode, path, err)
	}
	defer file.Close()

	img, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode decodes a source image from a reader. JPEG, PNG, GIF, TIFF, and
// WebP are accepted.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
