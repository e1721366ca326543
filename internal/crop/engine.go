package crop

import (
	"fmt"
	"image"

	"menubook/pkg/geometry"

	"gocv.io/x/gocv"
)

// jpegQuality is the fixed encode quality for cropped assets. High enough to
// keep menu text legible, low enough to bound upload size.
const jpegQuality = 95

// Result is the output of one crop operation: the encoded raster plus its
// pixel dimensions (always equal to the requested rectangle's). Image holds
// the same pixels decoded, so callers can show a preview without round-
// tripping through the JPEG.
type Result struct {
	JPEG   []byte
	Image  image.Image
	Width  int
	Height int
}

// Crop renders exactly the pixels of rect from img into a JPEG of rect's own
// dimensions. No scaling or resampling happens here; the selection step has
// already locked the rectangle to the slot's aspect ratio.
func Crop(img image.Image, rect geometry.RectInt) (*Result, error) {
	bounds := img.Bounds()
	rect = rect.ClampTo(bounds.Dx(), bounds.Dy())
	if rect.Empty() {
		return nil, fmt.Errorf("empty crop rectangle")
	}

	mat := imageToMat(img)
	defer mat.Close()

	roi := mat.Region(image.Rect(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height))
	cropped := roi.Clone()
	roi.Close()
	defer cropped.Close()

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, cropped,
		[]int{gocv.IMWriteJpegQuality, jpegQuality})
	if err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())

	return &Result{
		JPEG:   data,
		Image:  matToImage(cropped),
		Width:  rect.Width,
		Height: rect.Height,
	}, nil
}
