// Command croptool crops a banner image headlessly and reports the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"menubook/internal/banner"
	"menubook/internal/crop"
)

func main() {
	in := flag.String("in", "", "Path to source image (JPEG, PNG, GIF, TIFF, or WebP)")
	out := flag.String("out", "", "Path for the cropped JPEG (optional)")
	slotName := flag.String("slot", "main", "Banner slot: main, sideTop, or sideBottom")
	cx := flag.Float64("x", 0.5, "Selection center X, normalized 0-1")
	cy := flag.Float64("y", 0.5, "Selection center Y, normalized 0-1")
	zoom := flag.Float64("zoom", 1.0, "Zoom factor, 1.0-3.0")
	flag.Parse()

	if *in == "" {
		fmt.Println("Usage: croptool -in <path> [-slot main|sideTop|sideBottom] [-x 0.5] [-y 0.5] [-zoom 1.0] [-out cropped.jpg]")
		os.Exit(1)
	}

	var slot banner.Slot
	switch *slotName {
	case "main":
		slot = banner.SlotMain
	case "sideTop":
		slot = banner.SlotSideTop
	case "sideBottom":
		slot = banner.SlotSideBottom
	default:
		fmt.Fprintf(os.Stderr, "Unknown slot %q\n", *slotName)
		os.Exit(1)
	}

	img, err := crop.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())
	fmt.Printf("Slot: %s (aspect %.4f)\n", slot, slot.Aspect())

	sel := crop.NewSelection(slot.Aspect()).WithZoom(*zoom).WithCenter(*cx, *cy)
	rect := sel.PixelRect(bounds.Dx(), bounds.Dy())
	fmt.Printf("Selection: zoom %.2f, center (%.3f, %.3f)\n", sel.Zoom, sel.CX, sel.CY)
	fmt.Printf("Crop rect: %dx%d at (%d, %d)\n", rect.Width, rect.Height, rect.X, rect.Y)

	result, err := crop.Crop(img, rect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crop failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Output: %dx%d, %d bytes JPEG\n", result.Width, result.Height, len(result.JPEG))
	fmt.Printf("Suggested background: %s\n", crop.SuggestBackground(img, rect))

	if *out != "" {
		if err := os.WriteFile(*out, result.JPEG, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *out)
	}
}
