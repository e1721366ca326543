package crop

import (
	"image"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
)

// imageToMat converts a Go image.Image to a BGR gocv.Mat, parallelized by
// horizontal stripes. Menu photos routinely come off phone cameras at 4000px
// wide, so the per-pixel copy is worth spreading across cores.
func imageToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	numWorkers := runtime.NumCPU()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= height {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				for x := 0; x < width; x++ {
					r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
					// OpenCV uses BGR order
					mat.SetUCharAt(y, x*3+0, uint8(b>>8))
					mat.SetUCharAt(y, x*3+1, uint8(g>>8))
					mat.SetUCharAt(y, x*3+2, uint8(r>>8))
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return mat
}

// matToImage converts a BGR gocv.Mat back to a Go image.Image.
func matToImage(mat gocv.Mat) image.Image {
	h := mat.Rows()
	w := mat.Cols()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stride := img.Stride

	numWorkers := runtime.NumCPU()
	rowsPerWorker := (h + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for worker := 0; worker < numWorkers; worker++ {
		startY := worker * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > h {
			endY = h
		}
		if startY >= h {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				rowOffset := y * stride
				for x := 0; x < w; x++ {
					pixOffset := rowOffset + x*4
					img.Pix[pixOffset+0] = mat.GetUCharAt(y, x*3+2) // R
					img.Pix[pixOffset+1] = mat.GetUCharAt(y, x*3+1) // G
					img.Pix[pixOffset+2] = mat.GetUCharAt(y, x*3+0) // B
					img.Pix[pixOffset+3] = 255
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return img
}
