package facebench

import (
	"image"
	"sync"

	"github.com/esimov/facebench/utils"
)

// rgbToGrayscale converts an image to grayscale mode and
// returns the pixel values as an one dimensional array.
func rgbToGrayscale(src *image.NRGBA) []uint8 {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, width*height)

	grayRows(src, gray, 0, height)
	return gray
}

// rgbToGrayscaleParallel produces the same output as rgbToGrayscale, but the
// rows are split into bands and each band is converted on its own goroutine.
func rgbToGrayscaleParallel(src *image.NRGBA, workers int) []uint8 {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, width*height)

	workers = utils.Min(workers, height)
	if workers <= 1 {
		grayRows(src, gray, 0, height)
		return gray
	}

	rowsPerWorker := height / workers
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if w == workers-1 {
			endY = height
		}

		wg.Add(1)
		go func(startY, endY int) {
			defer wg.Done()
			grayRows(src, gray, startY, endY)
		}(startY, endY)
	}
	wg.Wait()

	return gray
}

// grayRows writes the luma of the rows in [startY, endY) into gray.
// Each call touches a disjoint part of gray, so bands can run concurrently.
func grayRows(src *image.NRGBA, gray []uint8, startY, endY int) {
	width := src.Bounds().Dx()
	minX, minY := src.Bounds().Min.X, src.Bounds().Min.Y

	for y := startY; y < endY; y++ {
		si := src.PixOffset(minX, minY+y)
		di := y * width
		for x := 0; x < width; x++ {
			r := uint32(src.Pix[si+0]) * 0x101
			g := uint32(src.Pix[si+1]) * 0x101
			b := uint32(src.Pix[si+2]) * 0x101

			gray[di+x] = uint8(
				(0.299*float64(r) +
					0.587*float64(g) +
					0.114*float64(b)) / 256,
			)
			si += 4
		}
	}
}
