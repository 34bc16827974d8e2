package facebench

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	imgWidth  = 37
	imgHeight = 23
)

func makeTexturedImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x*7 + y),
				G: uint8(y*11 + x*x),
				B: uint8(x ^ y),
				A: 0xff,
			})
		}
	}
	return img
}

func TestGrayscale_ShouldComputeLuma(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{177, 177, 177, 255})
	img.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(3, 0, color.NRGBA{0, 0, 255, 255})

	gray := rgbToGrayscale(img)
	assert.Equal(t, []uint8{177, 76, 150, 29}, gray)
}

func TestGrayscale_ParallelShouldMatchSerial(t *testing.T) {
	img := makeTexturedImage(imgWidth, imgHeight)
	want := rgbToGrayscale(img)

	for _, workers := range []int{0, 1, 2, 3, 8, imgHeight, 100} {
		got := rgbToGrayscaleParallel(img, workers)
		assert.Equal(t, want, got, "workers: %d", workers)
	}
}

func TestGrayscale_ShouldHandleSubImages(t *testing.T) {
	img := makeTexturedImage(imgWidth, imgHeight)
	sub := img.SubImage(image.Rect(5, 3, 25, 20)).(*image.NRGBA)

	gray := rgbToGrayscaleParallel(sub, 4)
	assert.Len(t, gray, 20*17)
	assert.Equal(t, rgbToGrayscale(imgToNRGBA(sub)), gray)
}

func BenchmarkGrayscale_Serial(b *testing.B) {
	img := makeTexturedImage(1024, 768)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rgbToGrayscale(img)
	}
}

func BenchmarkGrayscale_Parallel(b *testing.B) {
	img := makeTexturedImage(1024, 768)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rgbToGrayscaleParallel(img, 8)
	}
}
