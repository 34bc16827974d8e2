package facebench

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/facebench/utils"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// faceColor is the outline color used for the detected faces.
var faceColor = color.NRGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}

// faceThickness is the outline width in pixels.
const faceThickness = 2

// decodeImg decodes an image file to type *image.NRGBA.
func decodeImg(src string) (*image.NRGBA, error) {
	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%w: %s is not an image file (%s)", ErrImageDecode, src, ctype)
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, src, err)
	}
	return imgToNRGBA(img), nil
}

// encodeImg saves the image as JPEG with the provided quality.
func encodeImg(dst string, img image.Image, quality int) error {
	if err := imaging.Save(img, dst, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("unable to save %s: %w", dst, err)
	}
	return nil
}

// drawFaces outlines every rectangle on the image in place.
func drawFaces(img *image.NRGBA, rects []image.Rectangle) {
	for _, r := range rects {
		drawRect(img, r, faceColor, faceThickness)
	}
}

// drawRect draws the outline of r centered on its edges, clipped to the image bounds.
func drawRect(img *image.NRGBA, r image.Rectangle, c color.Color, thickness int) {
	half := thickness / 2
	outer := r.Inset(-half)
	inner := outer.Inset(thickness)
	src := &image.Uniform{C: c}

	edges := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), // top
		image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), // bottom
		image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), // left
		image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), // right
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}

// cropFace returns the part of the image covered by r.
// The second value is false when r lies completely outside of the image.
func cropFace(img *image.NRGBA, r image.Rectangle) (*image.NRGBA, bool) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, false
	}
	return imaging.Crop(img, r), true
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := srcBounds.Dx() * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
