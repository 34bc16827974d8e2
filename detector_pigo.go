package facebench

import (
	"fmt"
	"image"
	"os"

	"github.com/esimov/facebench/utils"
	pigo "github.com/esimov/pigo/core"
)

func init() {
	RegisterBackend("pigo", NewPigoDetector)
}

// PigoDetector runs the pigo pixel intensity comparison cascade.
type PigoDetector struct {
	classifier *pigo.Pigo
	params     CascadeConfig
}

// NewPigoDetector resolves the cascade file and unpacks it.
func NewPigoDetector(cfg *CascadeConfig) (Detector, error) {
	path, err := resolveCascade(cfg, PigoCascadeName)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCascadeLoad, err)
	}
	det, err := newPigoDetector(data, cfg)
	if err != nil {
		return nil, err
	}
	return det, nil
}

func newPigoDetector(data []byte, cfg *CascadeConfig) (det *PigoDetector, err error) {
	// Unpack indexes into the packet without bound checks,
	// so a truncated cascade file shows up as a panic.
	defer func() {
		if r := recover(); r != nil {
			det, err = nil, fmt.Errorf("%w: malformed cascade data: %v", ErrCascadeLoad, r)
		}
	}()

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCascadeLoad, err)
	}
	return &PigoDetector{
		classifier: classifier,
		params:     *cfg,
	}, nil
}

// Detect converts the image to grayscale and runs the classifier over it.
// The returned rectangles follow the cluster order produced by pigo.
func (d *PigoDetector) Detect(img *image.NRGBA, mode Mode, workers int) ([]image.Rectangle, error) {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	var pixels []uint8
	if mode == Parallel {
		pixels = rgbToGrayscaleParallel(img, workers)
	} else {
		pixels = rgbToGrayscale(img)
	}

	maxSize := d.params.MaxSize
	if maxSize == 0 {
		maxSize = utils.Max(dx, dy)
	}

	cParams := pigo.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,

		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	// The result contains quadruplets representing the row, column, scale and detection score.
	faces := d.classifier.RunCascade(cParams, d.params.Angle)
	faces = d.classifier.ClusterDetections(faces, d.params.IoUThreshold)

	rects := make([]image.Rectangle, 0, len(faces))
	for _, face := range faces {
		if face.Q < d.params.MinQuality {
			continue
		}
		rects = append(rects, image.Rect(
			face.Col-face.Scale/2,
			face.Row-face.Scale/2,
			face.Col+face.Scale/2,
			face.Row+face.Scale/2,
		))
	}
	return rects, nil
}

// Close is a no-op, the classifier holds no external resources.
func (d *PigoDetector) Close() error { return nil }
