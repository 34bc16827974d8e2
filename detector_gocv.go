//go:build gocv

package facebench

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

func init() {
	RegisterBackend("gocv", NewHaarDetector)
}

// HaarDetector runs an OpenCV Haar cascade through gocv.
type HaarDetector struct {
	classifier gocv.CascadeClassifier
}

// NewHaarDetector resolves the Haar cascade xml and loads it into a classifier.
func NewHaarDetector(cfg *CascadeConfig) (Detector, error) {
	path, err := resolveCascade(cfg, HaarCascadeName)
	if err != nil {
		return nil, err
	}
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeLoad, path)
	}
	return &HaarDetector{classifier: classifier}, nil
}

// Detect converts the image into a gray Mat and runs the multi-scale detection.
// OpenCV schedules its own threads, so the mode and the workers are not used here.
func (d *HaarDetector) Detect(img *image.NRGBA, _ Mode, _ int) ([]image.Rectangle, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("unable to convert the image to a Mat: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	return d.classifier.DetectMultiScale(gray), nil
}

// Close releases the native classifier.
func (d *HaarDetector) Close() error {
	return d.classifier.Close()
}
