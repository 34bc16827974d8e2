package facebench

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/esimov/facebench/utils"
	"golang.org/x/sync/errgroup"
)

// PassResult holds the outcome of a single detection pass.
type PassResult struct {
	Mode    Mode
	Elapsed time.Duration
	Faces   []image.Rectangle
	// Files lists the written images: the annotated image first, then the crops in detection order.
	Files []string
	Err   error
}

// AnnotatedName returns the file name of the annotated image written by a pass.
func AnnotatedName(mode Mode) string {
	return fmt.Sprintf("rostros_detectados_%s.jpg", mode)
}

// FaceName returns the file name of the i-th face crop written by a pass.
func FaceName(mode Mode, i int) string {
	return fmt.Sprintf("rostro_%s_%d.jpg", mode, i)
}

// RunPass times a full load, detect, annotate and save cycle over the source image.
// Failures are logged and stored in the result; the elapsed time is recorded regardless.
func (b *Bench) RunPass(ctx context.Context, mode Mode, src string) PassResult {
	res := PassResult{Mode: mode}

	start := b.now()
	res.Faces, res.Files, res.Err = b.pass(ctx, mode, src)
	res.Elapsed = b.now().Sub(start)

	log := b.logger().With("mode", mode.String())
	if res.Err != nil {
		log.Error("detection pass failed", "src", src, "err", res.Err)
	} else {
		log.Debug("detection pass done", "faces", len(res.Faces), "files", len(res.Files), "elapsed", res.Elapsed)
	}
	return res
}

func (b *Bench) pass(ctx context.Context, mode Mode, src string) ([]image.Rectangle, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	img, err := decodeImg(src)
	if err != nil {
		return nil, nil, err
	}

	backend, err := b.backend()
	if err != nil {
		return nil, nil, err
	}
	det, err := backend(&b.Config.Cascade)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := det.Close(); err != nil {
			b.logger().Warn("could not release the detector", "err", err)
		}
	}()

	faces, err := det.Detect(img, mode, b.Config.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("face detection failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return faces, nil, err
	}

	drawFaces(img, faces)

	annotated := filepath.Join(b.Config.OutputDir, AnnotatedName(mode))
	if err := encodeImg(annotated, img, b.Config.JPEGQuality); err != nil {
		return faces, nil, err
	}

	crops, err := b.saveFaces(ctx, mode, img, faces)
	return faces, append([]string{annotated}, crops...), err
}

// saveFaces writes one crop per detection. In parallel mode every crop is
// written from its own goroutine; file names are indexed by detection order
// so the writers never share a target. A failed write does not stop the others.
func (b *Bench) saveFaces(ctx context.Context, mode Mode, img *image.NRGBA, faces []image.Rectangle) ([]string, error) {
	var (
		names = make([]string, len(faces))
		errs  = make([]error, len(faces))
	)

	save := func(i int) {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			return
		}
		face, ok := cropFace(img, faces[i])
		if !ok {
			b.logger().Warn("face outside of the image bounds", "mode", mode.String(), "index", i, "rect", faces[i])
			return
		}
		name := filepath.Join(b.Config.OutputDir, FaceName(mode, i))
		if err := encodeImg(name, face, b.Config.JPEGQuality); err != nil {
			errs[i] = err
			return
		}
		names[i] = name
	}

	if mode == Parallel {
		var g errgroup.Group
		g.SetLimit(utils.Max(b.Config.Workers, 1))
		for i := range faces {
			i := i
			g.Go(func() error {
				save(i)
				return nil
			})
		}
		g.Wait()
	} else {
		for i := range faces {
			save(i)
		}
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			files = append(files, name)
		}
	}
	return files, errors.Join(errs...)
}
