/*
Package facebench measures how a face detection pipeline behaves when its work is
spread over several goroutines. The same source image goes through two passes:
a serial one and a parallel one. Each pass decodes the image, converts it to
grayscale, runs a cascade classifier, outlines the detected faces, saves the
annotated image and saves every face as a separate crop. The two passes are
timed and their ratio is reported as the speedup.

The package provides a command line interface. To check the supported flags type:

	$ facebench --help

It can also be used as a library:

	package main

	import (
		"context"
		"log/slog"
		"os"

		"github.com/esimov/facebench"
	)

	func main() {
		b, err := facebench.NewBench(facebench.DefaultConfig(), slog.Default())
		if err != nil {
			panic(err)
		}
		report := b.Compare(context.Background(), "sample.jpg")
		report.WriteTo(os.Stdout)
	}

Detection is delegated to the pigo cascade classifier. Building with the gocv tag
registers an additional backend running the OpenCV Haar cascade.
*/
package facebench
