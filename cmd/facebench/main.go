package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/esimov/facebench"
	"github.com/esimov/facebench/utils"
	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌─┐┌┐ ┌─┐┌┐┌┌─┐┬ ┬
├┤ ├─┤│  ├┤ ├┴┐├┤ ││││  ├─┤
└  ┴ ┴└─┘└─┘└─┘└─┘┘└┘└─┘┴ ┴

Serial vs. parallel face detection benchmark.
    Version: %s

`

// prompt is shown when no source image is given on the command line.
const prompt = "Ingrese el nombre de la imagen (JPEG): "

// Version indicates the current build version.
var Version string

var (
	// Flags
	source     = flag.String("in", "", "Source image (path or URL)")
	outDir     = flag.String("out", ".", "Destination directory of the generated images")
	cascade    = flag.String("cc", "", "Cascade classifier file")
	backend    = flag.String("backend", "pigo", "Detector backend")
	workers    = flag.Int("conc", runtime.NumCPU(), "Number of workers used by the parallel pass")
	configFile = flag.String("config", "", "YAML config file")
	verbose    = flag.Bool("v", false, "Verbose logging")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	isTerm := term.IsTerminal(int(os.Stderr.Fd()))

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	// The spinner and the logger share stderr: log lines go through the
	// spinner, which erases its current frame before each of them.
	var (
		spinner *utils.Spinner
		logOut  io.Writer = os.Stderr
	)
	if isTerm {
		spinner = utils.NewSpinner(fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ FACEBENCH", utils.StatusMessage),
			utils.DecorateText("⇢ running the serial and parallel passes...", utils.DefaultMessage),
		), time.Millisecond*100, true)
		logOut = spinner.Wrap(os.Stderr)
	}

	logger := slog.New(
		tint.NewHandler(logOut, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
			NoColor:    !isTerm,
		}),
	)
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	bench, err := facebench.NewBench(cfg, logger)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src := *source
	if src == "" {
		fmt.Print(prompt)
		if _, err := fmt.Fscan(os.Stdin, &src); err != nil {
			log.Fatalf(
				utils.DecorateText("Unable to read the image name: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadImage(ctx, src)
		if err != nil {
			// The passes will report the missing source, the benchmark still completes.
			logger.Error("failed to download the source image", "url", src, "err", err)
		} else {
			defer os.Remove(tmp)
			src = tmp
		}
	}

	logger.Debug("host", "info", facebench.ProbeHost(ctx))

	if spinner != nil {
		// Restore the cursor visibility when the run gets interrupted.
		go func() {
			<-ctx.Done()
			spinner.Stop()
		}()
		spinner.Start()
	}

	now := time.Now()
	report := bench.Compare(ctx, src)

	if spinner != nil {
		// Stop returns only after the line is cleared, even when the
		// interrupt handler got there first.
		spinner.Stop()
	}

	if _, err := report.WriteTo(os.Stdout); err != nil {
		logger.Error("unable to write the report", "err", err)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// loadConfig builds the configuration from the optional config file
// and the flags explicitly set on the command line.
func loadConfig() (*facebench.Config, error) {
	cfg := facebench.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = facebench.LoadConfig(*configFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.OutputDir = *outDir
		case "cc":
			cfg.Cascade.Path = *cascade
		case "backend":
			cfg.Backend = *backend
		case "conc":
			cfg.Workers = *workers
		}
	})
	return cfg, cfg.Validate()
}
