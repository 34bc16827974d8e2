package facebench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/esimov/facebench/utils"
)

// Bench compares a serial and a parallel run of the face detection pipeline.
type Bench struct {
	Config *Config
	Logger *slog.Logger
	// Backend overrides the detector backend selected by Config.Backend.
	Backend Backend
	// Clock returns the current time; it must be monotonic. Defaults to time.Now.
	Clock func() time.Time
}

// NewBench validates the config and returns a Bench using it.
func NewBench(cfg *Config, logger *slog.Logger) (*Bench, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Bench{
		Config: cfg,
		Logger: logger,
	}, nil
}

// Compare runs the serial pass followed by the parallel pass over the same source image.
func (b *Bench) Compare(ctx context.Context, src string) Report {
	b.logger().Debug("starting the benchmark", "src", src, "backend", b.Config.Backend, "workers", b.Config.Workers)

	return Report{
		Serial:   b.RunPass(ctx, Serial, src),
		Parallel: b.RunPass(ctx, Parallel, src),
	}
}

func (b *Bench) backend() (Backend, error) {
	if b.Backend != nil {
		return b.Backend, nil
	}
	backend, ok := lookupBackend(b.Config.Backend)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend,
			b.Config.Backend, strings.Join(Backends(), ", "))
	}
	return backend, nil
}

func (b *Bench) now() time.Time {
	if b.Clock != nil {
		return b.Clock()
	}
	return time.Now()
}

func (b *Bench) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// Report holds the timings of both passes.
type Report struct {
	Serial   PassResult
	Parallel PassResult
}

// SerialMs returns the serial pass duration in milliseconds.
func (r Report) SerialMs() float64 { return millis(r.Serial.Elapsed) }

// ParallelMs returns the parallel pass duration in milliseconds.
func (r Report) ParallelMs() float64 { return millis(r.Parallel.Elapsed) }

// Speedup returns the ratio of the serial to the parallel duration.
// The ratio is undefined when the parallel pass took no measurable time:
// then it reports +Inf and false.
func (r Report) Speedup() (float64, bool) {
	p := r.ParallelMs()
	if p == 0 {
		return math.Inf(1), false
	}
	return r.SerialMs() / p, true
}

// String formats the report the way it is printed on the standard output.
func (r Report) String() string {
	speedup, _ := r.Speedup()

	var sb strings.Builder
	sb.WriteString("---[RESULTADOS TIEMPO DE EJECUCIÓN]---\n")
	fmt.Fprintf(&sb, "Tiempo de ejecución en modo serial: %s ms\n", utils.FormatNumber(r.SerialMs()))
	fmt.Fprintf(&sb, "Tiempo de ejecución en modo paralelo: %s ms\n", utils.FormatNumber(r.ParallelMs()))
	fmt.Fprintf(&sb, "Aceleración (speedup): %sx\n", utils.FormatNumber(speedup))
	return sb.String()
}

// WriteTo writes the formatted report to w.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
