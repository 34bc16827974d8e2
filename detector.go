package facebench

import (
	"errors"
	"image"
	"sort"
	"sync"
)

var (
	ErrImageDecode     = errors.New("could not decode the image")
	ErrCascadeNotFound = errors.New("cascade resource not found")
	ErrCascadeLoad     = errors.New("could not load the cascade classifier")
	ErrUnknownBackend  = errors.New("unknown detector backend")
)

// Mode selects how a pass spreads its work.
type Mode int

const (
	Serial Mode = iota
	Parallel
)

// String returns the label used in the output file names.
func (m Mode) String() string {
	switch m {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	}
	return "unknown"
}

// Detector finds faces in an image. Implementations own a loaded cascade
// classifier and must return the detections in a deterministic order for
// a given image, regardless of the mode.
type Detector interface {
	Detect(img *image.NRGBA, mode Mode, workers int) ([]image.Rectangle, error)
	Close() error
}

// Backend constructs a Detector, loading the cascade described by the config.
type Backend func(cfg *CascadeConfig) (Detector, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Backend)
)

// RegisterBackend makes a detector backend available under the provided name.
// It panics if the name is registered twice.
func RegisterBackend(name string, b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if b == nil {
		panic("facebench: RegisterBackend backend is nil")
	}
	if _, dup := backends[name]; dup {
		panic("facebench: RegisterBackend called twice for " + name)
	}
	backends[name] = b
}

// Backends returns the sorted names of the registered backends.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupBackend(name string) (Backend, bool) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	b, ok := backends[name]
	return b, ok
}
