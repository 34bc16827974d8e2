package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Spinner initializes the progress indicator.
type Spinner struct {
	mu          *sync.RWMutex
	delay       time.Duration
	writer      io.Writer
	message     string
	lastOutput  string
	StopMsg     string
	hideCursor  bool
	running     bool
	stopChan    chan struct{}
	doneChan    chan struct{}
	clearedChan chan struct{} // closed once Stop has erased the line
}

// NewSpinner instantiates a new progress indicator writing to stderr.
func NewSpinner(msg string, d time.Duration, hideCursor bool) *Spinner {
	return &Spinner{
		mu:         &sync.RWMutex{},
		delay:      d,
		writer:     os.Stderr,
		message:    msg,
		hideCursor: hideCursor,
	}
}

// SetWriter changes the destination of the progress indicator.
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writer = w
}

// Start starts the progress indicator. Calling Start on a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.clearedChan = make(chan struct{})
	if s.hideCursor && runtime.GOOS != "windows" {
		// hides the cursor
		fmt.Fprint(s.writer, "\033[?25l")
	}
	s.mu.Unlock()

	go func() {
		defer close(s.doneChan)
		for {
			for _, r := range `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏` {
				select {
				case <-s.stopChan:
					return
				default:
					s.mu.Lock()
					output := fmt.Sprintf("\r%s%s %c%s", s.message, SuccessColor, r, DefaultColor)
					fmt.Fprint(s.writer, output)
					s.lastOutput = output
					s.mu.Unlock()

					time.Sleep(s.delay)
				}
			}
		}
	}()
}

// Stop stops the progress indicator and prints the stop message, if any.
// Concurrent callers all return once the line has been cleared.
func (s *Spinner) Stop() {
	s.mu.Lock()
	cleared := s.clearedChan
	if cleared == nil {
		s.mu.Unlock()
		return
	}
	if !s.running {
		s.mu.Unlock()
		<-cleared
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	// Wait for the last frame to be written before clearing the line.
	<-s.doneChan

	s.mu.Lock()
	s.clear()
	s.RestoreCursor()
	if len(s.StopMsg) > 0 {
		fmt.Fprint(s.writer, s.StopMsg)
	}
	s.mu.Unlock()
	close(cleared)
}

// Wrap returns a writer forwarding to w which first erases the current
// spinner frame, so lines written through it never share a row with a frame.
// The next frame is drawn again below the written output.
func (s *Spinner) Wrap(w io.Writer) io.Writer {
	return &spinnerWriter{s: s, w: w}
}

type spinnerWriter struct {
	s *Spinner
	w io.Writer
}

func (sw *spinnerWriter) Write(p []byte) (int, error) {
	sw.s.mu.Lock()
	defer sw.s.mu.Unlock()

	if sw.s.lastOutput != "" {
		sw.s.clear()
	}
	return sw.w.Write(p)
}

// RestoreCursor restores back the cursor visibility.
func (s *Spinner) RestoreCursor() {
	if s.hideCursor && runtime.GOOS != "windows" {
		// makes the cursor visible
		fmt.Fprint(s.writer, "\033[?25h")
	}
}

// clear deletes the last line. Caller must hold the lock.
func (s *Spinner) clear() {
	n := utf8.RuneCountInString(s.lastOutput)
	if runtime.GOOS == "windows" {
		clearString := "\r" + strings.Repeat(" ", n) + "\r"
		fmt.Fprint(s.writer, clearString)
		s.lastOutput = ""
		return
	}
	for _, c := range []string{"\b", "\127", "\b", "\033[K"} { // "\033[K" for macOS Terminal
		fmt.Fprint(s.writer, strings.Repeat(c, n))
	}
	fmt.Fprint(s.writer, "\r\033[K") // clear line
	s.lastOutput = ""
}
