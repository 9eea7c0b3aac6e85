package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner draws an animated status line on w while an AI request or web
// search is in flight. It is the plain-writer counterpart of the bubbles
// spinner, used outside a tea.Program.
type Spinner struct {
	w       io.Writer
	message string
	style   spinner.Spinner

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		style:   spinner.Dot,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.style.FPS)
	defer ticker.Stop()

	frames := s.style.Frames
	for i := 0; ; i = (i + 1) % len(frames) {
		fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(frames[i]), Dim(s.message))
		select {
		case <-s.stop:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop clears the line and waits for the animation to exit. Later calls
// are no-ops.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// StartSpinner starts a spinner on w and returns its Stop. A nil w, used
// when output is not a terminal, gives a no-op.
func StartSpinner(w io.Writer, message string) func() {
	if w == nil {
		return func() {}
	}
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
