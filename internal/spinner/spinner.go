package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a single-line progress message until stopped.
type Spinner struct {
	w        io.Writer
	done     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	message string
	width   int // widest message rendered so far, in terminal cells
}

// Start displays an animated spinner with the given message on w.
// Call Stop to halt the animation and clear the line.
func Start(w io.Writer, message string) *Spinner {
	s := &Spinner{
		w:       w,
		done:    make(chan struct{}),
		cleared: make(chan struct{}),
		message: message,
	}
	go s.run()
	return s
}

// Update replaces the message shown on the next frame. Useful for
// progress like "drafting slide 3/5".
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop halts the spinner and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.cleared
}

func (s *Spinner) run() {
	i := 0
	for {
		select {
		case <-s.done:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+2)) //nolint:errcheck
			s.mu.Unlock()
			close(s.cleared)
			return
		case <-time.After(80 * time.Millisecond):
			s.mu.Lock()
			msg := s.message
			width := runewidth.StringWidth(msg)
			if width > s.width {
				s.width = width
			}
			// Pad so a shorter message overwrites the previous one.
			pad := strings.Repeat(" ", s.width-width)
			fmt.Fprintf(s.w, "\r%s %s%s", frames[i%len(frames)], msg, pad) //nolint:errcheck
			s.mu.Unlock()
			i++
		}
	}
}
