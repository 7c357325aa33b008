package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// lineSpinner is the frame set shared with the chart TUI's busy indicator.
var lineSpinner = spinner.Dot

// Spinner redraws one terminal line with the busy message while a one-shot
// command waits on the server. The chart TUI drives spinner.Model instead.
type Spinner struct {
	w       io.Writer
	message string
	frames  spinner.Spinner

	once sync.Once
	quit chan struct{}
	done chan struct{}
}

// NewSpinner prepares a spinner on w. An empty message shows only the
// frames.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		frames:  lineSpinner,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *Spinner) frame(i int) string {
	line := "\r  " + StylePurple.Render(s.frames.Frames[i%len(s.frames.Frames)])
	if s.message != "" {
		line += " " + Dim(s.message)
	}
	return line
}

// Start draws the first frame at once and animates until Stop.
func (s *Spinner) Start() {
	fmt.Fprint(s.w, s.frame(0))
	go func() {
		defer close(s.done)
		tick := time.NewTicker(s.frames.FPS)
		defer tick.Stop()
		for i := 1; ; i++ {
			select {
			case <-s.quit:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-tick.C:
				fmt.Fprint(s.w, s.frame(i))
			}
		}
	}()
}

// Stop clears the line and returns once the animation has ended. It is
// safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}

// StartSpinner starts a spinner and returns its Stop.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
