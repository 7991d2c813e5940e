package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// batchSpinner animates a status line while a batch of decks renders, e.g.
// "⠹ Rendering decks 2/5 · party". It draws on stderr so artifacts written
// to stdout stay clean. Advance may be called from several goroutines.
type batchSpinner struct {
	out   io.Writer
	label string
	total int

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	finished int
	last     string
	width    int // runes drawn by the widest line so far
	stopped  chan struct{}
	stopOnce sync.Once
}

// newBatchSpinner creates a spinner for total jobs. It stops drawing when ctx
// is cancelled.
func newBatchSpinner(ctx context.Context, label string, total int) *batchSpinner {
	sctx, cancel := context.WithCancel(ctx)
	return &batchSpinner{
		out:    os.Stderr,
		label:  label,
		total:  total,
		parent: ctx,
		ctx:    sctx,
		cancel: cancel,
	}
}

// Start begins the animation. It must be called at most once.
func (s *batchSpinner) Start() {
	s.mu.Lock()
	s.stopped = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Advance records one finished job. name is shown until the next job finishes.
func (s *batchSpinner) Advance(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished < s.total {
		s.finished++
	}
	s.last = name
}

// Line returns the status text without the animation frame.
func (s *batchSpinner) Line() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lineLocked()
}

func (s *batchSpinner) lineLocked() string {
	line := fmt.Sprintf("%s %d/%d", s.label, s.finished, s.total)
	if s.last != "" {
		line += " · " + s.last
	}
	return line
}

func (s *batchSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.lineLocked()
	if n := utf8.RuneCountInString(line) + 2; n > s.width {
		s.width = n
	}
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(line))
}

// Stop ends the animation and clears the line. Calling Stop more than once,
// or without Start, is safe.
func (s *batchSpinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.mu.Lock()
		stopped := s.stopped
		s.mu.Unlock()
		if stopped != nil {
			<-stopped
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// Cancelled reports whether the spinner stopped because the command's
// context was cancelled rather than through Stop.
func (s *batchSpinner) Cancelled() bool {
	return s.parent.Err() != nil
}
