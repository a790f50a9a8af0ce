// Package termui holds the CLI's interactive-terminal niceties: a
// stderr progress spinner for the scan phase and NO_COLOR-aware
// highlighting for human-readable table output. Neither touches the
// byte-stable renderers in internal/serialize -- a spinner writes to
// stderr only, and highlighting is applied to an already-rendered
// Markdown/TSV string purely for display, never fed back into a
// receipt or written when --out redirects to a file.
//
// Grounded on the teacher's internal/pipeline/progress.go (isatty-
// gated spinner) and internal/output/terminal.go (fatih/color,
// NO_COLOR support).
package termui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether f is attached to an interactive terminal
// (and not redirected to a file or pipe).
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled reports whether color output should be produced: the
// destination is a terminal, and the user hasn't set NO_COLOR (see
// https://no-color.org).
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(f)
}

// Spinner displays an animated spinner on stderr while a long-running
// scan runs. Automatically suppressed when stderr is not a TTY (piped
// output, CI), matching the teacher's pipeline.Spinner.
type Spinner struct {
	mu      sync.Mutex
	frames  []string
	current int
	message string
	active  bool
	isTTY   bool
	writer  *os.File
	ticker  *time.Ticker
	done    chan struct{}
}

// NewSpinner creates a Spinner writing to w (typically os.Stderr).
func NewSpinner(w *os.File) *Spinner {
	return &Spinner{
		frames: []string{"|", "/", "-", "\\"},
		writer: w,
		isTTY:  IsTerminal(w),
		done:   make(chan struct{}),
	}
}

const spinnerInterval = 100 * time.Millisecond

// Start begins displaying the spinner with message. No-op when the
// writer isn't a TTY.
func (s *Spinner) Start(message string) {
	if !s.isTTY {
		return
	}

	s.mu.Lock()
	s.active = true
	s.message = message
	s.mu.Unlock()

	s.ticker = time.NewTicker(spinnerInterval)
	go func() {
		for {
			select {
			case <-s.done:
				return
			case <-s.ticker.C:
				s.mu.Lock()
				if !s.active {
					s.mu.Unlock()
					continue
				}
				frame := s.frames[s.current%len(s.frames)]
				s.current++
				fmt.Fprintf(s.writer, "\r%s %s", frame, s.message)
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the spinner and clears its line. Safe to call even if
// Start was a no-op.
func (s *Spinner) Stop() {
	if !s.isTTY {
		return
	}
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)
	fmt.Fprint(s.writer, "\r\033[K")
}

// HighlightTable bolds the header row and the trailing Total row of a
// rendered Markdown or TSV table, when enabled is true, and dims a
// Markdown separator row. Every other line passes through unchanged.
// Intended to wrap the already
// byte-stable output of serialize.RenderMarkdownTable/RenderTSVTable
// right before it's written to an interactive stdout.
func HighlightTable(rendered string, enabled bool) string {
	if !enabled {
		return rendered
	}

	// fatih/color auto-disables globally when it detects stdout isn't
	// a terminal (e.g. under `go test`); EnableColor forces this
	// specific call site to honor our own isatty+NO_COLOR decision
	// instead of its own.
	bold := color.New(color.Bold)
	bold.EnableColor()
	dim := color.New(color.Faint)
	dim.EnableColor()

	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		switch {
		case i == 0 && line != "":
			lines[i] = bold.Sprint(line)
		case strings.HasPrefix(line, "|---") || strings.HasPrefix(line, "| ---") || strings.HasPrefix(line, "|---|"):
			lines[i] = dim.Sprint(line)
		case isTotalRow(line):
			lines[i] = bold.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

func isTotalRow(line string) bool {
	trimmed := strings.TrimPrefix(line, "| ")
	trimmed = strings.TrimPrefix(trimmed, "|")
	return strings.HasPrefix(trimmed, "Total")
}
