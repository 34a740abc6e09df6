// Package runner animates a loadingbar from empty to complete.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/yarlson/loadingbar"
)

// Options configures a run.
type Options struct {
	Steps    int
	Interval time.Duration // Delay between frames, 0 renders without waiting
	RTL      bool
	Width    int // Fixed bar width, 0 sizes the bar to the terminal

	// Query sizes dynamic bars. Nil queries the terminal on stdout.
	Query loadingbar.WidthFunc
	Log   logrus.FieldLogger
}

// Result summarizes a run.
type Result struct {
	Frames      int
	Interrupted bool
}

// Run renders Steps+1 frames with progress 0/Steps through Steps/Steps.
// Every frame is followed by a newline; the bar's line end moves the
// cursor back up, so each frame overwrites the previous one. SIGINT and
// SIGTERM stop the animation after the current frame.
func Run(ctx context.Context, opts Options, stdout, stderr io.Writer) (Result, error) {
	if opts.Steps <= 0 {
		return Result{}, fmt.Errorf("steps must be positive, got %d", opts.Steps)
	}

	log := opts.Log
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	query := opts.Query
	if query == nil {
		query = loadingbar.TerminalWidth
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			_, _ = fmt.Fprintf(stderr, "\nReceived interrupt signal, stopping...\n")
			cancel()
		case <-ctx.Done():
		}
	}()

	var tick <-chan time.Time
	if opts.Interval > 0 {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	bar := loadingbar.New(0, opts.RTL, opts.Width)
	log.WithFields(logrus.Fields{
		"steps":    opts.Steps,
		"interval": opts.Interval,
		"rtl":      opts.RTL,
		"width":    opts.Width,
	}).Info("starting animation")

	var result Result
	for step := 0; step <= opts.Steps; step++ {
		if err := wait(ctx, step, tick); err != nil {
			result.Interrupted = true
			_, _ = fmt.Fprintln(stdout)
			return result, err
		}

		bar.Progress = float32(step) / float32(opts.Steps)
		log.WithFields(logrus.Fields{
			"step":     step,
			"progress": bar.Progress,
		}).Debug("rendering frame")

		if _, err := fmt.Fprintln(stdout, bar.Render(query)); err != nil {
			return result, fmt.Errorf("failed to write frame %d: %w", step, err)
		}
		result.Frames++
	}

	// Move past the finished bar
	if _, err := fmt.Fprintln(stdout); err != nil {
		return result, fmt.Errorf("failed to write final newline: %w", err)
	}

	return result, nil
}

// wait blocks until the next frame is due. The first frame is never delayed.
func wait(ctx context.Context, step int, tick <-chan time.Time) error {
	if step == 0 || tick == nil {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick:
		return nil
	}
}

// IsInterrupt reports whether err came from a cancelled run.
func IsInterrupt(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTerminal checks if the writer is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
