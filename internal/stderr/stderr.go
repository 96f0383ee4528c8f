//go:build !windows

// Package stderr captures stderr output from C libraries (ALSA, oto)
// that write directly to file descriptor 2, bypassing Go's os.Stderr.
// Captured lines go to the log instead of corrupting the TUI layout.
package stderr

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Capture redirects fd 2 into a pipe whose lines are logged.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
}

// Start begins capturing stderr output.
// Must be called early in main(), before any C library initialization.
// On error the program can continue without capture.
func Start(logger *zap.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		forward(r, logger)
	}()
	return c, nil
}

// Stop restores the original stderr and waits for pending lines to be
// logged.
func (c *Capture) Stop() {
	if c == nil {
		return
	}

	_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.orig)

	// fd 2 no longer references the pipe, so closing w delivers EOF.
	c.w.Close()
	<-c.done
	c.r.Close()
}
