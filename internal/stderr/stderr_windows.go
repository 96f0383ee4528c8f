//go:build windows

// Package stderr redirects C-level stderr writes into the log. Windows audio
// output does not write to fd 2, so nothing is captured there.
package stderr

import "go.uber.org/zap"

// Capture does nothing on Windows.
type Capture struct{}

func Start(*zap.Logger) (*Capture, error) {
	return &Capture{}, nil
}

func (c *Capture) Stop() {}
