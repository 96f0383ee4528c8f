//go:build !linux

package mpris

import "go.uber.org/zap"

// Adapter does nothing outside Linux, where there is no session D-Bus.
type Adapter struct{}

func New(Transport, ArtSource, *zap.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

func (a *Adapter) Close() error { return nil }
