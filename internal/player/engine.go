// Package player drives audio output. The Engine plays one media file at a
// time and reports progress through an event channel.
package player

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrPlaybackBlocked means the audio device could not be opened.
	ErrPlaybackBlocked = errors.New("playback blocked")
	// ErrMediaLoad means the media file is missing or cannot be decoded.
	ErrMediaLoad = errors.New("media load failed")
	// ErrNotLoaded is returned by Seek when nothing is loaded.
	ErrNotLoaded = errors.New("no media loaded")
	// ErrClosed is returned by Play after Close.
	ErrClosed = errors.New("engine closed")
)

// PositionInterval is how often a playing engine reports its position.
const PositionInterval = 250 * time.Millisecond

// Engine is the media engine contract. Play returns a load sequence number;
// every event produced for that load carries it, so consumers can drop
// events from media that has since been replaced.
type Engine interface {
	Play(ctx context.Context, ref string) (seq uint64, err error)
	Pause()
	Resume()
	Stop()
	Seek(pos time.Duration) error
	SetVolume(level float64)
	SetMuted(muted bool)
	State() State
	Position() time.Duration
	Duration() time.Duration
	Loaded() string
	Events() <-chan Event
	Close() error
}

// Event is emitted by an Engine.
type Event interface {
	Sequence() uint64
}

// PositionEvent reports the playback position while playing.
type PositionEvent struct {
	Seq      uint64
	Position time.Duration
}

// MetadataEvent reports the duration once the media is decoded.
type MetadataEvent struct {
	Seq      uint64
	Duration time.Duration
}

// EndedEvent reports natural completion. It is never sent for Stop.
type EndedEvent struct {
	Seq uint64
}

func (e PositionEvent) Sequence() uint64 { return e.Seq }
func (e MetadataEvent) Sequence() uint64 { return e.Seq }
func (e EndedEvent) Sequence() uint64    { return e.Seq }
