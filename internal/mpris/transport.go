// Package mpris exposes the playback controller on the session bus as an
// MPRIS media player.
package mpris

import (
	"context"
	"time"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/playback"
)

// Transport is the part of *playback.Controller the adapter drives.
type Transport interface {
	Snapshot() playback.Snapshot
	Play(ctx context.Context) error
	Pause()
	Toggle(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Seek(pos time.Duration) error
	SeekBy(delta time.Duration) error
	SetVolume(v float64)
	SetShuffle(on bool)
	SetRepeat(on bool)
}

// ArtSource resolves a local cover image for a track.
// *artwork.Cache satisfies it.
type ArtSource interface {
	Thumbnail(track catalog.Track) (string, error)
}

var _ Transport = (*playback.Controller)(nil)
