//go:build linux

package mpris

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/playback"
)

const busName = "tunedeck"

// Adapter connects the playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. art may be nil.
func New(t Transport, art ArtSource, logger *zap.Logger) (*Adapter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, newPlayerAdapter(t, art)),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			logger.Warn("mpris listen", zap.Error(err))
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // the TUI owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "tunedeck", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// optional loop status and shuffle interfaces.
type playerAdapter struct {
	transport Transport
	art       ArtSource
}

func newPlayerAdapter(t Transport, art ArtSource) *playerAdapter {
	return &playerAdapter{transport: t, art: art}
}

func (p *playerAdapter) Next() error {
	return p.swallow(p.transport.Next(context.Background()))
}

func (p *playerAdapter) Previous() error {
	return p.swallow(p.transport.Previous(context.Background()))
}

func (p *playerAdapter) Pause() error {
	p.transport.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	return p.swallow(p.transport.Toggle(context.Background()))
}

// Stop pauses; there is no stopped transport state beyond startup.
func (p *playerAdapter) Stop() error {
	p.transport.Pause()
	return nil
}

func (p *playerAdapter) Play() error {
	return p.swallow(p.transport.Play(context.Background()))
}

// swallow drops play rejections. The controller already reverted its state
// and reported the failure to its subscribers.
func (p *playerAdapter) swallow(error) error {
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.transport.SeekBy(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	snap := p.transport.Snapshot()
	if trackID != formatTrackID(snap.Track.ID) {
		return nil // stale request for another track
	}
	return p.transport.Seek(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.transport.Snapshot().State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.transport.Snapshot()
	track := snap.Track

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   track.Title,
		Artist:  []string{track.Artist},
	}

	if p.art != nil {
		if path, err := p.art.Thumbnail(track); err == nil {
			meta.ArtUrl = "file://" + path
		}
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	snap := p.transport.Snapshot()
	if snap.Muted {
		return 0, nil
	}
	return snap.Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	p.transport.SetVolume(v)
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.transport.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

// The catalog wraps in both directions.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.transport.Snapshot().Repeat {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Playlist looping is the default behavior, so it maps to repeat off.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	p.transport.SetRepeat(status == types.LoopStatusTrack)
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.transport.Snapshot().Shuffle, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.transport.SetShuffle(shuffle)
	return nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
