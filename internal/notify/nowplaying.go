package notify

import (
	"github.com/llehouerou/tunedeck/internal/catalog"
)

// DefaultTimeout is how long a now-playing notification stays up, in ms.
const DefaultTimeout int32 = 5000

// IconSource resolves a notification icon for a track.
// *artwork.Cache satisfies it.
type IconSource interface {
	Thumbnail(track catalog.Track) (string, error)
}

// NowPlaying announces the track that starts playing. Each announcement
// replaces the previous one, and the same track is not announced twice in
// a row.
type NowPlaying struct {
	notifier Notifier
	icons    IconSource
	timeout  int32

	lastID    uint32
	lastTrack string
}

// NewNowPlaying creates an announcer. icons may be nil.
func NewNowPlaying(n Notifier, icons IconSource) *NowPlaying {
	return &NowPlaying{notifier: n, icons: icons, timeout: DefaultTimeout}
}

// Announce sends a notification for track unless it was the last one
// announced. It returns the notifier error, if any.
func (p *NowPlaying) Announce(track catalog.Track) error {
	if p == nil || p.notifier == nil || track.ID == "" {
		return nil
	}
	if track.ID == p.lastTrack {
		return nil
	}

	n := Notification{
		Title:      track.Title,
		Body:       track.Artist,
		Timeout:    p.timeout,
		ReplacesID: p.lastID,
		Urgency:    UrgencyLow,
	}
	if p.icons != nil {
		if icon, err := p.icons.Thumbnail(track); err == nil {
			n.Icon = icon
		}
	}

	id, err := p.notifier.Notify(n)
	if err != nil {
		return err
	}
	p.lastID = id
	p.lastTrack = track.ID
	return nil
}

// Reset forgets the last announced track so it is announced again.
func (p *NowPlaying) Reset() {
	if p != nil {
		p.lastTrack = ""
	}
}
