package playback

import (
	"time"

	"github.com/llehouerou/tunedeck/internal/catalog"
)

// Snapshot is an immutable copy of the controller state.
type Snapshot struct {
	Index    int
	Track    catalog.Track
	State    State
	Shuffle  bool
	Repeat   bool
	Volume   float64
	Muted    bool
	Position time.Duration
	Duration time.Duration // zero when unknown
	Favorite bool
}

// Playing reports whether the transport is playing.
func (s Snapshot) Playing() bool {
	return s.State == StatePlaying
}

// Progress returns position/duration in [0,1], or 0 when the duration is
// unknown.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(1, max(0, float64(s.Position)/float64(s.Duration)))
}
