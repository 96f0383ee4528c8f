package playback

import (
	"time"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/errmsg"
)

// StateChange is emitted when the transport state changes, and on every
// failed play so surfaces can revert their play button.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted by Load (and so by every navigation) and by
// RefreshFavorite. Favorite is the indicator for Current.
type TrackChange struct {
	Previous      catalog.Track
	Current       catalog.Track
	PreviousIndex int
	Index         int
	Favorite      bool
}

// PositionChange is emitted on engine progress, metadata and seeks.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// ModeChange is emitted when shuffle or repeat changes.
type ModeChange struct {
	Shuffle bool
	Repeat  bool
}

// VolumeChange is emitted when the volume or mute flag changes.
type VolumeChange struct {
	Volume float64
	Muted  bool
}

// ErrorEvent reports a contained failure: a rejected play or a failed
// preference write.
type ErrorEvent struct {
	Op  errmsg.Op
	Ref string // media ref if applicable
	Err error
}
