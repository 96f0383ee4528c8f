package playback

import (
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/prefs"
)

// Persister stores the transport preferences. *prefs.Manager satisfies it.
type Persister interface {
	SaveShuffle(bool) error
	SaveRepeat(bool) error
	SaveVolume(float64) error
}

// Recorder records activated tracks. *tracker.Tracker satisfies it.
type Recorder interface {
	AddRecent(catalog.Track) error
}

// FavoriteChecker reports favorite membership by track ID.
type FavoriteChecker interface {
	IsFavorite(id string) bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPreferences seeds shuffle, repeat and volume, and persists their
// changes through p.
func WithPreferences(pr prefs.Preferences, p Persister) Option {
	return func(c *Controller) {
		c.shuffle = pr.Shuffle
		c.repeat = pr.Repeat
		c.volume = clampVolume(pr.Volume)
		c.muted = c.volume == 0
		c.persister = p
	}
}

// WithRecorder sets where activations are recorded as recents.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithFavorites sets the source of the favorite indicator.
func WithFavorites(f FavoriteChecker) Option {
	return func(c *Controller) { c.favorites = f }
}

// WithRand replaces the shuffle source. fn must return a value in [0,n).
func WithRand(fn func(n int) int) Option {
	return func(c *Controller) { c.randIntn = fn }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}
