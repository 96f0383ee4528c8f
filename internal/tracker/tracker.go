// Package tracker keeps the user's favorites and recently played tracks.
// Both lists are keyed by track ID and written through on every change.
package tracker

import (
	"slices"
	"sync"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/prefs"
)

// MaxRecents caps the recently played list.
const MaxRecents = prefs.MaxRecents

// Saver persists the lists. *prefs.Manager satisfies it.
type Saver interface {
	SaveFavorites(ids []string) error
	SaveRecents(ids []string) error
}

// Tracker holds favorites (insertion order) and recents (most recent first).
// Stale IDs are kept as stored and skipped when resolved against the catalog.
type Tracker struct {
	mu        sync.Mutex
	cat       *catalog.Catalog
	saver     Saver
	favorites []string
	recents   []string
}

// New seeds a tracker from persisted lists. Duplicates are dropped and
// recents are capped.
func New(cat *catalog.Catalog, saver Saver, favorites, recents []string) *Tracker {
	t := &Tracker{
		cat:       cat,
		saver:     saver,
		favorites: dedup(favorites),
		recents:   dedup(recents),
	}
	if len(t.recents) > MaxRecents {
		t.recents = t.recents[:MaxRecents]
	}
	return t
}

// ToggleFavorite adds the track if absent and removes it otherwise, then
// persists. It returns the new membership. The in-memory change stands even
// when persisting fails.
func (t *Tracker) ToggleFavorite(track catalog.Track) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var member bool
	if i := slices.Index(t.favorites, track.ID); i >= 0 {
		t.favorites = slices.Delete(t.favorites, i, i+1)
	} else {
		t.favorites = append(t.favorites, track.ID)
		member = true
	}

	return member, t.saveFavorites()
}

// IsFavorite reports whether id is a favorite.
func (t *Tracker) IsFavorite(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.favorites, id)
}

// Favorites returns favorite tracks in insertion order.
func (t *Tracker) Favorites() []catalog.Track {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cat.Resolve(t.favorites)
}

// FavoriteIDs returns the stored favorite IDs, stale ones included.
func (t *Tracker) FavoriteIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.favorites)
}

// AddRecent moves the track to the front, dropping any earlier entry and
// evicting the oldest beyond MaxRecents, then persists.
func (t *Tracker) AddRecent(track catalog.Track) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]string, 0, MaxRecents)
	next = append(next, track.ID)
	for _, id := range t.recents {
		if id != track.ID && len(next) < MaxRecents {
			next = append(next, id)
		}
	}
	t.recents = next

	return t.saveRecents()
}

// Recents returns recently played tracks, most recent first.
func (t *Tracker) Recents() []catalog.Track {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cat.Resolve(t.recents)
}

// RecentIDs returns the stored recent IDs, stale ones included.
func (t *Tracker) RecentIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.recents)
}

func (t *Tracker) saveFavorites() error {
	if t.saver == nil {
		return nil
	}
	return t.saver.SaveFavorites(slices.Clone(t.favorites))
}

func (t *Tracker) saveRecents() error {
	if t.saver == nil {
		return nil
	}
	return t.saver.SaveRecents(slices.Clone(t.recents))
}

func dedup(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
