package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

var (
	ErrDuplicateID       = errors.New("duplicate track id")
	ErrMissingMedia      = errors.New("track has no media file")
	ErrUnknownTrack      = errors.New("unknown track")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// Catalog is an immutable ordered collection of tracks.
type Catalog struct {
	tracks []Track
	byID   map[string]int
}

// New builds a catalog. Empty IDs default to the title; a title already
// taken falls back to title and artist, then to the media file. Explicit IDs
// that collide, or derived IDs that still collide, are rejected so that
// favorites and recents stay unambiguous.
func New(tracks []Track) (*Catalog, error) {
	c := &Catalog{
		tracks: make([]Track, len(tracks)),
		byID:   make(map[string]int, len(tracks)),
	}

	for i, t := range tracks {
		if t.MediaRef == "" {
			return nil, fmt.Errorf("track %d (%q): %w", i, t.Title, ErrMissingMedia)
		}
		if t.ID == "" {
			t.ID = c.derivedID(t)
		}
		if prev, ok := c.byID[t.ID]; ok {
			return nil, fmt.Errorf("tracks %d and %d share id %q: %w", prev, i, t.ID, ErrDuplicateID)
		}
		c.byID[t.ID] = i
		c.tracks[i] = t
	}

	return c, nil
}

func (c *Catalog) derivedID(t Track) string {
	candidates := []string{t.Title}
	if t.Artist != "" {
		candidates = append(candidates, t.Title+" - "+t.Artist)
	}
	for _, id := range candidates {
		if _, taken := c.byID[id]; !taken {
			return id
		}
	}
	return t.MediaRef
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// At returns the track at index i. i must be in [0, Len()).
func (c *Catalog) At(i int) Track {
	return c.tracks[i]
}

// Tracks returns a copy of all tracks in catalog order.
func (c *Catalog) Tracks() []Track {
	return slices.Clone(c.tracks)
}

// IndexOf returns the position of the track with the given id.
func (c *Catalog) IndexOf(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// ByID returns the track with the given id.
func (c *Catalog) ByID(id string) (Track, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Track{}, false
	}
	return c.tracks[i], true
}

// Resolve maps ids to tracks in the given order, silently skipping ids that
// are not in the catalog.
func (c *Catalog) Resolve(ids []string) []Track {
	out := make([]Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := c.ByID(id); ok {
			out = append(out, t)
		}
	}
	return out
}

// WithDurations returns a copy of the catalog with the known durations
// filled in. Tracks missing from durations keep their current value.
func (c *Catalog) WithDurations(durations map[string]time.Duration) *Catalog {
	out := &Catalog{
		tracks: slices.Clone(c.tracks),
		byID:   maps.Clone(c.byID),
	}
	for i := range out.tracks {
		if d, ok := durations[out.tracks[i].ID]; ok && d > 0 {
			out.tracks[i].Duration = d
		}
	}
	return out
}
