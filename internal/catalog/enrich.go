package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Enrich fills in missing titles and artists from the audio file tags.
// A title that is still missing falls back to the file name without its
// extension. Unreadable files are left as they are.
func Enrich(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	for i, t := range tracks {
		if t.Title == "" || t.Artist == "" {
			if m, err := readTags(t.MediaRef); err == nil {
				if t.Title == "" {
					t.Title = m.Title()
				}
				if t.Artist == "" {
					t.Artist = m.Artist()
				}
			}
		}
		if t.Title == "" && t.MediaRef != "" {
			base := filepath.Base(t.MediaRef)
			t.Title = strings.TrimSuffix(base, filepath.Ext(base))
		}
		out[i] = t
	}
	return out
}

func readTags(path string) (tag.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return tag.ReadFrom(f)
}

// Picture returns the embedded cover art of an audio file, or nil when the
// file has none.
func Picture(path string) (*tag.Picture, error) {
	m, err := readTags(path)
	if err != nil {
		return nil, err
	}
	return m.Picture(), nil
}
