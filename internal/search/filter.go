// Package search filters the catalog by a free-text query and debounces
// the search input.
package search

import (
	"strings"

	"github.com/llehouerou/tunedeck/internal/catalog"
)

// Filter returns the tracks whose title or artist contains query,
// case-insensitively, in their original order. A blank query returns every
// track. The input slice is never modified.
func Filter(tracks []catalog.Track, query string) []catalog.Track {
	q := normalize(query)
	out := make([]catalog.Track, 0, len(tracks))

	for _, t := range tracks {
		if q == "" || strings.Contains(normalize(t.Title), q) || strings.Contains(normalize(t.Artist), q) {
			out = append(out, t)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
