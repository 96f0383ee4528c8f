// Package catalog holds the fixed, ordered list of tracks for a session.
package catalog

import (
	"fmt"
	"time"
)

// Track is one playable unit. Tracks are values and never change after the
// catalog is built.
type Track struct {
	ID       string // stable key for favorites and recents; defaults to Title
	Title    string
	Artist   string
	MediaRef string // path to the audio file
	ImageRef string // optional cover image path
	Duration time.Duration
}

// FormatDuration renders d as m:ss. Unknown (zero) durations render as "—:—".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "—:—"
	}
	return FormatPosition(d)
}

// FormatPosition renders d as m:ss, treating negative values as zero.
func FormatPosition(d time.Duration) string {
	secs := max(int(d.Seconds()), 0)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
