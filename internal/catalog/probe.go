package catalog

import (
	"context"
	"time"
)

// ProbeFunc reports the playing time of a media file.
type ProbeFunc func(ref string) (time.Duration, error)

// ProbeDurations measures every track whose duration is unknown. Failures
// are skipped and leave the duration unknown. Probing stops early when ctx
// is cancelled; durations found so far are returned.
func ProbeDurations(ctx context.Context, c *Catalog, probe ProbeFunc) map[string]time.Duration {
	found := make(map[string]time.Duration, c.Len())
	for _, t := range c.tracks {
		if ctx.Err() != nil {
			break
		}
		if t.Duration > 0 {
			found[t.ID] = t.Duration
			continue
		}
		d, err := probe(t.MediaRef)
		if err != nil || d <= 0 {
			continue
		}
		found[t.ID] = d
	}
	return found
}
