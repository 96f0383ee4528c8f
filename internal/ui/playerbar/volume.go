package playerbar

import (
	"fmt"
	"math"

	"github.com/llehouerou/tunedeck/internal/icons"
)

// RenderVolume renders the volume indicator.
// Format: "🔊 90%", or "🔇 0%" when muted.
func RenderVolume(volume float64, muted bool) string {
	pct := int(math.Round(volume * 100))
	if muted {
		pct = 0
	}
	return timeStyle().Render(fmt.Sprintf("%s %3d%%", icons.Speaker(muted), pct))
}
