package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/icons"
	"github.com/llehouerou/tunedeck/internal/playback"
)

func init() {
	icons.Init("none")
}

func testState(mode DisplayMode) State {
	return State{
		Title:    "Dhaga",
		Artist:   "Nilotpal Bora",
		Playing:  true,
		Volume:   0.9,
		Position: 83 * time.Second,
		Duration: 238 * time.Second,
		Mode:     mode,
	}
}

func TestNewState(t *testing.T) {
	snap := playback.Snapshot{
		Track:    catalog.Track{ID: "Dhaga", Title: "Dhaga", Artist: "Nilotpal Bora"},
		State:    playback.StatePlaying,
		Shuffle:  true,
		Volume:   0.5,
		Position: time.Second,
		Duration: time.Minute,
		Favorite: true,
	}

	s := NewState(snap, ModeFull)

	assert.Equal(t, "Dhaga", s.Title)
	assert.Equal(t, "Nilotpal Bora", s.Artist)
	assert.True(t, s.Playing)
	assert.True(t, s.Favorite)
	assert.True(t, s.Shuffle)
	assert.False(t, s.Repeat)
	assert.InDelta(t, 0.5, s.Volume, 1e-9)
	assert.Equal(t, ModeFull, s.Mode)
}

func TestHeight(t *testing.T) {
	assert.Equal(t, 3, Height(ModeMini))
	assert.Equal(t, 6, Height(ModeFull))
}

func TestRenderMini(t *testing.T) {
	out := ansi.Strip(Render(testState(ModeMini), 100))
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, Height(ModeMini))
	assert.Contains(t, lines[1], "Dhaga")
	assert.Contains(t, lines[1], "Nilotpal Bora")
	assert.Contains(t, lines[1], "1:23 / 3:58")
	for _, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 100)
	}
}

func TestRenderMini_UnknownDuration(t *testing.T) {
	s := testState(ModeMini)
	s.Duration = 0

	out := ansi.Strip(Render(s, 100))
	assert.Contains(t, out, "1:23 / —:—")
}

func TestRenderMini_Narrow(t *testing.T) {
	s := testState(ModeMini)
	s.Title = "A very long title that cannot possibly fit in the narrow bar"

	out := ansi.Strip(Render(s, 50))
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "Nilotpal Bora")
}

func TestRenderFull(t *testing.T) {
	s := testState(ModeFull)
	s.Favorite = true
	s.Repeat = true

	out := ansi.Strip(Render(s, 80))
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, Height(ModeFull))
	assert.Contains(t, lines[1], "Dhaga")
	assert.Contains(t, lines[1], "*", "favorite marker")
	assert.Contains(t, lines[2], "Nilotpal Bora")
	assert.Contains(t, lines[3], "1:23")
	assert.Contains(t, lines[3], "3:58")
	assert.Contains(t, lines[4], "[1]")
	assert.Contains(t, lines[4], " 90%")
}

func TestRenderFull_FallsBackWhenNarrow(t *testing.T) {
	out := ansi.Strip(Render(testState(ModeFull), 30))
	assert.NotContains(t, out, "[S]", "no controls row")
	assert.NotContains(t, out, "vol")
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		position time.Duration
		duration time.Duration
		width    int
		filled   int
	}{
		{"half", 30 * time.Second, time.Minute, 35, 10},
		{"unknown duration", 30 * time.Second, 0, 35, 0},
		{"past end", 2 * time.Minute, time.Minute, 35, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(RenderProgressBar(tt.position, tt.duration, tt.width, true))
			assert.Equal(t, tt.filled, strings.Count(out, filledBlock))
		})
	}
}

func TestRenderProgressBar_TooNarrow(t *testing.T) {
	out := ansi.Strip(RenderProgressBar(0, time.Minute, 8, false))
	assert.Equal(t, "||  0:00 / 1:00", out)
}

func TestRenderVolume(t *testing.T) {
	assert.Equal(t, "vol  90%", ansi.Strip(RenderVolume(0.9, false)))
	assert.Equal(t, "mute   0%", ansi.Strip(RenderVolume(0.9, true)))
}

func TestFilledCells(t *testing.T) {
	assert.Equal(t, 0, filledCells(time.Second, 0, 10))
	assert.Equal(t, 5, filledCells(time.Second, 2*time.Second, 10))
	assert.Equal(t, 10, filledCells(3*time.Second, 2*time.Second, 10))
	assert.Equal(t, 0, filledCells(-time.Second, 2*time.Second, 10))
}
