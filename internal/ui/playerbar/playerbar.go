// Package playerbar renders the now-playing surfaces: the full player panel
// and the one-line mini player. Both read the same controller snapshot.
package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/icons"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/ui"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeMini DisplayMode = iota // Single-line view
	ModeFull                    // Panel with controls and volume
)

const (
	fullContentRows = 4
	separator       = "   "
)

// State holds everything needed to render the player bar.
type State struct {
	Title    string
	Artist   string
	Playing  bool
	Favorite bool
	Shuffle  bool
	Repeat   bool
	Volume   float64
	Muted    bool
	Position time.Duration
	Duration time.Duration // zero when unknown
	Mode     DisplayMode
}

// NewState copies what the bar shows out of a controller snapshot.
func NewState(snap playback.Snapshot, mode DisplayMode) State {
	return State{
		Title:    snap.Track.Title,
		Artist:   snap.Track.Artist,
		Playing:  snap.Playing(),
		Favorite: snap.Favorite,
		Shuffle:  snap.Shuffle,
		Repeat:   snap.Repeat,
		Volume:   snap.Volume,
		Muted:    snap.Muted,
		Position: snap.Position,
		Duration: snap.Duration,
		Mode:     mode,
	}
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeFull {
		return fullContentRows + ui.BorderHeight
	}
	return 3 // top border + content + bottom border
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	if s.Mode == ModeFull && width-ui.BorderWidth >= ui.MinFullPlayerWidth {
		return renderFull(s, width)
	}
	return renderMini(s, width)
}

func renderMini(s State, width int) string {
	// border + horizontal padding
	innerWidth := max(width-6, 0)

	status := icons.Status(s.Playing)
	heart := heartStyle(s.Favorite).Render(icons.Heart(s.Favorite))
	timeStr := catalog.FormatPosition(s.Position) + " / " + catalog.FormatDuration(s.Duration)

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(timeStr) + lipgloss.Width(heart) + len(separator)*3
	minBarWidth := 10

	title := displayTitle(s.Title)
	info := s.Artist
	available := innerWidth - fixed - minBarWidth

	var styledTitle, styledInfo string
	var used int
	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	switch {
	case info != "" && titleWidth+len(separator)+infoWidth <= available:
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(info)
		used = titleWidth + len(separator) + infoWidth
	case info != "" && titleWidth+len(separator) < available:
		maxInfo := available - titleWidth - len(separator)
		styledTitle = titleStyle().Render(title)
		styledInfo = artistStyle().Render(render.Truncate(info, maxInfo))
		used = titleWidth + len(separator) + lipgloss.Width(render.Truncate(info, maxInfo))
	default:
		maxTitle := max(available, 10)
		t := render.Truncate(title, maxTitle)
		styledTitle = titleStyle().Render(t)
		used = lipgloss.Width(t)
	}

	barWidth := max(innerWidth-used-fixed, 5)

	var content strings.Builder
	content.WriteString(styledTitle)
	if styledInfo != "" {
		content.WriteString(separator)
		content.WriteString(styledInfo)
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(progressLine(s.Position, s.Duration, barWidth))
	content.WriteString(separator)
	content.WriteString(timeStyle().Render(timeStr))
	content.WriteString(separator)
	content.WriteString(heart)

	return barStyle().Padding(0, 2).Width(width - ui.BorderWidth).Render(content.String())
}

func renderFull(s State, width int) string {
	innerWidth := width - ui.BorderWidth
	contentWidth := innerWidth - 4 // horizontal padding

	t := styles.T()
	title := render.Truncate(displayTitle(s.Title), contentWidth-4)
	heart := heartStyle(s.Favorite).Render(icons.Heart(s.Favorite))
	titleLine := render.Row(styles.ApplyBoldGradient(title, t.Primary, t.Secondary), heart, contentWidth)

	artist := s.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}
	artistLine := artistStyle().Render(render.Truncate(artist, contentWidth))

	progress := RenderProgressBar(s.Position, s.Duration, contentWidth, s.Playing)

	ic := icons.Current()
	controls := strings.Join([]string{ic.Previous, icons.Status(!s.Playing), ic.Next}, "  ")
	modes := badge(ic.Shuffle, s.Shuffle) + " " + badge(ic.Repeat, s.Repeat)
	controlsLine := render.Row(controls+separator+modes, RenderVolume(s.Volume, s.Muted), contentWidth)

	content := strings.Join([]string{titleLine, artistLine, progress, controlsLine}, "\n")
	return barStyle().Padding(0, 2).Width(innerWidth).Render(content)
}

// badge renders a mode glyph highlighted when on.
func badge(glyph string, on bool) string {
	if on {
		return styles.T().S().Playing.Render(glyph)
	}
	return styles.T().S().Subtle.Render(glyph)
}

func displayTitle(title string) string {
	if title == "" {
		return "Unknown Track"
	}
	return title
}

func progressLine(position, duration time.Duration, width int) string {
	filled := filledCells(position, duration, width)
	return progressFilledStyle().Render(strings.Repeat("━", filled)) +
		progressEmptyStyle().Render(strings.Repeat("─", width-filled))
}

// filledCells maps position onto width cells. An unknown duration leaves
// the bar empty.
func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || width <= 0 {
		return 0
	}
	ratio := min(1, max(0, float64(position)/float64(duration)))
	return min(int(float64(width)*ratio), width)
}
