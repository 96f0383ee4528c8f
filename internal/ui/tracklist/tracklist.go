// Package tracklist renders a focusable, scrollable list of tracks. The
// playlist, favorites and recents panels are all tracklists.
package tracklist

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/icons"
	"github.com/llehouerou/tunedeck/internal/ui"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

const durationWidth = 5

// Model is a list of tracks with a cursor. It only moves the cursor; the
// parent decides what activation does.
type Model struct {
	ui.Base

	title     string
	emptyText string
	tracks    []catalog.Track

	pos    int
	offset int
}

// New creates an empty list. emptyText is shown when there are no tracks.
func New(title, emptyText string) Model {
	return Model{title: title, emptyText: emptyText}
}

// Title returns the panel title.
func (m Model) Title() string {
	return m.title
}

// SetTracks replaces the tracks and clamps the cursor.
func (m *Model) SetTracks(tracks []catalog.Track) {
	m.tracks = tracks
	if len(tracks) == 0 {
		m.pos, m.offset = 0, 0
		return
	}
	m.pos = min(m.pos, len(tracks)-1)
	m.ensureVisible()
}

// Tracks returns the listed tracks.
func (m Model) Tracks() []catalog.Track {
	return m.tracks
}

// Len returns the number of tracks.
func (m Model) Len() int {
	return len(m.tracks)
}

// SetSize sets the outer panel size.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.ensureVisible()
}

// Pos returns the cursor index.
func (m Model) Pos() int { return m.pos }

// Selected returns the track under the cursor.
func (m Model) Selected() (catalog.Track, bool) {
	if len(m.tracks) == 0 {
		return catalog.Track{}, false
	}
	return m.tracks[m.pos], true
}

// Move moves the cursor by delta, clamped to the list.
func (m *Model) Move(delta int) {
	m.Jump(m.pos + delta)
}

// Jump places the cursor at index, clamped to the list.
func (m *Model) Jump(index int) {
	if len(m.tracks) == 0 {
		return
	}
	m.pos = max(0, min(index, len(m.tracks)-1))
	m.ensureVisible()
}

// JumpID places the cursor on the track with the given ID, if listed.
func (m *Model) JumpID(id string) bool {
	for i, t := range m.tracks {
		if t.ID == id {
			m.Jump(i)
			return true
		}
	}
	return false
}

// Top moves the cursor to the first track.
func (m *Model) Top() { m.Jump(0) }

// Bottom moves the cursor to the last track.
func (m *Model) Bottom() { m.Jump(len(m.tracks) - 1) }

func (m Model) listHeight() int {
	return m.ContentHeight(ui.PanelOverhead)
}

func (m *Model) ensureVisible() {
	height := m.listHeight()
	if height <= 0 || len(m.tracks) == 0 {
		return
	}
	margin := min(ui.ScrollMargin, (height-1)/2)

	if m.pos < m.offset+margin {
		m.offset = max(m.pos-margin, 0)
	}
	if m.pos >= m.offset+height-margin {
		m.offset = m.pos - height + margin + 1
	}
	m.offset = max(0, min(m.offset, len(m.tracks)-height))
}

// VisibleRange returns the [start, end) indices currently on screen.
func (m Model) VisibleRange() (start, end int) {
	height := m.listHeight()
	if height <= 0 || len(m.tracks) == 0 {
		return 0, 0
	}
	return m.offset, min(m.offset+height, len(m.tracks))
}

// HandleMouse moves the cursor to a clicked row. It returns the clicked
// index, or -1 when the event did not hit a row. Wheel events scroll.
// y is relative to the top of the panel.
func (m *Model) HandleMouse(msg tea.MouseMsg, y int) int {
	switch msg.Button { //nolint:exhaustive // only wheel and left click are handled
	case tea.MouseButtonWheelUp:
		m.Move(-1)
		return -1
	case tea.MouseButtonWheelDown:
		m.Move(1)
		return -1
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return -1
		}
	default:
		return -1
	}

	row := y - (ui.PanelOverhead - 1)
	start, end := m.VisibleRange()
	if row < 0 || start+row >= end {
		return -1
	}
	m.Jump(start + row)
	return m.pos
}

// RowState tells the list how to decorate one track.
type RowState struct {
	Current  bool // the controller's current track
	Favorite bool
}

// View renders the panel. decorate may be nil.
func (m Model) View(decorate func(catalog.Track) RowState) string {
	t := styles.T()
	s := t.S()

	innerWidth := m.InnerWidth()
	listHeight := m.listHeight()

	header := s.Title.Render(render.Truncate(m.title, innerWidth))
	if len(m.tracks) > 0 {
		count := s.Subtle.Render(strconv.Itoa(len(m.tracks)))
		header = render.Row(header, count, innerWidth)
	}

	lines := make([]string, 0, listHeight+1)
	lines = append(lines, header)

	if len(m.tracks) == 0 {
		lines = append(lines, s.Muted.Render(render.Truncate(m.emptyText, innerWidth)))
	}

	start, end := m.VisibleRange()
	for i := start; i < end; i++ {
		var rs RowState
		if decorate != nil {
			rs = decorate(m.tracks[i])
		}
		lines = append(lines, m.renderRow(m.tracks[i], rs, i == m.pos, innerWidth))
	}

	for len(lines) < listHeight+1 {
		lines = append(lines, "")
	}

	return styles.PanelStyle(m.Focused()).
		Width(innerWidth).
		Height(listHeight + 1).
		Render(strings.Join(lines[:listHeight+1], "\n"))
}

func (m Model) renderRow(track catalog.Track, rs RowState, selected bool, width int) string {
	s := styles.T().S()

	marker := "  "
	if rs.Current {
		marker = icons.Current().Play + " "
	}
	heart := " "
	if rs.Favorite {
		heart = icons.Current().Favorite
	}
	dur := catalog.FormatDuration(track.Duration)

	fixed := 2 + 1 + 1 + durationWidth + 1
	textWidth := max(width-fixed, 0)
	text := track.Title
	if track.Artist != "" {
		text += " · " + track.Artist
	}
	text = render.TruncateAndPad(text, textWidth)

	row := marker + text + " " + heart + " " + runewidth.FillLeft(dur, durationWidth)

	switch {
	case selected && m.Focused():
		return s.Cursor.Render(render.TruncateAndPad(row, width))
	case rs.Current:
		return s.Playing.Render(row)
	default:
		return s.Base.Render(row)
	}
}
