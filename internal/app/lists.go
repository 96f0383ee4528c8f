package app

import (
	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/search"
	"github.com/llehouerou/tunedeck/internal/ui/tracklist"
)

// listID identifies one of the three track lists.
type listID int

const (
	listPlaylist listID = iota
	listFavorites
	listRecents
	listCount
)

// cycleFocus moves keyboard focus to the next list.
func (m *Model) cycleFocus() {
	m.lists[m.focus].Blur()
	m.focus = (m.focus + 1) % listCount
	m.lists[m.focus].Focus()
}

// setFocus moves keyboard focus to id.
func (m *Model) setFocus(id listID) {
	m.lists[m.focus].Blur()
	m.focus = id
	m.lists[m.focus].Focus()
}

// refreshLists rebuilds every list from the catalog, the applied search
// query and the tracker.
func (m *Model) refreshLists() {
	tracks := search.Filter(m.ctrl.Catalog().Tracks(), m.search.Applied())
	m.lists[listPlaylist].SetTracks(m.withDurations(tracks))

	if m.tracker != nil {
		m.lists[listFavorites].SetTracks(m.withDurations(m.tracker.Favorites()))
		m.lists[listRecents].SetTracks(m.withDurations(m.tracker.Recents()))
	}
}

// withDurations fills in probed durations the catalog does not carry.
func (m Model) withDurations(tracks []catalog.Track) []catalog.Track {
	if len(m.durations) == 0 {
		return tracks
	}
	out := make([]catalog.Track, len(tracks))
	for i, t := range tracks {
		if t.Duration <= 0 {
			t.Duration = m.durations[t.ID]
		}
		out[i] = t
	}
	return out
}

// decorate marks the current track and favorites in list rows.
func (m Model) decorate(current string) func(catalog.Track) tracklist.RowState {
	return func(t catalog.Track) tracklist.RowState {
		rs := tracklist.RowState{Current: t.ID == current}
		if m.tracker != nil {
			rs.Favorite = m.tracker.IsFavorite(t.ID)
		}
		return rs
	}
}
