package app

import (
	"github.com/llehouerou/tunedeck/internal/ui/playerbar"
)

const (
	searchHeight = 3 // bordered single-line input
	statusHeight = 1

	// Below this terminal height the full player collapses into the mini
	// player.
	fullPlayerMinHeight = 24
	minListHeight       = 5
)

// layout holds the computed geometry of the screen.
type layout struct {
	playerMode   playerbar.DisplayMode
	playerHeight int

	listTop       int // first line of the list area
	listHeight    int
	playlistWidth int
	sideWidth     int
	favHeight     int
	recentHeight  int
}

func computeLayout(width, height int) layout {
	l := layout{playerMode: playerbar.ModeMini}
	if height >= fullPlayerMinHeight {
		l.playerMode = playerbar.ModeFull
	}
	l.playerHeight = playerbar.Height(l.playerMode)

	l.listTop = searchHeight + l.playerHeight
	l.listHeight = max(height-l.listTop-statusHeight, minListHeight)

	l.playlistWidth = width * 3 / 5
	l.sideWidth = width - l.playlistWidth
	l.favHeight = l.listHeight / 2
	l.recentHeight = l.listHeight - l.favHeight
	return l
}

// listAt returns the list under screen cell (x, y) and y relative to that
// list's panel.
func (l layout) listAt(x, y int) (listID, int, bool) {
	rel := y - l.listTop
	if rel < 0 || rel >= l.listHeight {
		return 0, 0, false
	}
	if x < l.playlistWidth {
		return listPlaylist, rel, true
	}
	if rel < l.favHeight {
		return listFavorites, rel, true
	}
	return listRecents, rel - l.favHeight, true
}

// resize applies the layout to the child components.
func (m *Model) resize() {
	l := computeLayout(m.width, m.height)
	m.search.SetWidth(m.width)
	m.lists[listPlaylist].SetSize(l.playlistWidth, l.listHeight)
	m.lists[listFavorites].SetSize(l.sideWidth, l.favHeight)
	m.lists[listRecents].SetSize(l.sideWidth, l.recentHeight)
	m.help.SetSize(m.width, m.height)
}
