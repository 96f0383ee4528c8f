package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/icons"
	"github.com/llehouerou/tunedeck/internal/ui/overlay"
	"github.com/llehouerou/tunedeck/internal/ui/playerbar"
	"github.com/llehouerou/tunedeck/internal/ui/render"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	l := computeLayout(m.width, m.height)
	snap := m.ctrl.Snapshot()
	decorate := m.decorate(snap.Track.ID)

	player := playerbar.Render(playerbar.NewState(snap, l.playerMode), m.width)

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.lists[listFavorites].View(decorate),
		m.lists[listRecents].View(decorate),
	)
	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		m.lists[listPlaylist].View(decorate),
		side,
	)

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.search.View(),
		player,
		lists,
		m.renderStatus(),
	)

	if m.showHelp {
		view = overlay.Center(view, m.help.View(), m.width, m.height)
	}
	return view
}

// renderStatus renders the bottom line: the transient status message, or
// the query summary and help hint.
func (m Model) renderStatus() string {
	s := styles.T().S()
	hint := "? help"
	room := max(m.width-lipgloss.Width(hint)-3, 0)

	var left string
	switch {
	case m.listening:
		left = s.Accent.Render(render.Truncate(icons.Current().Mic+" "+m.status, room))
	case m.status != "":
		left = s.Warning.Render(render.Truncate(m.status, room))
	case m.search.Applied() != "":
		summary := fmt.Sprintf("%s %q · %d of %d tracks",
			icons.Current().Search, m.search.Applied(),
			m.lists[listPlaylist].Len(), m.ctrl.Catalog().Len())
		left = s.Muted.Render(render.Truncate(summary, room))
	}

	return render.Row(" "+left, s.Subtle.Render(hint)+" ", m.width)
}
