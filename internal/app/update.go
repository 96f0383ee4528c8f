package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/search"
	"github.com/llehouerou/tunedeck/internal/speech"
	"github.com/llehouerou/tunedeck/internal/ui/help"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case search.QueryReadyMsg:
		if m.search.Apply(msg) {
			m.refreshLists()
		}
		return m, nil

	case EngineEventMsg:
		if err := m.ctrl.HandleEvent(m.ctx(), msg.Event); err != nil {
			m.logger.Debug("advance after track end", zap.Error(err))
		}
		return m, m.WatchEngineEvents()

	case EngineClosedMsg, ControllerClosedMsg:
		return m, nil

	case ControllerEventMsg:
		cmd := m.handleControllerEvent(msg.Event)
		return m, tea.Batch(cmd, m.WatchControllerEvents())

	case DurationsMsg:
		m.durations = msg.Durations
		m.refreshLists()
		return m, nil

	case VoiceResultMsg:
		return m.handleVoiceResult(msg)

	case AutoplayResultMsg:
		if msg.Err != nil {
			m.logger.Debug("autoplay refused", zap.Error(msg.Err))
		}
		return m, nil

	case StatusClearMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	// Cursor blink and other input internals.
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
		case "j", "down":
			m.help.ScrollDown()
		case "k", "up":
			m.help.ScrollUp()
		}
		return m, nil
	}

	if m.search.Focused() {
		if m.resolver.Resolve(key, true) == keymap.ActionBlurSearch {
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	return m.handleAction(m.resolver.Resolve(key, false))
}

//nolint:cyclop // flat dispatch over every action
func (m Model) handleAction(action keymap.Action) (tea.Model, tea.Cmd) {
	list := &m.lists[m.focus]

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		m.help.Reset()
	case keymap.ActionSearch:
		return m, m.search.Focus()
	case keymap.ActionVoice:
		return m.startVoiceSearch()
	case keymap.ActionTheme:
		return m, m.toggleTheme()
	case keymap.ActionFocusNext:
		m.cycleFocus()

	case keymap.ActionTogglePlay:
		m.logRejected(m.ctrl.Toggle(m.ctx()))
	case keymap.ActionNext:
		m.logRejected(m.ctrl.Next(m.ctx()))
	case keymap.ActionPrevious:
		m.logRejected(m.ctrl.Previous(m.ctx()))
	case keymap.ActionSeekForward:
		m.logRejected(m.ctrl.SeekBy(seekStep))
	case keymap.ActionSeekBack:
		m.logRejected(m.ctrl.SeekBy(-seekStep))
	case keymap.ActionMute:
		m.ctrl.ToggleMute()
	case keymap.ActionVolumeUp:
		m.ctrl.ChangeVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.ctrl.ChangeVolume(-volumeStep)
	case keymap.ActionShuffle:
		m.ctrl.ToggleShuffle()
	case keymap.ActionRepeat:
		m.ctrl.ToggleRepeat()
	case keymap.ActionFavorite:
		return m, m.toggleFavorite()

	case keymap.ActionMoveUp:
		list.Move(-1)
	case keymap.ActionMoveDown:
		list.Move(1)
	case keymap.ActionTop:
		list.Top()
	case keymap.ActionBottom:
		list.Bottom()
	case keymap.ActionActivate:
		if track, ok := list.Selected(); ok {
			return m, m.activate(track)
		}

	case keymap.ActionBlurSearch:
	}
	return m, nil
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y < searchHeight {
		return m, m.search.Focus()
	}

	l := computeLayout(m.width, m.height)
	id, rel, ok := l.listAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}

	if msg.Button == tea.MouseButtonLeft {
		m.search.Blur()
		m.setFocus(id)
	}
	if idx := m.lists[id].HandleMouse(msg, rel); idx >= 0 {
		if track, ok := m.lists[id].Selected(); ok {
			return m, m.activate(track)
		}
	}
	return m, nil
}

// activate plays track, as choosing it in any list does.
func (m *Model) activate(track catalog.Track) tea.Cmd {
	err := m.ctrl.SelectID(m.ctx(), track.ID)
	m.refreshLists()
	if errors.Is(err, catalog.ErrUnknownTrack) {
		return m.setStatus(errmsg.FormatWith(errmsg.OpTrackActivate, track.Title, err))
	}
	m.logRejected(err)
	return nil
}

// logRejected logs a rejected play or seek. The controller has already reverted
// its state and published an ErrorEvent.
func (m *Model) logRejected(err error) {
	if err != nil {
		m.logger.Debug("playback request", zap.Error(err))
	}
}

func (m *Model) toggleFavorite() tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	track := m.ctrl.Snapshot().Track
	_, err := m.tracker.ToggleFavorite(track)
	m.ctrl.RefreshFavorite()
	m.refreshLists()
	if err != nil {
		m.logger.Warn("save favorites", zap.Error(err))
		return m.setStatus(errmsg.Format(errmsg.OpFavoriteSave, err))
	}
	return nil
}

func (m *Model) toggleTheme() tea.Cmd {
	m.theme = m.theme.Toggle()
	styles.Set(m.theme)

	// Help content bakes in colors.
	m.help = help.New(keymap.All)
	m.help.SetSize(m.width, m.height)

	if m.prefs == nil {
		return nil
	}
	if err := m.prefs.SaveTheme(m.theme); err != nil {
		m.logger.Warn("save theme", zap.Error(err))
		return m.setStatus(errmsg.Format(errmsg.OpSaveTheme, err))
	}
	return nil
}

func (m Model) startVoiceSearch() (tea.Model, tea.Cmd) {
	if m.listening {
		return m, nil
	}
	m.listening = true
	return m, tea.Batch(m.setStatus("Listening..."), VoiceSearchCmd(m.recognizer))
}

func (m Model) handleVoiceResult(msg VoiceResultMsg) (tea.Model, tea.Cmd) {
	m.listening = false

	switch {
	case errors.Is(msg.Err, speech.ErrUnsupported):
		return m, m.setStatus("Voice search is not supported")
	case errors.Is(msg.Err, speech.ErrNoSpeech):
		return m, m.setStatus("No speech detected")
	case msg.Err != nil:
		m.logger.Warn("voice search", zap.Error(msg.Err))
		return m, m.setStatus(errmsg.Format(errmsg.OpVoiceSearch, msg.Err))
	}

	// A transcript applies at once, without the typing debounce.
	m.search.SetQuery(msg.Text)
	m.refreshLists()
	m.status = ""
	return m, nil
}

func (m *Model) handleControllerEvent(ev any) tea.Cmd {
	switch e := ev.(type) {
	case playback.StateChange:
		if e.Current == playback.StatePlaying && m.nowPlaying != nil {
			if err := m.nowPlaying.Announce(m.ctrl.Snapshot().Track); err != nil {
				m.logger.Debug("now playing notification", zap.Error(err))
			}
		}
	case playback.TrackChange:
		m.refreshLists()
	case playback.ErrorEvent:
		if e.Op == errmsg.OpPlaybackStart {
			m.logger.Debug("play rejected", zap.String("ref", e.Ref), zap.Error(e.Err))
			return nil
		}
		return m.setStatus(errmsg.Format(e.Op, e.Err))
	}
	return nil
}

// setStatus shows a transient message and schedules its removal.
func (m *Model) setStatus(s string) tea.Cmd {
	m.statusID++
	m.status = s
	return StatusClearCmd(m.statusID)
}
