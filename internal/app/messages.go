package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/player"
)

// EngineEventMsg carries one media engine event into the update loop.
type EngineEventMsg struct {
	Event player.Event
}

// EngineClosedMsg is sent once the engine event channel closes.
type EngineClosedMsg struct{}

// ControllerEventMsg carries one controller subscription event:
// a playback.StateChange, TrackChange, PositionChange, ModeChange,
// VolumeChange or ErrorEvent.
type ControllerEventMsg struct {
	Event any
}

// ControllerClosedMsg is sent once the controller subscription ends.
type ControllerClosedMsg struct{}

// DurationsMsg delivers probed track durations keyed by track ID.
type DurationsMsg struct {
	Durations map[string]time.Duration
}

// VoiceResultMsg delivers a speech transcript or the reason there is none.
type VoiceResultMsg struct {
	Text string
	Err  error
}

// AutoplayResultMsg reports the startup play attempt.
type AutoplayResultMsg struct {
	Err error
}

// StatusClearMsg clears the status line if it still shows message ID.
type StatusClearMsg struct {
	ID int
}

// StatusDuration is how long status messages are displayed.
const StatusDuration = 3 * time.Second

// StatusClearCmd returns a command that clears the status after a delay.
func StatusClearCmd(id int) tea.Cmd {
	return tea.Tick(StatusDuration, func(time.Time) tea.Msg {
		return StatusClearMsg{ID: id}
	})
}
