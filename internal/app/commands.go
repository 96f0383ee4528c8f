package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/playback"
	"github.com/llehouerou/tunedeck/internal/speech"
)

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchEngineEvents waits for the next media engine event.
func (m Model) WatchEngineEvents() tea.Cmd {
	return waitForChannel(m.events, func(ev player.Event, ok bool) tea.Msg {
		if !ok {
			return EngineClosedMsg{}
		}
		return EngineEventMsg{Event: ev}
	})
}

// WatchControllerEvents waits for the next controller event. Events
// triggered outside the update loop (MPRIS, engine goroutines) wake the
// view this way.
func (m Model) WatchControllerEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ControllerEventMsg{Event: e}
		case e := <-sub.TrackChanged:
			return ControllerEventMsg{Event: e}
		case e := <-sub.PositionChanged:
			return ControllerEventMsg{Event: e}
		case e := <-sub.ModeChanged:
			return ControllerEventMsg{Event: e}
		case e := <-sub.VolumeChanged:
			return ControllerEventMsg{Event: e}
		case e := <-sub.Error:
			return ControllerEventMsg{Event: e}
		case <-sub.Done:
			return ControllerClosedMsg{}
		}
	}
}

// ProbeDurationsCmd measures track durations in the background.
func ProbeDurationsCmd(cat *catalog.Catalog, probe catalog.ProbeFunc) tea.Cmd {
	if cat == nil || probe == nil {
		return nil
	}
	return func() tea.Msg {
		return DurationsMsg{Durations: catalog.ProbeDurations(context.Background(), cat, probe)}
	}
}

// VoiceSearchCmd records one utterance and returns its transcript.
func VoiceSearchCmd(r speech.Recognizer) tea.Cmd {
	return func() tea.Msg {
		if r == nil {
			return VoiceResultMsg{Err: speech.ErrUnsupported}
		}
		ctx, cancel := context.WithTimeout(context.Background(), speech.DefaultTimeout)
		defer cancel()
		text, err := r.Transcribe(ctx)
		return VoiceResultMsg{Text: text, Err: err}
	}
}

// AutoplayCmd tries to start the current track. A refusal is expected
// when no audio device is available.
func AutoplayCmd(ctrl *playback.Controller) tea.Cmd {
	return func() tea.Msg {
		return AutoplayResultMsg{Err: ctrl.Play(context.Background())}
	}
}
