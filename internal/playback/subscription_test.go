package playback

import (
	"testing"
	"testing/synctest"
	"time"
)

func TestSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		send(sub.stateCh, StateChange{Previous: StateStopped, Current: StatePlaying})
		send(sub.trackCh, TrackChange{Index: 1})
		send(sub.positionCh, PositionChange{Position: 30 * time.Second})
		send(sub.modeCh, ModeChange{Repeat: true, Shuffle: true})
		send(sub.volumeCh, VolumeChange{Volume: 0.5})

		if e := <-sub.StateChanged; e.Current != StatePlaying {
			t.Errorf("StateChanged.Current = %v, want Playing", e.Current)
		}
		if tr := <-sub.TrackChanged; tr.Index != 1 {
			t.Errorf("TrackChanged.Index = %d, want 1", tr.Index)
		}
		if pos := <-sub.PositionChanged; pos.Position != 30*time.Second {
			t.Errorf("PositionChanged.Position = %v, want 30s", pos.Position)
		}
		if m := <-sub.ModeChanged; !m.Repeat || !m.Shuffle {
			t.Errorf("ModeChanged = %+v, want both on", m)
		}
		if v := <-sub.VolumeChanged; v.Volume != 0.5 {
			t.Errorf("VolumeChanged.Volume = %v, want 0.5", v.Volume)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		send(sub.stateCh, StateChange{})
	}

	if got := len(sub.StateChanged); got != eventBufferSize {
		t.Errorf("buffered %d events, want %d", got, eventBufferSize)
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateStopped: "Stopped",
		StatePlaying: "Playing",
		StatePaused:  "Paused",
		State(42):    "Unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
