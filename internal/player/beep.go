package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

const eventBuffer = 64

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// initSpeaker opens the audio device on first use, at the sample rate of the
// first track. Later tracks are resampled to it.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerInitialized {
		return speakerSampleRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPlaybackBlocked, err)
	}
	speakerInitialized = true
	speakerSampleRate = rate
	return rate, nil
}

// BeepEngine plays local files through the beep speaker.
type BeepEngine struct {
	mu       sync.Mutex
	state    State
	seq      uint64
	ref      string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	muted    bool
	stopTick chan struct{}

	events chan Event
	done   chan struct{}
	closed bool
	logger *zap.Logger
}

// Verify BeepEngine implements Engine at compile time.
var _ Engine = (*BeepEngine)(nil)

// NewBeepEngine creates an idle engine. The audio device is opened lazily
// by the first Play.
func NewBeepEngine(logger *zap.Logger) *BeepEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BeepEngine{
		state:  Stopped,
		level:  1,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

func (e *BeepEngine) Play(ctx context.Context, ref string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, ErrClosed
	}
	e.stopLocked()
	e.seq++
	seq := e.seq

	if err := ctx.Err(); err != nil {
		return seq, err
	}

	streamer, format, err := open(ref)
	if err != nil {
		return seq, err
	}

	rate, err := initSpeaker(format.SampleRate)
	if err != nil {
		streamer.Close()
		return seq, err
	}

	var out beep.Streamer = streamer
	if format.SampleRate != rate {
		out = beep.Resample(4, format.SampleRate, rate, streamer)
	}

	e.ref = ref
	e.streamer = streamer
	e.format = format
	e.ctrl = &beep.Ctrl{Streamer: out}
	e.volume = &effects.Volume{
		Streamer: e.ctrl,
		Base:     2,
		Volume:   levelToVolume(e.level),
		Silent:   e.muted,
	}
	e.state = Playing
	e.stopTick = make(chan struct{})

	speaker.Play(beep.Seq(e.volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker lock held.
		go e.finished(seq)
	})))

	e.emit(MetadataEvent{Seq: seq, Duration: format.SampleRate.D(streamer.Len())})
	go e.tick(seq, e.stopTick)

	e.logger.Debug("playing", zap.String("ref", ref), zap.Uint64("seq", seq))
	return seq, nil
}

func (e *BeepEngine) finished(seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.seq || e.state == Stopped {
		return
	}
	e.stopLocked()

	select {
	case e.events <- EndedEvent{Seq: seq}:
	case <-e.done:
	default:
		e.logger.Warn("event buffer full, dropping end of track", zap.Uint64("seq", seq))
	}
}

func (e *BeepEngine) tick(seq uint64, stop <-chan struct{}) {
	t := time.NewTicker(PositionInterval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			e.mu.Lock()
			if seq == e.seq && e.state == Playing {
				e.emit(PositionEvent{Seq: seq, Position: e.positionLocked()})
			}
			e.mu.Unlock()
		}
	}
}

// emit drops the event when the buffer is full; position updates are
// superseded by the next tick anyway.
func (e *BeepEngine) emit(ev Event) {
	if e.closed {
		return
	}
	select {
	case e.events <- ev:
	default:
	}
}

func (e *BeepEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *BeepEngine) stopLocked() {
	if e.state == Stopped {
		return
	}

	speaker.Clear()

	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}
	if e.streamer != nil {
		e.streamer.Close()
		e.streamer = nil
	}
	e.ctrl = nil
	e.volume = nil
	e.ref = ""
	e.state = Stopped
}

func (e *BeepEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Playing || e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	e.state = Paused
}

func (e *BeepEngine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Paused || e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	e.state = Playing
}

// Seek moves to an absolute position, clamped to the media length.
func (e *BeepEngine) Seek(pos time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.streamer == nil {
		return ErrNotLoaded
	}

	n := e.format.SampleRate.N(pos)
	n = max(0, min(n, e.streamer.Len()-1))

	speaker.Lock()
	err := e.streamer.Seek(n)
	speaker.Unlock()
	return err
}

func (e *BeepEngine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.level = clampLevel(level)
	if e.volume != nil {
		speaker.Lock()
		e.volume.Volume = levelToVolume(e.level)
		speaker.Unlock()
	}
}

func (e *BeepEngine) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.muted = muted
	if e.volume != nil {
		speaker.Lock()
		e.volume.Silent = muted
		speaker.Unlock()
	}
}

func (e *BeepEngine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *BeepEngine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionLocked()
}

func (e *BeepEngine) positionLocked() time.Duration {
	if e.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := e.format.SampleRate.D(e.streamer.Position())
	speaker.Unlock()
	return pos
}

func (e *BeepEngine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.streamer == nil {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len())
}

func (e *BeepEngine) Loaded() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ref
}

func (e *BeepEngine) Events() <-chan Event {
	return e.events
}

// Close stops playback and closes the event channel.
func (e *BeepEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.stopLocked()
	e.closed = true
	close(e.done)
	close(e.events)
	return nil
}
