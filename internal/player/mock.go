package player

import (
	"context"
	"sync"
	"time"
)

// Mock is a test double for Engine. Events are only produced by the
// Emit helpers.
type Mock struct {
	mu        sync.Mutex
	state     State
	seq       uint64
	ref       string
	position  time.Duration
	duration  time.Duration
	level     float64
	muted     bool
	playErr   error
	playCalls []string
	seekCalls []time.Duration
	stops     int
	events    chan Event
	closed    bool
}

// NewMock creates a stopped mock engine.
func NewMock() *Mock {
	return &Mock{
		state:  Stopped,
		level:  1,
		events: make(chan Event, eventBuffer),
	}
}

func (m *Mock) Play(_ context.Context, ref string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.playCalls = append(m.playCalls, ref)
	m.seq++
	if m.playErr != nil {
		m.state = Stopped
		m.ref = ""
		return m.seq, m.playErr
	}
	m.state = Playing
	m.ref = ref
	m.position = 0
	return m.seq, nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	m.state = Stopped
	m.ref = ""
}

func (m *Mock) Seek(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	if m.state == Stopped {
		return ErrNotLoaded
	}
	m.position = pos
	return nil
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = clampLevel(level)
}

func (m *Mock) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Loaded() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ref
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// Test helpers

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) SetState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) Stops() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

func (m *Mock) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *Mock) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Seq returns the sequence number of the latest Play call.
func (m *Mock) Seq() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq
}

// Emit queues an event on the Events channel.
func (m *Mock) Emit(ev Event) {
	m.events <- ev
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
