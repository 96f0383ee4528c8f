// Package playback owns the session's playback state: the current track,
// transport, shuffle/repeat policy and volume. Every surface (TUI, MPRIS,
// CLI) reads and drives the same Controller.
package playback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/prefs"
)

// ErrEmptyCatalog is returned by New when there is nothing to play.
var ErrEmptyCatalog = errors.New("catalog has no tracks")

// Controller is the single source of truth for what is playing.
// It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	cat    *catalog.Catalog
	engine player.Engine

	index    int
	state    State
	shuffle  bool
	repeat   bool
	volume   float64
	muted    bool
	position time.Duration
	duration time.Duration
	favorite bool

	// seq is the engine load sequence of the current track; events for
	// any other sequence are stale. Zero means nothing is loaded.
	seq uint64

	persister Persister
	recorder  Recorder
	favorites FavoriteChecker
	randIntn  func(n int) int
	logger    *zap.Logger

	subs   []*Subscription
	closed bool
}

// New creates a controller with track 0 loaded and not playing.
func New(cat *catalog.Catalog, eng player.Engine, opts ...Option) (*Controller, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Controller{
		cat:      cat,
		engine:   eng,
		state:    StateStopped,
		volume:   prefs.DefaultVolume,
		randIntn: rand.IntN,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	eng.SetVolume(c.volume)
	eng.SetMuted(c.muted)

	track := cat.At(0)
	c.duration = track.Duration
	c.favorite = c.isFavorite(track)

	return c, nil
}

// Catalog returns the catalog the controller plays from.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.cat
}

// Subscribe returns a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Index:    c.index,
		Track:    c.cat.At(c.index),
		State:    c.state,
		Shuffle:  c.shuffle,
		Repeat:   c.repeat,
		Volume:   c.volume,
		Muted:    c.muted,
		Position: c.position,
		Duration: c.duration,
		Favorite: c.favorite,
	}
}

// Load makes index the current track without starting playback. The index
// wraps modulo the catalog length, so -1 is the last track.
func (c *Controller) Load(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(index)
}

func (c *Controller) loadLocked(index int) {
	n := c.cat.Len()
	i := ((index % n) + n) % n

	prevIndex := c.index
	prev := c.cat.At(prevIndex)

	c.engine.Stop()
	c.seq = 0

	track := c.cat.At(i)
	c.index = i
	c.position = 0
	c.duration = track.Duration
	c.favorite = c.isFavorite(track)
	c.setStateLocked(StateStopped)

	c.emitTrack(TrackChange{
		Previous:      prev,
		Current:       track,
		PreviousIndex: prevIndex,
		Index:         i,
		Favorite:      c.favorite,
	})
}

// Play starts or resumes the current track. On failure the state reverts to
// paused, an ErrorEvent is emitted, and the error is returned wrapping
// player.ErrPlaybackBlocked or player.ErrMediaLoad.
func (c *Controller) Play(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playLocked(ctx)
}

func (c *Controller) playLocked(ctx context.Context) error {
	track := c.cat.At(c.index)
	ref := track.MediaRef

	if c.seq != 0 && c.engine.Loaded() == ref {
		switch c.engine.State() {
		case player.Playing:
			c.setStateLocked(StatePlaying)
			return nil
		case player.Paused:
			c.engine.Resume()
			c.setStateLocked(StatePlaying)
			return nil
		case player.Stopped:
		}
	}

	seq, err := c.engine.Play(ctx, ref)
	c.seq = seq
	if err != nil {
		c.seq = 0
		prev := c.state
		c.state = StatePaused
		c.emitState(StateChange{Previous: prev, Current: StatePaused})
		c.emitError(ErrorEvent{Op: errmsg.OpPlaybackStart, Ref: ref, Err: err})
		c.logger.Debug("play rejected", zap.String("track", track.ID), zap.Error(err))
		return fmt.Errorf("play %q: %w", track.Title, err)
	}

	if c.position > 0 {
		if err := c.engine.Seek(c.position); err != nil {
			c.logger.Debug("restore position", zap.Error(err))
		}
	}

	c.setStateLocked(StatePlaying)
	return nil
}

// Pause always succeeds.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

func (c *Controller) pauseLocked() {
	c.engine.Pause()
	if c.state == StatePlaying {
		c.setStateLocked(StatePaused)
	}
}

// Toggle pauses when playing and plays otherwise.
func (c *Controller) Toggle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StatePlaying {
		c.pauseLocked()
		return nil
	}
	return c.playLocked(ctx)
}

// Next advances to the following track, or a uniformly random one when
// shuffle is on (the current track may be picked again), then plays it and
// records it as recent.
func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextLocked(ctx)
}

func (c *Controller) nextLocked(ctx context.Context) error {
	i := c.index + 1
	if c.shuffle {
		i = c.randIntn(c.cat.Len())
	}
	return c.activateLocked(ctx, i)
}

// Previous goes back one track, never consulting shuffle.
func (c *Controller) Previous(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activateLocked(ctx, c.index-1)
}

// Select activates the track at index, as a click in any list does.
func (c *Controller) Select(ctx context.Context, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activateLocked(ctx, index)
}

// SelectID activates the track with the given ID.
func (c *Controller) SelectID(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.cat.IndexOf(id)
	if !ok {
		return fmt.Errorf("%q: %w", id, catalog.ErrUnknownTrack)
	}
	return c.activateLocked(ctx, i)
}

// activateLocked is load + play + record. The track is recorded even when
// playback is rejected, since the user still navigated to it.
func (c *Controller) activateLocked(ctx context.Context, index int) error {
	c.loadLocked(index)
	err := c.playLocked(ctx)
	c.recordLocked(c.cat.At(c.index))
	return err
}

func (c *Controller) recordLocked(t catalog.Track) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.AddRecent(t); err != nil {
		c.logger.Warn("record recent", zap.String("track", t.ID), zap.Error(err))
		c.emitError(ErrorEvent{Op: errmsg.OpRecentsSave, Err: err})
	}
}

// OnTrackEnded handles natural completion: with repeat on, the same track
// restarts from 0 and is not recorded again; otherwise it behaves as Next.
func (c *Controller) OnTrackEnded(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onTrackEndedLocked(ctx)
}

func (c *Controller) onTrackEndedLocked(ctx context.Context) error {
	if c.repeat {
		// Restart from the top rather than resuming whatever the engine holds.
		c.engine.Stop()
		c.seq = 0
		c.position = 0
		c.emitPosition()
		return c.playLocked(ctx)
	}
	return c.nextLocked(ctx)
}

// HandleEvent applies one engine event. Events from a superseded load are
// dropped.
func (c *Controller) HandleEvent(ctx context.Context, ev player.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seq == 0 || ev.Sequence() != c.seq {
		return nil
	}

	switch e := ev.(type) {
	case player.PositionEvent:
		c.position = e.Position
		c.emitPosition()
	case player.MetadataEvent:
		if e.Duration > 0 {
			c.duration = e.Duration
		}
		c.emitPosition()
	case player.EndedEvent:
		if c.duration > 0 {
			c.position = c.duration
		}
		return c.onTrackEndedLocked(ctx)
	}
	return nil
}

// Seek sets the position, clamped to [0, duration]. With an unknown
// duration only the lower bound applies.
func (c *Controller) Seek(pos time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seekLocked(pos)
}

// SeekBy moves the position by delta, with the same clamping as Seek.
func (c *Controller) SeekBy(delta time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := c.position
	if c.seq != 0 {
		base = c.engine.Position()
	}
	return c.seekLocked(base + delta)
}

func (c *Controller) seekLocked(pos time.Duration) error {
	pos = max(pos, 0)
	if c.duration > 0 {
		pos = min(pos, c.duration)
	}
	c.position = pos
	c.emitPosition()

	if c.seq == 0 {
		// Applied by the next Play.
		return nil
	}
	if err := c.engine.Seek(pos); err != nil {
		if errors.Is(err, player.ErrNotLoaded) {
			// Track just ended; the position is applied by the next Play.
			return nil
		}
		c.emitError(ErrorEvent{Op: errmsg.OpPlaybackSeek, Ref: c.cat.At(c.index).MediaRef, Err: err})
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// SetVolume clamps v into [0,1], mutes when it is 0 and unmutes otherwise,
// and persists the level.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVolumeLocked(v)
}

// ChangeVolume adjusts the volume by delta.
func (c *Controller) ChangeVolume(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Keyboard steps accumulate float error; snap to whole percents.
	c.setVolumeLocked(math.Round((c.volume+delta)*100) / 100)
}

func (c *Controller) setVolumeLocked(v float64) {
	v = clampVolume(v)
	c.volume = v
	c.muted = v == 0
	c.engine.SetVolume(v)
	c.engine.SetMuted(c.muted)
	c.emitVolume()

	if c.persister != nil {
		if err := c.persister.SaveVolume(v); err != nil {
			c.logger.Warn("save volume", zap.Error(err))
			c.emitError(ErrorEvent{Op: errmsg.OpSaveVolume, Err: err})
		}
	}
}

// ToggleMute flips the mute flag without touching the stored volume.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.muted = !c.muted
	c.engine.SetMuted(c.muted)
	c.emitVolume()
}

func (c *Controller) SetShuffle(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setShuffleLocked(on)
}

func (c *Controller) ToggleShuffle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setShuffleLocked(!c.shuffle)
}

func (c *Controller) setShuffleLocked(on bool) {
	c.shuffle = on
	c.emitMode()
	if c.persister != nil {
		if err := c.persister.SaveShuffle(on); err != nil {
			c.logger.Warn("save shuffle", zap.Error(err))
			c.emitError(ErrorEvent{Op: errmsg.OpSaveShuffle, Err: err})
		}
	}
}

func (c *Controller) SetRepeat(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRepeatLocked(on)
}

func (c *Controller) ToggleRepeat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRepeatLocked(!c.repeat)
}

func (c *Controller) setRepeatLocked(on bool) {
	c.repeat = on
	c.emitMode()
	if c.persister != nil {
		if err := c.persister.SaveRepeat(on); err != nil {
			c.logger.Warn("save repeat", zap.Error(err))
			c.emitError(ErrorEvent{Op: errmsg.OpSaveRepeat, Err: err})
		}
	}
}

// RefreshFavorite recomputes the favorite indicator of the current track
// and emits a TrackChange so every surface redraws it.
func (c *Controller) RefreshFavorite() {
	c.mu.Lock()
	defer c.mu.Unlock()

	track := c.cat.At(c.index)
	c.favorite = c.isFavorite(track)
	c.emitTrack(TrackChange{
		Previous:      track,
		Current:       track,
		PreviousIndex: c.index,
		Index:         c.index,
		Favorite:      c.favorite,
	})
}

// Close stops the engine and ends every subscription.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.engine.Stop()
	c.seq = 0
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	return nil
}

func (c *Controller) isFavorite(t catalog.Track) bool {
	return c.favorites != nil && c.favorites.IsFavorite(t.ID)
}

func (c *Controller) setStateLocked(s State) {
	if c.state == s {
		return
	}
	prev := c.state
	c.state = s
	c.emitState(StateChange{Previous: prev, Current: s})
}

func (c *Controller) emitState(e StateChange) {
	for _, sub := range c.subs {
		send(sub.stateCh, e)
	}
}

func (c *Controller) emitTrack(e TrackChange) {
	for _, sub := range c.subs {
		send(sub.trackCh, e)
	}
}

func (c *Controller) emitPosition() {
	e := PositionChange{Position: c.position, Duration: c.duration}
	for _, sub := range c.subs {
		send(sub.positionCh, e)
	}
}

func (c *Controller) emitMode() {
	e := ModeChange{Shuffle: c.shuffle, Repeat: c.repeat}
	for _, sub := range c.subs {
		send(sub.modeCh, e)
	}
}

func (c *Controller) emitVolume() {
	e := VolumeChange{Volume: c.volume, Muted: c.muted}
	for _, sub := range c.subs {
		send(sub.volumeCh, e)
	}
}

func (c *Controller) emitError(e ErrorEvent) {
	for _, sub := range c.subs {
		send(sub.errorCh, e)
	}
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(1, v))
}
