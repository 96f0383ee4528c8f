package playback

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunedeck/internal/catalog"
	"github.com/llehouerou/tunedeck/internal/errmsg"
	"github.com/llehouerou/tunedeck/internal/player"
	"github.com/llehouerou/tunedeck/internal/prefs"
)

type fakePersister struct {
	shuffle []bool
	repeat  []bool
	volume  []float64
	err     error
}

func (f *fakePersister) SaveShuffle(b bool) error  { f.shuffle = append(f.shuffle, b); return f.err }
func (f *fakePersister) SaveRepeat(b bool) error   { f.repeat = append(f.repeat, b); return f.err }
func (f *fakePersister) SaveVolume(v float64) error { f.volume = append(f.volume, v); return f.err }

type fakeRecorder struct {
	ids []string
	err error
}

func (f *fakeRecorder) AddRecent(t catalog.Track) error {
	f.ids = append(f.ids, t.ID)
	return f.err
}

type fakeFavorites map[string]bool

func (f fakeFavorites) IsFavorite(id string) bool { return f[id] }

func newCatalog(t *testing.T, titles ...string) *catalog.Catalog {
	t.Helper()
	tracks := make([]catalog.Track, len(titles))
	for i, title := range titles {
		tracks[i] = catalog.Track{Title: title, Artist: "Artist " + title, MediaRef: title + ".mp3"}
	}
	c, err := catalog.New(tracks)
	require.NoError(t, err)
	return c
}

type fixture struct {
	ctrl      *Controller
	engine    *player.Mock
	persister *fakePersister
	recorder  *fakeRecorder
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	f := fixture{
		engine:    player.NewMock(),
		persister: &fakePersister{},
		recorder:  &fakeRecorder{},
	}
	base := []Option{
		WithPreferences(prefs.Defaults(), f.persister),
		WithRecorder(f.recorder),
	}
	ctrl, err := New(newCatalog(t, "A", "B", "C", "D"), f.engine, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { ctrl.Close() })
	f.ctrl = ctrl
	return f
}

func TestNew_EmptyCatalog(t *testing.T) {
	empty, err := catalog.New(nil)
	require.NoError(t, err)

	_, err = New(empty, player.NewMock())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestNew_InitialState(t *testing.T) {
	f := newFixture(t)

	s := f.ctrl.Snapshot()
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, "A", s.Track.ID)
	assert.Equal(t, StateStopped, s.State)
	assert.False(t, s.Playing())
	assert.InDelta(t, 0.9, s.Volume, 1e-9)
	assert.False(t, s.Muted)
	assert.Empty(t, f.engine.PlayCalls(), "no autoplay")
	assert.InDelta(t, 0.9, f.engine.Level(), 1e-9)
}

func TestNew_SeedsFromPreferences(t *testing.T) {
	pr := prefs.Preferences{Volume: 0, Shuffle: true, Repeat: true}
	f := newFixture(t, WithPreferences(pr, nil), WithFavorites(fakeFavorites{"A": true}))

	s := f.ctrl.Snapshot()
	assert.True(t, s.Shuffle)
	assert.True(t, s.Repeat)
	assert.Zero(t, s.Volume)
	assert.True(t, s.Muted, "volume 0 implies muted")
	assert.True(t, s.Favorite)
	assert.True(t, f.engine.Muted())
}

func TestLoad_WrapsIndex(t *testing.T) {
	f := newFixture(t)

	for i := -9; i <= 9; i++ {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			f.ctrl.Load(i)
			want := ((i % 4) + 4) % 4
			assert.Equal(t, want, f.ctrl.Snapshot().Index)
		})
	}
}

func TestLoad_ResetsAndDoesNotPlay(t *testing.T) {
	f := newFixture(t, WithFavorites(fakeFavorites{"C": true}))
	ctx := context.Background()
	require.NoError(t, f.ctrl.Play(ctx))
	require.NoError(t, f.ctrl.Seek(10*time.Second))

	sub := f.ctrl.Subscribe()
	f.ctrl.Load(2)

	s := f.ctrl.Snapshot()
	assert.Equal(t, 2, s.Index)
	assert.Zero(t, s.Position)
	assert.Equal(t, StateStopped, s.State)
	assert.True(t, s.Favorite)
	assert.Equal(t, player.Stopped, f.engine.State())
	assert.Len(t, f.engine.PlayCalls(), 1)

	tc := <-sub.TrackChanged
	assert.Equal(t, 0, tc.PreviousIndex)
	assert.Equal(t, 2, tc.Index)
	assert.Equal(t, "C", tc.Current.ID)
	assert.True(t, tc.Favorite)
}

func TestPlay_Success(t *testing.T) {
	f := newFixture(t)
	sub := f.ctrl.Subscribe()

	require.NoError(t, f.ctrl.Play(context.Background()))

	assert.True(t, f.ctrl.Snapshot().Playing())
	assert.Equal(t, []string{"A.mp3"}, f.engine.PlayCalls())
	sc := <-sub.StateChanged
	assert.Equal(t, StateChange{Previous: StateStopped, Current: StatePlaying}, sc)
	assert.Empty(t, f.recorder.ids, "plain play does not record")
}

func TestPlay_FailureRevertsState(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"blocked", fmt.Errorf("%w: no device", player.ErrPlaybackBlocked)},
		{"media", fmt.Errorf("%w: missing", player.ErrMediaLoad)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			sub := f.ctrl.Subscribe()
			f.engine.SetPlayError(tt.err)

			err := f.ctrl.Play(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			s := f.ctrl.Snapshot()
			assert.False(t, s.Playing())
			assert.Equal(t, StatePaused, s.State)

			sc := <-sub.StateChanged
			assert.Equal(t, StatePaused, sc.Current)
			ev := <-sub.Error
			assert.Equal(t, errmsg.OpPlaybackStart, ev.Op)
			assert.Equal(t, "A.mp3", ev.Ref)
		})
	}
}

func TestPlay_FailureKindsAreDistinguishable(t *testing.T) {
	f := newFixture(t)
	f.engine.SetPlayError(fmt.Errorf("%w: no device", player.ErrPlaybackBlocked))

	err := f.ctrl.Play(context.Background())

	assert.ErrorIs(t, err, player.ErrPlaybackBlocked)
	assert.NotErrorIs(t, err, player.ErrMediaLoad)
}

func TestPlay_ResumesPausedTrack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Play(ctx))
	f.ctrl.Pause()
	require.Equal(t, StatePaused, f.ctrl.Snapshot().State)

	require.NoError(t, f.ctrl.Play(ctx))

	assert.Equal(t, StatePlaying, f.ctrl.Snapshot().State)
	assert.Equal(t, player.Playing, f.engine.State())
	assert.Len(t, f.engine.PlayCalls(), 1, "resume does not reload")
}

func TestPause_AlwaysSucceeds(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Pause()
	assert.Equal(t, StateStopped, f.ctrl.Snapshot().State)

	require.NoError(t, f.ctrl.Play(context.Background()))
	f.ctrl.Pause()
	assert.False(t, f.ctrl.Snapshot().Playing())
	assert.Equal(t, player.Paused, f.engine.State())
}

func TestToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.Toggle(ctx))
	assert.True(t, f.ctrl.Snapshot().Playing())

	require.NoError(t, f.ctrl.Toggle(ctx))
	assert.False(t, f.ctrl.Snapshot().Playing())

	require.NoError(t, f.ctrl.Toggle(ctx))
	assert.True(t, f.ctrl.Snapshot().Playing())
}

func TestNextPrevious_Wrap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.Previous(ctx))
	assert.Equal(t, 3, f.ctrl.Snapshot().Index, "previous from 0 wraps to D")

	require.NoError(t, f.ctrl.Next(ctx))
	assert.Equal(t, 0, f.ctrl.Snapshot().Index, "next from D wraps to A")

	assert.Equal(t, []string{"D.mp3", "A.mp3"}, f.engine.PlayCalls())
	assert.Equal(t, []string{"D", "A"}, f.recorder.ids)
	assert.True(t, f.ctrl.Snapshot().Playing())
}

func TestNext_AdvancesByOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		require.NoError(t, f.ctrl.Next(ctx))
		assert.Equal(t, i%4, f.ctrl.Snapshot().Index)
	}
}

func TestNext_Shuffle(t *testing.T) {
	picks := []int{2, 2, 0}
	f := newFixture(t, WithRand(func(n int) int {
		require.Equal(t, 4, n)
		p := picks[0]
		picks = picks[1:]
		return p
	}))
	ctx := context.Background()
	f.ctrl.SetShuffle(true)

	require.NoError(t, f.ctrl.Next(ctx))
	assert.Equal(t, 2, f.ctrl.Snapshot().Index)
	require.NoError(t, f.ctrl.Next(ctx))
	assert.Equal(t, 2, f.ctrl.Snapshot().Index, "shuffle may repeat the current track")
	require.NoError(t, f.ctrl.Next(ctx))
	assert.Equal(t, 0, f.ctrl.Snapshot().Index)
}

func TestNext_ShuffleStaysInRange(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SetShuffle(true)
	ctx := context.Background()

	for range 50 {
		require.NoError(t, f.ctrl.Next(ctx))
		i := f.ctrl.Snapshot().Index
		assert.True(t, i >= 0 && i < 4, "index %d out of range", i)
	}
}

func TestPrevious_IgnoresShuffle(t *testing.T) {
	f := newFixture(t, WithRand(func(int) int {
		t.Fatal("previous must not consult shuffle")
		return 0
	}))
	f.ctrl.SetShuffle(true)
	f.ctrl.Load(2)

	require.NoError(t, f.ctrl.Previous(context.Background()))
	assert.Equal(t, 1, f.ctrl.Snapshot().Index)
}

func TestNext_RecordsEvenWhenPlayFails(t *testing.T) {
	f := newFixture(t)
	f.engine.SetPlayError(player.ErrMediaLoad)

	err := f.ctrl.Next(context.Background())

	assert.ErrorIs(t, err, player.ErrMediaLoad)
	assert.Equal(t, 1, f.ctrl.Snapshot().Index)
	assert.Equal(t, []string{"B"}, f.recorder.ids)
}

func TestSelect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ctrl.Select(ctx, 2))
	assert.Equal(t, 2, f.ctrl.Snapshot().Index)

	require.NoError(t, f.ctrl.SelectID(ctx, "B"))
	assert.Equal(t, 1, f.ctrl.Snapshot().Index)

	err := f.ctrl.SelectID(ctx, "gone")
	assert.ErrorIs(t, err, catalog.ErrUnknownTrack)
	assert.Equal(t, 1, f.ctrl.Snapshot().Index)

	assert.Equal(t, []string{"C", "B"}, f.recorder.ids, "every explicit activation records")
}

func TestOnTrackEnded_Repeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.ctrl.SetRepeat(true)
	require.NoError(t, f.ctrl.Select(ctx, 1))
	f.recorder.ids = nil

	require.NoError(t, f.ctrl.OnTrackEnded(ctx))

	s := f.ctrl.Snapshot()
	assert.Equal(t, 1, s.Index)
	assert.Zero(t, s.Position)
	assert.True(t, s.Playing())
	assert.Empty(t, f.recorder.ids, "repeat replay is not recorded")
}

func TestOnTrackEnded_Advances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Play(ctx))

	require.NoError(t, f.ctrl.OnTrackEnded(ctx))

	assert.Equal(t, 1, f.ctrl.Snapshot().Index)
	assert.True(t, f.ctrl.Snapshot().Playing())
	assert.Equal(t, []string{"B"}, f.recorder.ids)
}

func TestHandleEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Play(ctx))
	seq := f.engine.Seq()

	require.NoError(t, f.ctrl.HandleEvent(ctx, player.MetadataEvent{Seq: seq, Duration: 3 * time.Minute}))
	require.NoError(t, f.ctrl.HandleEvent(ctx, player.PositionEvent{Seq: seq, Position: 42 * time.Second}))

	s := f.ctrl.Snapshot()
	assert.Equal(t, 3*time.Minute, s.Duration)
	assert.Equal(t, 42*time.Second, s.Position)

	require.NoError(t, f.ctrl.HandleEvent(ctx, player.EndedEvent{Seq: seq}))
	assert.Equal(t, 1, f.ctrl.Snapshot().Index)
}

func TestHandleEvent_DropsStale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Play(ctx))
	stale := f.engine.Seq()
	require.NoError(t, f.ctrl.Next(ctx))

	require.NoError(t, f.ctrl.HandleEvent(ctx, player.PositionEvent{Seq: stale, Position: time.Minute}))
	require.NoError(t, f.ctrl.HandleEvent(ctx, player.EndedEvent{Seq: stale}))

	s := f.ctrl.Snapshot()
	assert.Equal(t, 1, s.Index, "stale end does not advance")
	assert.Zero(t, s.Position)
}

func TestHandleEvent_IgnoredWhenNothingLoaded(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.HandleEvent(context.Background(), player.EndedEvent{Seq: 0}))
	assert.Equal(t, 0, f.ctrl.Snapshot().Index)
}

func TestSeek_Clamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Play(ctx))
	seq := f.engine.Seq()
	require.NoError(t, f.ctrl.HandleEvent(ctx, player.MetadataEvent{Seq: seq, Duration: time.Minute}))

	tests := []struct {
		in, want time.Duration
	}{
		{30 * time.Second, 30 * time.Second},
		{-5 * time.Second, 0},
		{2 * time.Minute, time.Minute},
	}
	for _, tt := range tests {
		require.NoError(t, f.ctrl.Seek(tt.in))
		assert.Equal(t, tt.want, f.ctrl.Snapshot().Position)
	}
	assert.Equal(t, []time.Duration{30 * time.Second, 0, time.Minute}, f.engine.SeekCalls())
}

func TestSeek_UnknownDuration(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.Seek(5*time.Hour))
	assert.Equal(t, 5*time.Hour, f.ctrl.Snapshot().Position)

	require.NoError(t, f.ctrl.Seek(-time.Second))
	assert.Zero(t, f.ctrl.Snapshot().Position)
	assert.Empty(t, f.engine.SeekCalls(), "nothing loaded yet")
}

func TestSeek_BeforePlayIsApplied(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.Seek(20*time.Second))
	require.NoError(t, f.ctrl.Play(context.Background()))

	assert.Equal(t, []time.Duration{20 * time.Second}, f.engine.SeekCalls())
}

func TestSeek_AfterTrackEndedIsDeferred(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Play(ctx))
	sub := f.ctrl.Subscribe()

	// The engine drops the track before the controller sees EndedEvent.
	f.engine.SetState(player.Stopped)

	require.NoError(t, f.ctrl.Seek(15*time.Second))
	assert.Equal(t, 15*time.Second, f.ctrl.Snapshot().Position)
	assert.Empty(t, sub.Error)
}

func TestSeekBy(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.SeekBy(5*time.Second))
	require.NoError(t, f.ctrl.SeekBy(5*time.Second))
	assert.Equal(t, 10*time.Second, f.ctrl.Snapshot().Position)

	require.NoError(t, f.ctrl.SeekBy(-time.Minute))
	assert.Zero(t, f.ctrl.Snapshot().Position)
}

func TestSetVolume(t *testing.T) {
	tests := []struct {
		in        float64
		wantVol   float64
		wantMuted bool
	}{
		{0, 0, true},
		{0.5, 0.5, false},
		{1.4, 1, false},
		{-0.3, 0, true},
		{0.004, 0.004, false},
		{0.555, 0.555, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			f := newFixture(t)
			f.ctrl.SetVolume(tt.in)

			s := f.ctrl.Snapshot()
			assert.InDelta(t, tt.wantVol, s.Volume, 1e-9)
			assert.Equal(t, tt.wantMuted, s.Muted)
			assert.Equal(t, tt.wantMuted, f.engine.Muted())
			assert.InDelta(t, tt.wantVol, f.engine.Level(), 1e-9)
			require.Len(t, f.persister.volume, 1)
			assert.InDelta(t, tt.wantVol, f.persister.volume[0], 1e-9)
		})
	}
}

func TestSetVolume_ZeroThenPositiveUnmutes(t *testing.T) {
	f := newFixture(t)

	f.ctrl.SetVolume(0)
	assert.True(t, f.ctrl.Snapshot().Muted)

	f.ctrl.SetVolume(0.5)
	assert.False(t, f.ctrl.Snapshot().Muted)
}

func TestChangeVolume(t *testing.T) {
	f := newFixture(t)

	f.ctrl.ChangeVolume(0.05)
	assert.InDelta(t, 0.95, f.ctrl.Snapshot().Volume, 1e-9)
	f.ctrl.ChangeVolume(0.05)
	f.ctrl.ChangeVolume(0.05)
	assert.InDelta(t, 1.0, f.ctrl.Snapshot().Volume, 1e-9)

	for range 30 {
		f.ctrl.ChangeVolume(-0.05)
	}
	s := f.ctrl.Snapshot()
	assert.Zero(t, s.Volume)
	assert.True(t, s.Muted)
}

func TestChangeVolume_SnapsFromUnroundedLevel(t *testing.T) {
	f := newFixture(t)

	f.ctrl.SetVolume(0.557)
	f.ctrl.ChangeVolume(-0.05)
	assert.InDelta(t, 0.51, f.ctrl.Snapshot().Volume, 1e-9)

	f.ctrl.SetVolume(0.004)
	f.ctrl.ChangeVolume(-0.05)
	s := f.ctrl.Snapshot()
	assert.Zero(t, s.Volume)
	assert.True(t, s.Muted)
}

func TestToggleMute_NotPersisted(t *testing.T) {
	f := newFixture(t)
	sub := f.ctrl.Subscribe()

	f.ctrl.ToggleMute()
	assert.True(t, f.ctrl.Snapshot().Muted)
	assert.InDelta(t, 0.9, f.ctrl.Snapshot().Volume, 1e-9, "volume value kept")
	f.ctrl.ToggleMute()
	assert.False(t, f.ctrl.Snapshot().Muted)

	assert.Empty(t, f.persister.volume)
	assert.Equal(t, VolumeChange{Volume: 0.9, Muted: true}, <-sub.VolumeChanged)
}

func TestModes_Persist(t *testing.T) {
	f := newFixture(t)
	sub := f.ctrl.Subscribe()

	f.ctrl.ToggleShuffle()
	f.ctrl.ToggleRepeat()
	f.ctrl.SetRepeat(false)

	s := f.ctrl.Snapshot()
	assert.True(t, s.Shuffle)
	assert.False(t, s.Repeat)
	assert.Equal(t, []bool{true}, f.persister.shuffle)
	assert.Equal(t, []bool{true, false}, f.persister.repeat)

	assert.Equal(t, ModeChange{Shuffle: true}, <-sub.ModeChanged)
	assert.Equal(t, ModeChange{Shuffle: true, Repeat: true}, <-sub.ModeChanged)
}

func TestPersistFailure_EmitsError(t *testing.T) {
	f := newFixture(t)
	f.persister.err = errors.New("disk full")
	sub := f.ctrl.Subscribe()

	f.ctrl.SetShuffle(true)

	assert.True(t, f.ctrl.Snapshot().Shuffle, "state changes even if the write fails")
	ev := <-sub.Error
	assert.Equal(t, errmsg.OpSaveShuffle, ev.Op)
}

func TestRecorderFailure_EmitsError(t *testing.T) {
	f := newFixture(t)
	f.recorder.err = errors.New("disk full")
	sub := f.ctrl.Subscribe()

	require.NoError(t, f.ctrl.Next(context.Background()))

	ev := <-sub.Error
	assert.Equal(t, errmsg.OpRecentsSave, ev.Op)
}

func TestRefreshFavorite(t *testing.T) {
	favs := fakeFavorites{}
	f := newFixture(t, WithFavorites(favs))
	sub := f.ctrl.Subscribe()

	favs["A"] = true
	f.ctrl.RefreshFavorite()

	assert.True(t, f.ctrl.Snapshot().Favorite)
	tc := <-sub.TrackChanged
	assert.True(t, tc.Favorite)
	assert.Equal(t, 0, tc.Index)
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	sub := f.ctrl.Subscribe()
	require.NoError(t, f.ctrl.Play(context.Background()))

	require.NoError(t, f.ctrl.Close())
	require.NoError(t, f.ctrl.Close())

	<-sub.Done
	assert.Equal(t, player.Stopped, f.engine.State())

	late := f.ctrl.Subscribe()
	<-late.Done
}

func TestSnapshot_Progress(t *testing.T) {
	assert.Zero(t, Snapshot{Position: time.Second}.Progress())
	assert.InDelta(t, 0.5, Snapshot{Position: 30 * time.Second, Duration: time.Minute}.Progress(), 1e-9)
	assert.InDelta(t, 1.0, Snapshot{Position: 2 * time.Minute, Duration: time.Minute}.Progress(), 1e-9)
}
