package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTracks() []Track {
	return []Track{
		{Title: "Dhaga", Artist: "Nilotpal Bora", MediaRef: "songs/Dhaga.mp3"},
		{Title: "Dheema", Artist: "Anirudha 2", MediaRef: "songs/Dheema.mp3"},
		{ID: "inth", Title: "Inthandham", Artist: "Krishna Khante", MediaRef: "songs/Inthandham.mp3"},
	}
}

func TestNew_DefaultsIDToTitle(t *testing.T) {
	c, err := New(sampleTracks())
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "Dhaga", c.At(0).ID)
	assert.Equal(t, "inth", c.At(2).ID)

	i, ok := c.IndexOf("Dheema")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = c.IndexOf("Inthandham")
	assert.False(t, ok, "explicit id replaces title as key")
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	tests := []struct {
		name   string
		tracks []Track
	}{
		{
			name: "explicit ids",
			tracks: []Track{
				{ID: "x", Title: "One", MediaRef: "one.mp3"},
				{ID: "x", Title: "Two", MediaRef: "two.mp3"},
			},
		},
		{
			name: "explicit id matches a title",
			tracks: []Track{
				{Title: "Dhaga", MediaRef: "a.mp3"},
				{ID: "Dhaga", Title: "Other", MediaRef: "b.mp3"},
			},
		},
		{
			name: "same entry listed four times",
			tracks: []Track{
				{Title: "Intro", Artist: "A", MediaRef: "intro.mp3"},
				{Title: "Intro", Artist: "A", MediaRef: "intro.mp3"},
				{Title: "Intro", Artist: "A", MediaRef: "intro.mp3"},
				{Title: "Intro", Artist: "A", MediaRef: "intro.mp3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tracks)
			assert.ErrorIs(t, err, ErrDuplicateID)
		})
	}
}

func TestNew_SameTitleDerivesDistinctIDs(t *testing.T) {
	tests := []struct {
		name    string
		tracks  []Track
		wantIDs []string
	}{
		{
			name: "different artists",
			tracks: []Track{
				{Title: "Intro", Artist: "A", MediaRef: "a.mp3"},
				{Title: "Intro", Artist: "B", MediaRef: "b.mp3"},
			},
			wantIDs: []string{"Intro", "Intro - B"},
		},
		{
			name: "same artist",
			tracks: []Track{
				{Title: "Intro", Artist: "A", MediaRef: "a.mp3"},
				{Title: "Intro", Artist: "A", MediaRef: "live/a.mp3"},
			},
			wantIDs: []string{"Intro", "Intro - A"},
		},
		{
			name: "no artist",
			tracks: []Track{
				{Title: "Intro", MediaRef: "a.mp3"},
				{Title: "Intro", MediaRef: "b.mp3"},
			},
			wantIDs: []string{"Intro", "b.mp3"},
		},
		{
			name: "three copies",
			tracks: []Track{
				{Title: "Intro", Artist: "A", MediaRef: "a.mp3"},
				{Title: "Intro", Artist: "A", MediaRef: "b.mp3"},
				{Title: "Intro", Artist: "A", MediaRef: "c.mp3"},
			},
			wantIDs: []string{"Intro", "Intro - A", "c.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.tracks)
			require.NoError(t, err)

			for i, want := range tt.wantIDs {
				assert.Equal(t, want, c.At(i).ID)
				got, ok := c.ByID(want)
				require.True(t, ok)
				assert.Equal(t, tt.tracks[i].MediaRef, got.MediaRef)
			}
		})
	}
}

func TestNew_DuplicateTitleWithDistinctIDs(t *testing.T) {
	tracks := []Track{
		{ID: "a", Title: "Same", MediaRef: "a.mp3"},
		{ID: "b", Title: "Same", MediaRef: "b.mp3"},
	}

	c, err := New(tracks)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestNew_RequiresMedia(t *testing.T) {
	_, err := New([]Track{{Title: "Nothing"}})
	assert.ErrorIs(t, err, ErrMissingMedia)
}

func TestNew_Empty(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Tracks())
}

func TestTracks_ReturnsCopy(t *testing.T) {
	c, err := New(sampleTracks())
	require.NoError(t, err)

	tracks := c.Tracks()
	tracks[0].Title = "changed"

	assert.Equal(t, "Dhaga", c.At(0).Title)
}

func TestResolve_SkipsStaleIDs(t *testing.T) {
	c, err := New(sampleTracks())
	require.NoError(t, err)

	got := c.Resolve([]string{"Dheema", "gone", "Dhaga"})

	require.Len(t, got, 2)
	assert.Equal(t, "Dheema", got[0].ID)
	assert.Equal(t, "Dhaga", got[1].ID)
}

func TestWithDurations(t *testing.T) {
	c, err := New(sampleTracks())
	require.NoError(t, err)

	c2 := c.WithDurations(map[string]time.Duration{"Dhaga": 3 * time.Minute, "missing": time.Second})

	assert.Equal(t, 3*time.Minute, c2.At(0).Duration)
	assert.Zero(t, c2.At(1).Duration)
	assert.Zero(t, c.At(0).Duration, "original catalog is unchanged")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "—:—"},
		{-time.Second, "—:—"},
		{5 * time.Second, "0:05"},
		{3*time.Minute + 27*time.Second, "3:27"},
		{61*time.Minute + 500*time.Millisecond, "61:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestFormatPosition(t *testing.T) {
	assert.Equal(t, "0:00", FormatPosition(0))
	assert.Equal(t, "0:00", FormatPosition(-3*time.Second))
	assert.Equal(t, "1:09", FormatPosition(69*time.Second))
}
