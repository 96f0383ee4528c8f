package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	s := openTestStore(t)

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.Set(KeyTheme, "light"))
	require.NoError(t, s.Set(KeyTheme, "dark"))

	all, err = s.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyTheme: "dark"}, all)
}

func TestSQLiteStore_SetManyAndAll(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetMany(context.Background(), map[string]string{
		KeyShuffle: "true",
		KeyVolume:  "0.5",
	}))

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{KeyShuffle: "true", KeyVolume: "0.5"}, all)
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SetMany(ctx, map[string]string{"a": "1", "b": "2", "c": "3"}))

	require.NoError(t, s.Delete(ctx, "a"))
	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.Delete(ctx))
	all, err = s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tunedeck.db")

	s, err := Open(path)
	require.NoError(t, err)
	m := NewManager(s, nil)
	require.NoError(t, m.SaveFavorites([]string{"Dhaga"}))
	require.NoError(t, m.SaveRepeat(true))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	p := NewManager(s2, nil).Load()
	assert.Equal(t, []string{"Dhaga"}, p.Favorites)
	assert.True(t, p.Repeat)
}

func TestSQLiteStore_UseAfterClose(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.All()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set("x", "y"), ErrClosed)
	assert.ErrorIs(t, s.SetMany(context.Background(), map[string]string{"x": "y"}), ErrClosed)
}
