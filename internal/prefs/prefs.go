package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"
)

// Store keys. The shapes match what earlier versions wrote, so an existing
// database keeps working.
const (
	KeyShuffle   = "isShuffle"
	KeyRepeat    = "isRepeat"
	KeyFavorites = "favorites"
	KeyRecents   = "recents"
	KeyVolume    = "volume"
	KeyTheme     = "theme"
)

// MaxRecents caps the persisted recently-played list.
const MaxRecents = 7

// DefaultVolume is used when no volume has been stored.
const DefaultVolume = 0.9

// ErrInvalidTheme is returned when writing a theme other than dark or light.
var ErrInvalidTheme = errors.New("invalid theme")

// Theme is the UI palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Preferences is the decoded view of the store.
type Preferences struct {
	Volume    float64
	Shuffle   bool
	Repeat    bool
	Theme     Theme
	Favorites []string
	Recents   []string
}

// Defaults returns the preferences used for missing keys.
func Defaults() Preferences {
	return Preferences{
		Volume:    DefaultVolume,
		Theme:     ThemeDark,
		Favorites: []string{},
		Recents:   []string{},
	}
}

// Manager reads and writes typed preferences over a Store.
type Manager struct {
	store  Store
	logger *zap.Logger
}

// NewManager wraps store. A nil logger is replaced by a no-op logger.
func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger}
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// Load decodes every key independently. Missing or malformed values fall
// back to their default; Load never fails.
func (m *Manager) Load() Preferences {
	p := Defaults()

	raw, err := m.store.All()
	if err != nil {
		m.logger.Warn("read preferences, using defaults", zap.Error(err))
		return p
	}

	if v, ok := raw[KeyShuffle]; ok {
		if b, ok := m.decodeBool(KeyShuffle, v); ok {
			p.Shuffle = b
		}
	}
	if v, ok := raw[KeyRepeat]; ok {
		if b, ok := m.decodeBool(KeyRepeat, v); ok {
			p.Repeat = b
		}
	}
	if v, ok := raw[KeyVolume]; ok {
		if f, ok := m.decodeVolume(v); ok {
			p.Volume = f
		}
	}
	if v, ok := raw[KeyTheme]; ok {
		if t := Theme(v); t.Valid() {
			p.Theme = t
		} else {
			m.logger.Warn("invalid preference", zap.String("key", KeyTheme), zap.String("value", v))
		}
	}
	if v, ok := raw[KeyFavorites]; ok {
		if list, ok := m.decodeList(KeyFavorites, v); ok {
			p.Favorites = list
		}
	}
	if v, ok := raw[KeyRecents]; ok {
		if list, ok := m.decodeList(KeyRecents, v); ok {
			if len(list) > MaxRecents {
				list = list[:MaxRecents]
			}
			p.Recents = list
		}
	}

	return p
}

func (m *Manager) decodeBool(key, v string) (bool, bool) {
	var b bool
	if err := json.Unmarshal([]byte(v), &b); err != nil {
		m.logger.Warn("invalid preference", zap.String("key", key), zap.String("value", v), zap.Error(err))
		return false, false
	}
	return b, true
}

func (m *Manager) decodeVolume(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		m.logger.Warn("invalid preference", zap.String("key", KeyVolume), zap.String("value", v))
		return 0, false
	}
	return clampVolume(f), true
}

func (m *Manager) decodeList(key, v string) ([]string, bool) {
	var list []string
	if err := json.Unmarshal([]byte(v), &list); err != nil {
		m.logger.Warn("invalid preference", zap.String("key", key), zap.String("value", v), zap.Error(err))
		return nil, false
	}
	// "null" decodes without error
	if list == nil {
		list = []string{}
	}
	return list, true
}

func (m *Manager) SaveShuffle(b bool) error {
	return m.store.Set(KeyShuffle, strconv.FormatBool(b))
}

func (m *Manager) SaveRepeat(b bool) error {
	return m.store.Set(KeyRepeat, strconv.FormatBool(b))
}

func (m *Manager) SaveVolume(v float64) error {
	return m.store.Set(KeyVolume, encodeVolume(v))
}

func (m *Manager) SaveTheme(t Theme) error {
	return m.store.Set(KeyTheme, string(t))
}

func (m *Manager) SaveFavorites(ids []string) error {
	return m.saveList(KeyFavorites, ids)
}

func (m *Manager) SaveRecents(ids []string) error {
	if len(ids) > MaxRecents {
		ids = ids[:MaxRecents]
	}
	return m.saveList(KeyRecents, ids)
}

func (m *Manager) saveList(key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return m.store.Set(key, string(data))
}

// Update is a batch of scalar preferences. Nil fields are left as stored.
type Update struct {
	Volume  *float64
	Shuffle *bool
	Repeat  *bool
	Theme   *Theme
}

// Apply writes every non-nil field of u in a single transaction. An invalid
// theme rejects the whole batch.
func (m *Manager) Apply(ctx context.Context, u Update) error {
	values := make(map[string]string, 4)
	if u.Volume != nil {
		values[KeyVolume] = encodeVolume(*u.Volume)
	}
	if u.Shuffle != nil {
		values[KeyShuffle] = strconv.FormatBool(*u.Shuffle)
	}
	if u.Repeat != nil {
		values[KeyRepeat] = strconv.FormatBool(*u.Repeat)
	}
	if u.Theme != nil {
		if !u.Theme.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidTheme, *u.Theme)
		}
		values[KeyTheme] = string(*u.Theme)
	}
	if len(values) == 0 {
		return nil
	}
	return m.store.SetMany(ctx, values)
}

// Reset deletes every stored preference.
func (m *Manager) Reset(ctx context.Context) error {
	return m.store.Delete(ctx)
}

func encodeVolume(v float64) string {
	return strconv.FormatFloat(clampVolume(v), 'f', -1, 64)
}

func clampVolume(v float64) float64 {
	return max(0, min(1, v))
}
