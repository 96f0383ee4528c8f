// Package prefs persists user preferences (volume, shuffle/repeat, theme,
// favorites, recents) in a key-value store that survives restarts.
package prefs

import (
	"context"
	"errors"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("preference store closed")

// Store is the key-value contract behind the preferences.
// Values are opaque strings; Manager owns their encoding.
type Store interface {
	Set(key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	All() (map[string]string, error)
	Close() error
}
