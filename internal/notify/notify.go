// Package notify sends desktop notifications and announces the track that
// starts playing.
package notify

import "errors"

// ErrUnavailable means no notification daemon can be reached.
var ErrUnavailable = errors.New("desktop notifications unavailable")

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

const (
	appName  = "tunedeck"
	category = "x-gnome.music"
)

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // file path or icon name
	Timeout    int32  // ms; -1 lets the server decide, 0 never expires
	ReplacesID uint32 // replace an earlier notification instead of stacking
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns the server-assigned ID.
	Notify(n Notification) (uint32, error)
	// Close withdraws the notification with the given ID.
	Close(id uint32) error
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) (uint32, error) { return 0, nil }

func (Discard) Close(uint32) error { return nil }
