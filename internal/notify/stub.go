//go:build !linux

package notify

// New returns Discard; notifications are only sent over D-Bus.
func New() (Notifier, error) {
	return Discard{}, ErrUnavailable
}
