//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHints(t *testing.T) {
	h := hints(Notification{Urgency: UrgencyCritical})
	assert.Equal(t, byte(2), h["urgency"].Value())
	assert.Equal(t, appName, h["desktop-entry"].Value())
	assert.Equal(t, category, h["category"].Value())
	assert.NotContains(t, h, "image-path")

	h = hints(Notification{Icon: "/tmp/art/cover.png"})
	assert.Equal(t, "file:///tmp/art/cover.png", h["image-path"].Value())

	h = hints(Notification{Icon: "audio-x-generic"})
	assert.NotContains(t, h, "image-path", "icon names are not paths")
}

func TestNew_WithoutSessionBus(t *testing.T) {
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path=/nonexistent/bus")

	n, err := New()
	// The session bus connection may be cached from an earlier test.
	if err != nil {
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.IsType(t, Discard{}, n)
	}
}

func TestNotifyReplacesExisting(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	n, err := New()
	if err != nil {
		t.Skipf("no notification server: %v", err)
	}

	first, err := n.Notify(Notification{Title: "Dhaga", Body: "Nilotpal Bora", Timeout: 1000})
	if err != nil {
		t.Skipf("no notification server: %v", err)
	}
	second, err := n.Notify(Notification{
		Title:      "Dheema",
		Body:       "Anirudha 2",
		Timeout:    1000,
		ReplacesID: first,
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, n.Close(second))
}
