package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/tunedeck/internal/keymap"
)

func TestContentGroupsBindings(t *testing.T) {
	m := New(keymap.All)
	m.SetSize(80, 100)

	out := ansi.Strip(m.View())

	assert.Contains(t, out, "Playback")
	assert.Contains(t, out, "Lists")
	assert.Contains(t, out, "Search input")
	assert.Contains(t, out, "space")
	assert.Contains(t, out, "Play/pause")
	assert.Less(t, strings.Index(out, "Playback"), strings.Index(out, "Lists"))
	assert.Contains(t, out, "?/esc close")
}

func TestScroll(t *testing.T) {
	m := New(keymap.All)
	m.SetSize(80, 12) // five visible lines

	assert.Contains(t, ansi.Strip(m.View()), "j/k scroll")

	m.ScrollUp()
	assert.Equal(t, 0, m.scrollOffset)

	for range 1000 {
		m.ScrollDown()
	}
	assert.Equal(t, m.maxScroll(), m.scrollOffset)
	assert.Contains(t, ansi.Strip(m.View()), "Leave search")

	m.Reset()
	assert.Equal(t, 0, m.scrollOffset)
}

func TestKeyLabel(t *testing.T) {
	assert.Equal(t, "space", keyLabel([]string{" "}))
	assert.Equal(t, "q, ctrl+c", keyLabel([]string{"q", "ctrl+c"}))
}
