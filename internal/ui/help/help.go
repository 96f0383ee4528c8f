// Package help renders the scrollable key binding reference.
package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/keymap"
	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// contextOrder defines the display order of binding groups.
var contextOrder = []string{
	keymap.ContextPlayback,
	keymap.ContextList,
	keymap.ContextGlobal,
	keymap.ContextSearch,
}

var contextLabels = map[string]string{
	keymap.ContextGlobal:   "Global",
	keymap.ContextPlayback: "Playback",
	keymap.ContextList:     "Lists",
	keymap.ContextSearch:   "Search input",
}

// Model holds the help panel state.
type Model struct {
	lines        []string
	scrollOffset int
	width        int
	height       int
}

// New builds the help content from the bindings.
func New(bindings []keymap.Binding) Model {
	return Model{lines: buildLines(bindings)}
}

// SetSize sets the space available to the panel.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollOffset = min(m.scrollOffset, m.maxScroll())
}

// ScrollDown scrolls one line, stopping at the end.
func (m *Model) ScrollDown() {
	m.scrollOffset = min(m.scrollOffset+1, m.maxScroll())
}

// ScrollUp scrolls one line back.
func (m *Model) ScrollUp() {
	m.scrollOffset = max(m.scrollOffset-1, 0)
}

// Reset scrolls back to the top.
func (m *Model) Reset() {
	m.scrollOffset = 0
}

// View renders the bordered panel.
func (m Model) View() string {
	t := styles.T()

	visible := m.visibleHeight()
	start := min(m.scrollOffset, len(m.lines))
	end := min(start+visible, len(m.lines))
	body := strings.Join(m.lines[start:end], "\n")

	footer := "?/esc close"
	if len(m.lines) > visible {
		footer = "j/k scroll · ?/esc close"
	}

	content := t.S().Title.Render("Help") + "\n\n" + body + "\n\n" + t.S().Subtle.Render(footer)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 2).
		Render(content)
}

func (m Model) visibleHeight() int {
	// title, blank, blank, footer, border
	return max(m.height-8, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}

func buildLines(bindings []keymap.Binding) []string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	headerStyle := t.S().Accent.Bold(true)

	maxKeyWidth := 0
	for _, b := range bindings {
		maxKeyWidth = max(maxKeyWidth, lipgloss.Width(keyLabel(b.Keys)))
	}

	var lines []string
	for _, ctx := range contextOrder {
		first := true
		for _, b := range bindings {
			if b.Context != ctx {
				continue
			}
			if first {
				if len(lines) > 0 {
					lines = append(lines, "")
				}
				lines = append(lines,
					headerStyle.Render(contextLabels[ctx]),
					t.S().Subtle.Render(strings.Repeat("─", maxKeyWidth+20)))
				first = false
			}
			label := keyLabel(b.Keys)
			padded := label + strings.Repeat(" ", maxKeyWidth-lipgloss.Width(label))
			lines = append(lines, keyStyle.Render(padded)+"  "+t.S().Base.Render(b.Description))
		}
	}
	return lines
}

// keyLabel names keys for display; the space key is spelled out.
func keyLabel(keys []string) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		names[i] = k
	}
	return strings.Join(names, ", ")
}
