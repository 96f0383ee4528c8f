package search

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunedeck/internal/ui/styles"
)

// Model is the search bar: a text input whose edits schedule a debounced
// query. The applied query is what the track list is filtered by.
type Model struct {
	input    textinput.Model
	debounce *Debouncer
	applied  string
	width    int
}

// New creates an unfocused search bar.
func New(interval time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Search title or artist..."
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		input:    ti,
		debounce: NewDebouncer(interval),
	}
}

// Focused reports whether the input holds keyboard focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur releases focus, keeping the query.
func (m *Model) Blur() {
	m.input.Blur()
}

// Value returns the text currently typed.
func (m Model) Value() string {
	return m.input.Value()
}

// Applied returns the query the list is currently filtered by.
func (m Model) Applied() string {
	return m.applied
}

// SetWidth sets the rendered width.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.input.Width = max(w-lipgloss.Width(m.input.Prompt)-4, 1)
}

// SetQuery replaces the text and applies it immediately, cancelling any
// pending debounced query.
func (m *Model) SetQuery(q string) {
	m.input.SetValue(q)
	m.debounce.Cancel()
	m.applied = q
}

// Update forwards a key to the input. If the text changed, a debounced
// query is scheduled.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		cmd = tea.Batch(cmd, m.debounce.Schedule(m.input.Value()))
	}
	return m, cmd
}

// Apply handles a QueryReadyMsg. It returns true when the message was the
// latest and the applied query changed.
func (m *Model) Apply(msg QueryReadyMsg) bool {
	q, ok := m.debounce.Accept(msg)
	if !ok || q == m.applied {
		return false
	}
	m.applied = q
	return true
}

func (m Model) View() string {
	t := styles.T()
	m.input.PromptStyle = lipgloss.NewStyle().Foreground(t.Primary)
	m.input.TextStyle = t.S().Base
	m.input.PlaceholderStyle = t.S().Subtle

	return styles.PanelStyle(m.Focused()).
		Width(max(m.width-2, 1)).
		Render(m.input.View())
}
