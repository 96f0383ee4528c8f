package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is how long input must be quiet before a query runs.
const DefaultDebounce = 120 * time.Millisecond

// QueryReadyMsg is delivered when a scheduled query's delay has elapsed.
type QueryReadyMsg struct {
	Version int
	Query   string
}

// Debouncer delays query evaluation until input is quiet. Each Schedule
// supersedes the previous one; only the latest version is accepted.
type Debouncer struct {
	interval time.Duration
	version  int
}

// NewDebouncer creates a debouncer. A non-positive interval uses
// DefaultDebounce.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval}
}

// Schedule bumps the version and returns a tick carrying query.
func (d *Debouncer) Schedule(query string) tea.Cmd {
	d.version++
	version := d.version
	return tea.Tick(d.interval, func(time.Time) tea.Msg {
		return QueryReadyMsg{Version: version, Query: query}
	})
}

// Cancel drops any pending query.
func (d *Debouncer) Cancel() {
	d.version++
}

// Accept returns the query if msg is the latest scheduled one.
func (d *Debouncer) Accept(msg QueryReadyMsg) (string, bool) {
	if msg.Version != d.version {
		return "", false
	}
	return msg.Query, true
}

// Interval returns the debounce delay.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}
