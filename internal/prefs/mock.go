package prefs

import (
	"context"
	"maps"
)

// Mock is an in-memory Store for tests.
type Mock struct {
	values   map[string]string
	setErr   error
	getErr   error
	setCalls []string
	closed   bool
}

// NewMock creates an empty in-memory store.
func NewMock() *Mock {
	return &Mock{values: make(map[string]string)}
}

func (m *Mock) Set(key, value string) error {
	m.setCalls = append(m.setCalls, key)
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *Mock) SetMany(_ context.Context, values map[string]string) error {
	if m.setErr != nil {
		return m.setErr
	}
	for k, v := range values {
		m.setCalls = append(m.setCalls, k)
		m.values[k] = v
	}
	return nil
}

func (m *Mock) Delete(_ context.Context, keys ...string) error {
	if len(keys) == 0 {
		clear(m.values)
		return nil
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *Mock) All() (map[string]string, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return maps.Clone(m.values), nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetRaw(key, value string) { m.values[key] = value }

func (m *Mock) Raw(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Mock) SetWriteError(err error) { m.setErr = err }

func (m *Mock) SetReadError(err error) { m.getErr = err }

// SetCalls returns the keys written, in order, including failed writes.
func (m *Mock) SetCalls() []string { return m.setCalls }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Store at compile time.
var _ Store = (*Mock)(nil)
