// Package clipboard provides the best-effort text-copy primitive used by
// the interaction layer. Clipboard availability varies by environment
// (headless hosts have none), so callers probe Available before use and
// treat failures as log-only conditions.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable indicates no system clipboard is reachable in this environment.
var ErrUnavailable = errors.New("clipboard: not available in this environment")

// Service is a write-only text-copy primitive.
type Service interface {
	// Available reports whether the clipboard can be written in this environment.
	Available() bool

	// Copy writes the text to the clipboard.
	Copy(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// NewSystem creates a system clipboard service.
func NewSystem() *System {
	return &System{}
}

// Available implements Service.Available.
func (*System) Available() bool {
	return !clipboard.Unsupported
}

// Copy implements Service.Copy.
func (s *System) Copy(text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard for tests and headless runs.
type Memory struct {
	mu   sync.Mutex
	text string
	err  error
}

// NewMemory creates an in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// Available implements Service.Available.
func (*Memory) Available() bool { return true }

// Copy implements Service.Copy.
func (m *Memory) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

// Text returns the last copied text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// FailWith makes subsequent Copy calls return the given error.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
