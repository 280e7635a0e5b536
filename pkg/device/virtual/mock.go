package virtual

import (
	"sync"

	"go.uber.org/zap"
)

// Mock returns a connected channel that swallows writes, for dry runs and
// tests.
func Mock(logger *zap.Logger) *Mocker {
	return &Mocker{l: logger, connected: true, dropAfter: -1}
}

type Mocker struct {
	mu        sync.Mutex
	l         *zap.Logger
	connected bool
	dropAfter int
	writes    [][]byte
}

func (m *Mocker) SetConnected(up bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = up
}

// DropAfter makes the channel report disconnection once n writes have been
// accepted, for mid-transfer failure scenarios.
func (m *Mocker) DropAfter(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropAfter = n
}

func (m *Mocker) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dropAfter >= 0 && len(m.writes) >= m.dropAfter {
		return false
	}
	return m.connected
}

func (m *Mocker) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(p))
	copy(buf, p)
	m.writes = append(m.writes, buf)

	m.l.With(zap.Int("bytes", len(p)), zap.Int("writes", len(m.writes))).Debug("write")
	return len(p), nil
}

func (m *Mocker) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}

// Bytes concatenates everything written so far.
func (m *Mocker) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []byte
	for _, w := range m.writes {
		out = append(out, w...)
	}
	return out
}
