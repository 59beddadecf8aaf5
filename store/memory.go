package store

import (
	"context"
	"sync"
	"time"
)

type MemoryBuffer[T any] struct {
	mu      sync.Mutex
	size    int
	entries []memoryEntry[T]
	opts    bufferOptions
}

type memoryEntry[T any] struct {
	value T
	at    time.Time
}

var _ Buffer[any] = (*MemoryBuffer[any])(nil)

// NewMemoryBuffer creates an in-memory buffer holding at most size values. A size of zero or less means
// the buffer is unbounded.
func NewMemoryBuffer[T any](size int, options ...BufferOption) *MemoryBuffer[T] {
	return &MemoryBuffer[T]{
		size: size,
		opts: applyOptions(options),
	}
}

func (m *MemoryBuffer[T]) Append(_ context.Context, value T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.Clock.Now()
	m.purge(now)
	m.entries = append(m.entries, memoryEntry[T]{value: value, at: now})
	if m.size > 0 && len(m.entries) > m.size {
		m.entries = append(m.entries[:0:0], m.entries[len(m.entries)-m.size:]...)
	}
	return nil
}

func (m *MemoryBuffer[T]) Load(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purge(m.opts.Clock.Now())
	values := make([]T, 0, len(m.entries))
	for _, e := range m.entries {
		values = append(values, e.value)
	}
	return values, nil
}

func (m *MemoryBuffer[T]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// purge drops expired entries. Entries are in timestamp order so expired ones form a prefix.
func (m *MemoryBuffer[T]) purge(now time.Time) {
	i := 0
	for i < len(m.entries) && m.opts.expired(m.entries[i].at, now) {
		i++
	}
	if i > 0 {
		m.entries = m.entries[i:]
	}
}
