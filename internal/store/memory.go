package store

import (
	"context"
	"sync"
)

// Memory is an in-process KV. A positive quota caps the total stored bytes
// the way browser storage does.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
	quota int
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// NewMemoryWithQuota returns a Memory that rejects writes once the total
// size of all values would exceed quota bytes.
func NewMemoryWithQuota(quota int) *Memory {
	m := NewMemory()
	m.quota = quota
	return m
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		total := len(value)
		for k, v := range m.items {
			if k != key {
				total += len(v)
			}
		}
		if total > m.quota {
			return ErrQuotaExceeded
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.items[key] = stored
	return nil
}

func (m *Memory) Close() error {
	return nil
}
