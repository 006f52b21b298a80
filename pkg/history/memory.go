package history

import (
	"bytes"
	"sort"
	"strings"
	"sync"
)

// NewMemory returns a Store that keeps records in process memory.
func NewMemory() *Store {
	return newStore(&memoryBackend{data: make(map[string][]byte)})
}

type memoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func (m *memoryBackend) get(key []byte) ([]byte, error) {
	m.mu.RLock()
	v, ok := m.data[string(key)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (m *memoryBackend) set(key, val []byte) error {
	m.mu.Lock()
	m.data[string(key)] = bytes.Clone(val)
	m.mu.Unlock()
	return nil
}

func (m *memoryBackend) delete(keys ...[]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, string(k))
	}
	return nil
}

func (m *memoryBackend) scan(prefix []byte, fn func(key, val []byte) error) error {
	// Snapshot under read lock so fn may call back into the store.
	m.mu.RLock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	vals := make(map[string][]byte, len(keys))
	for _, k := range keys {
		vals[k] = bytes.Clone(m.data[k])
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := fn([]byte(k), vals[k]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryBackend) close() error {
	return nil
}
