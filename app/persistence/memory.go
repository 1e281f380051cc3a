package persistence

import (
	"sort"
	"sync"
)

// MemoryStore is a map-backed key/value store. Nothing survives the process,
// it serves tests and --ephemeral runs.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string]string
	writes int
}

// NewMemoryStore makes an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

// Get returns the value stored under key, ok is false if there is no such key
func (m *MemoryStore) Get(key string) (value string, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok = m.data[key]
	return value, ok, nil
}

// Set stores value under key
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.writes++
	return nil
}

// Delete removes key
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.writes++
	return nil
}

// Keys returns all stored keys in lexical order
func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Writes returns the number of Set and Delete calls so far
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close does nothing, it is here to match SQLiteStore
func (m *MemoryStore) Close() error { return nil }
