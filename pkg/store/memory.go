package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryDocuments keeps documents in a map. Used by tests and dry runs.
type MemoryDocuments struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryDocuments {
	return &MemoryDocuments{docs: make(map[string][]byte)}
}

func (m *MemoryDocuments) ReadDocument(_ context.Context, name string) ([]byte, error) {
	key, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryDocuments) WriteDocument(_ context.Context, name string, data []byte) error {
	key, err := cleanName(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[key] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

func (m *MemoryDocuments) DeleteDocument(_ context.Context, name string) error {
	key, err := cleanName(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.docs, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryDocuments) ListDocuments(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryDocuments) Close() error {
	return nil
}
