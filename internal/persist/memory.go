package persist

import (
	"context"
	"sync"
)

// MemoryRepository keeps records in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string][]byte)}
}

func recordKey(kind, id string) string {
	return kind + ":" + id
}

// Load implements Repository.
func (m *MemoryRepository) Load(_ context.Context, kind, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.records[recordKey(kind, id)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save implements Repository.
func (m *MemoryRepository) Save(_ context.Context, kind, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.records[recordKey(kind, id)] = stored
	return nil
}

// Delete implements Repository.
func (m *MemoryRepository) Delete(_ context.Context, kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, recordKey(kind, id))
	return nil
}
