package repository

import (
	"context"
	"sync"
)

// MemoryKeyValueRepository guarda as chaves em memória.
// Usado nos testes e com DATABASE_DRIVER=memory.
type MemoryKeyValueRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryKeyValueRepository() *MemoryKeyValueRepository {
	return &MemoryKeyValueRepository{
		values: make(map[string][]byte),
	}
}

func (m *MemoryKeyValueRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), value...), true, nil
}

func (m *MemoryKeyValueRepository) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKeyValueRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Keys retorna as chaves armazenadas, sem ordem definida
func (m *MemoryKeyValueRepository) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	return keys
}
