package memory

import (
	"context"
	"sync"

	apperrors "github.com/yourusername/pylearn-api/internal/pkg/errors"
)

// KVStore реализует repository.KVStore в памяти процесса
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore создает пустое хранилище
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get получает значение по ключу
func (s *KVStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return val, nil
}

// Set сохраняет значение
func (s *KVStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete удаляет ключ
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
