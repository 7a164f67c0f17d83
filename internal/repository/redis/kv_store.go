package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/pylearn-api/internal/pkg/errors"
)

// KVStore реализует repository.KVStore поверх Redis
type KVStore struct {
	client redis.UniversalClient
}

// NewKVStore создает хранилище и возвращает ошибку при проблемах
func NewKVStore(client redis.UniversalClient) (*KVStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for KVStore")
	}
	return &KVStore{client: client}, nil
}

// Get получает значение по ключу
func (r *KVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Set сохраняет значение без срока жизни
func (r *KVStore) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Delete удаляет ключ
func (r *KVStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
