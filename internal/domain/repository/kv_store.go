package repository

import (
	"context"
)

// KVStore - локальное долговременное хранилище ключ-значение.
// Get возвращает apperrors.ErrNotFound, если ключа нет.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
