package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

// Repository is a persisted key/value store.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
