package session

import (
	"context"
	"errors"

	"github.com/ghaggin/newsgate/internal/repository"
)

// Keys under which a session is persisted.
const (
	KeyToken   = "userToken"
	KeyLoginAt = "loginTimestamp"
	KeyUser    = "usuario"
)

var keys = []string{KeyToken, KeyLoginAt, KeyUser}

// Store is the persisted key/value storage a Manager reads and writes.
type Store interface {
	GetString(ctx context.Context, key string) string
	Put(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// renewer is implemented by stores that can rotate the session identifier
// when a user signs in.
type renewer interface {
	RenewToken(ctx context.Context) error
}

type repositoryStore struct {
	repo repository.Repository
}

// NewRepositoryStore keeps a single session in repo, the way a device keeps
// the signed-in user between runs.
func NewRepositoryStore(repo repository.Repository) Store {
	return &repositoryStore{repo: repo}
}

func (s *repositoryStore) GetString(ctx context.Context, key string) string {
	b, err := s.repo.Get(ctx, key)
	if err != nil {
		return ""
	}
	return string(b)
}

func (s *repositoryStore) Put(ctx context.Context, key, value string) error {
	return s.repo.Put(ctx, key, []byte(value))
}

func (s *repositoryStore) Remove(ctx context.Context, key string) error {
	err := s.repo.Delete(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
