package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ghaggin/newsgate/internal/repository"
)

const storePrefix = "scs:"

type storedSession struct {
	Data   []byte    `json:"data"`
	Expiry time.Time `json:"expiry"`
}

// repositoryStore persists scs sessions in a repository so they outlive a
// restart.
type repositoryStore struct {
	repo repository.Repository
	now  func() time.Time
}

func newRepositoryStore(repo repository.Repository) *repositoryStore {
	return &repositoryStore{repo: repo, now: time.Now}
}

func (s *repositoryStore) Find(token string) ([]byte, bool, error) {
	ctx := context.Background()

	raw, err := s.repo.Get(ctx, storePrefix+token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false, err
	}

	if !s.now().Before(stored.Expiry) {
		return nil, false, s.repo.Delete(ctx, storePrefix+token)
	}

	return stored.Data, true, nil
}

func (s *repositoryStore) Commit(token string, b []byte, expiry time.Time) error {
	raw, err := json.Marshal(storedSession{Data: b, Expiry: expiry})
	if err != nil {
		return err
	}
	return s.repo.Put(context.Background(), storePrefix+token, raw)
}

func (s *repositoryStore) Delete(token string) error {
	return s.repo.Delete(context.Background(), storePrefix+token)
}
