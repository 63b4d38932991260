package favorite

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

var ErrInFlight = errors.New("favorite toggle already in progress")

type Backend interface {
	AddFavorite(ctx context.Context, token string, id int64) error
	RemoveFavorite(ctx context.Context, token string, id int64) error
}

// Toggler flips an article in or out of the user's favorites. Only one
// toggle per token and article may be pending at a time.
type Toggler struct {
	backend Backend

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewToggler(backend Backend) *Toggler {
	return &Toggler{
		backend:  backend,
		inflight: map[string]struct{}{},
	}
}

// Toggle adds the article when favorited is false and removes it otherwise.
// The returned state is the new one on success and favorited on failure.
func (t *Toggler) Toggle(ctx context.Context, token string, id int64, favorited bool) (bool, error) {
	key := token + "/" + strconv.FormatInt(id, 10)

	t.mu.Lock()
	if _, busy := t.inflight[key]; busy {
		t.mu.Unlock()
		return favorited, ErrInFlight
	}
	t.inflight[key] = struct{}{}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.inflight, key)
		t.mu.Unlock()
	}()

	var err error
	if favorited {
		err = t.backend.RemoveFavorite(ctx, token, id)
	} else {
		err = t.backend.AddFavorite(ctx, token, id)
	}
	if err != nil {
		return favorited, err
	}

	return !favorited, nil
}
