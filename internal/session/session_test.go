package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ghaggin/newsgate/internal/api"
	"github.com/ghaggin/newsgate/internal/model"
	"github.com/ghaggin/newsgate/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapStore struct {
	mu      sync.Mutex
	m       map[string]string
	renewed int
}

func newMapStore() *mapStore {
	return &mapStore{m: map[string]string{}}
}

func (s *mapStore) GetString(_ context.Context, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key]
}

func (s *mapStore) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *mapStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *mapStore) RenewToken(_ context.Context) error {
	s.renewed++
	return nil
}

func (s *mapStore) empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m) == 0
}

var (
	reader = model.User{ID: 1, Name: "Rubens", Email: "rubens@email.com"}
	editor = model.User{ID: 2, Name: "Admin", Email: "admin@email.com", IsAdmin: true}
)

func TestManager_beginGetClear(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	store := newMapStore()
	m := NewManager(store, 0, zap.NewNop())
	now := time.UnixMilli(1_700_000_000_000)
	m.now = func() time.Time { return now }

	_, err := m.Get(ctx)
	assert.ErrorIs(err, ErrNoSession)

	require.NoError(m.Begin(ctx, "tok", reader))
	assert.Equal(1, store.renewed)
	assert.Equal("1700000000000", store.GetString(ctx, KeyLoginAt))

	s, err := m.Get(ctx)
	require.NoError(err)
	assert.Equal("tok", s.Token)
	assert.True(s.IssuedAt.Equal(now))
	assert.Equal(&reader, s.User)
	assert.True(s.ExpiresAt.IsZero())

	require.NoError(m.Clear(ctx))
	assert.True(store.empty())
}

func TestManager_unreadableUserSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	store.m[KeyToken] = "tok"
	store.m[KeyUser] = "{broken"

	s, err := NewManager(store, 0, zap.NewNop()).Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, s.User)
}

func TestManager_expired(t *testing.T) {
	assert := assert.New(t)

	m := NewManager(newMapStore(), time.Hour, zap.NewNop())
	now := time.Now()
	m.now = func() time.Time { return now }

	assert.False(m.Expired(&model.Session{IssuedAt: now.Add(-59 * time.Minute)}))
	assert.True(m.Expired(&model.Session{IssuedAt: now.Add(-61 * time.Minute)}))
	assert.False(m.Expired(&model.Session{}))

	noTimeout := NewManager(newMapStore(), 0, zap.NewNop())
	assert.False(noTimeout.Expired(&model.Session{IssuedAt: now.Add(-1000 * time.Hour)}))
}

func TestManager_doClearsOnUnauthorized(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	store := newMapStore()
	m := NewManager(store, 0, zap.NewNop())
	require.NoError(m.Begin(ctx, "tok", reader))

	var got string
	err := m.Do(ctx, func(_ context.Context, token string) error {
		got = token
		return api.ErrUnauthorized
	})

	assert.Equal("tok", got)
	assert.ErrorIs(err, ErrExpired)
	assert.ErrorIs(err, api.ErrUnauthorized)
	assert.True(store.empty())
}

func TestManager_doKeepsSessionOnOtherErrors(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	m := NewManager(store, 0, zap.NewNop())
	require.NoError(t, m.Begin(ctx, "tok", reader))

	boom := &api.StatusError{Code: 500, Message: "boom"}
	err := m.Do(ctx, func(context.Context, string) error { return boom })

	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, "tok", store.GetString(ctx, KeyToken))
}

func TestManager_doWithoutSession(t *testing.T) {
	called := false
	err := NewManager(newMapStore(), 0, zap.NewNop()).Do(context.Background(), func(context.Context, string) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrNoSession)
	assert.False(t, called)
}

func TestManager_tokenExpiryHint(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	ctx := context.Background()
	store := newMapStore()
	store.m[KeyToken] = token

	s, err := NewManager(store, 0, zap.NewNop()).Get(ctx)
	require.NoError(t, err)
	assert.True(t, s.ExpiresAt.Equal(exp))
}

func TestRepositoryStore_roundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	m := NewManager(NewRepositoryStore(repository.OpenJSON(path, zap.NewNop())), 0, zap.NewNop())
	require.NoError(m.Begin(ctx, "device-token", editor))

	// a new process sees the same session
	again := NewManager(NewRepositoryStore(repository.OpenJSON(path, zap.NewNop())), 0, zap.NewNop())
	s, err := again.Get(ctx)
	require.NoError(err)
	require.Equal("device-token", s.Token)
	require.Equal(&editor, s.User)

	require.NoError(again.Clear(ctx))
	_, err = NewManager(NewRepositoryStore(repository.OpenJSON(path, zap.NewNop())), 0, zap.NewNop()).Get(ctx)
	require.ErrorIs(err, ErrNoSession)
}
