package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/ghaggin/newsgate/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	errTableFileIsDir = errors.New("table file is dir")
)

type Data struct {
	Entries map[string][]byte `json:"entries"`
}

type jsonRepo struct {
	path string
	log  *zap.Logger

	mu   sync.Mutex
	data *Data
}

type jsonParams struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

// NewJSON opens the web session file and flushes it when the app stops.
func NewJSON(p jsonParams) (Repository, error) {
	r := openJSON(p.Config.Session.StorePath, p.Log)

	p.LC.Append(fx.Hook{
		OnStop: r.stop,
	})

	return r, nil
}

// OpenJSON returns a repository backed by the file at path. Every write is
// flushed to disk before it returns.
func OpenJSON(path string, log *zap.Logger) Repository {
	return openJSON(path, log)
}

func openJSON(path string, log *zap.Logger) *jsonRepo {
	r := &jsonRepo{
		path: path,
		log:  log,
		data: &Data{Entries: map[string][]byte{}},
	}

	err := r.readfile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		// only log, data starts empty and overwrites the file on the next write
		r.log.Warn("failed reading json repo data file", zap.String("path", path), zap.Error(err))
	}
	if r.data.Entries == nil {
		r.data.Entries = map[string][]byte{}
	}

	return r
}

func (r *jsonRepo) stop(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writefile()
}

func (r *jsonRepo) readfile() error {
	finfo, err := os.Stat(r.path)
	if err != nil {
		return err
	}

	if finfo.IsDir() {
		return errTableFileIsDir
	}

	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(&r.data)
}

// writefile must be called with mu held.
func (r *jsonRepo) writefile() error {
	b, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, r.path)
}

func (r *jsonRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.data.Entries[key]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte(nil), v...), nil
}

func (r *jsonRepo) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data.Entries[key] = append([]byte(nil), value...)
	return r.writefile()
}

func (r *jsonRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data.Entries[key]; !ok {
		return nil
	}

	delete(r.data.Entries, key)
	return r.writefile()
}
