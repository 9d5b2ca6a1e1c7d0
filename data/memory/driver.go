package memory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/config"
)

// driver implements data.StoreDriver over JSON fixture files.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "memory"
}

// Connect returns a source reading <fixtures>/<collection>.json on first use.
func (d *driver) Connect(ctx context.Context, cfg *config.Config) (data.Source, error) {
	if cfg == nil || cfg.Memory == nil || cfg.Memory.Fixtures == "" {
		return nil, errors.New("memory: fixtures directory is required")
	}
	info, err := os.Stat(cfg.Memory.Fixtures)
	if err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("memory: %s is not a directory", cfg.Memory.Fixtures)
	}
	return NewSource(os.DirFS(cfg.Memory.Fixtures)), nil
}

// Source serves collections from JSON fixtures in a file system.
type Source struct {
	fsys  fs.FS
	mu    sync.Mutex
	cache map[string]*Store[data.Document]
}

// NewSource creates a source over fsys.
func NewSource(fsys fs.FS) *Source {
	return &Source{fsys: fsys, cache: make(map[string]*Store[data.Document])}
}

// Collection implements data.Source.
func (s *Source) Collection(ctx context.Context, name string) (data.Collection, error) {
	if err := data.ValidateCollectionName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if store, ok := s.cache[name]; ok {
		return store, nil
	}

	f, err := s.fsys.Open(filepath.ToSlash(name + ".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", data.ErrCollectionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	defer f.Close()

	docs, err := LoadJSON(f)
	if err != nil {
		return nil, err
	}
	store := New(docs)
	s.cache[name] = store
	return store, nil
}

// Ping implements data.Source.
func (s *Source) Ping(ctx context.Context) error {
	_, err := fs.Stat(s.fsys, ".")
	return err
}

// Close implements data.Source.
func (s *Source) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*Store[data.Document])
	return nil
}

// init registers the memory driver with the data package.
func init() {
	data.RegisterStoreDriver(&driver{})
}
