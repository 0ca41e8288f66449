package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// ErrNotLoaded is returned when a snapshot is requested before Load ran.
var ErrNotLoaded = errors.New("dataset: snapshot not loaded")

// Store owns the snapshot for the life of the process. Load runs exactly
// once; there is no invalidation or reload path. Every consumer shares the
// same immutable snapshot, so no locking is needed after Load returns.
type Store struct {
	loader *Loader
	logger *slog.Logger

	once   sync.Once
	loaded atomic.Bool
	snap   *Snapshot
	err    error
}

// NewStore creates a store around a loader.
func NewStore(loader *Loader, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		loader: loader,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Load populates the store on first call and returns the cached snapshot on
// every call after that, regardless of context.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	s.once.Do(func() {
		s.snap, s.err = s.loader.Load(ctx)
		if s.err != nil {
			s.logger.ErrorContext(ctx, "dataset load failed", slog.String("error", s.err.Error()))
		}
		s.loaded.Store(true)
	})
	return s.snap, s.err
}

// Snapshot returns the loaded snapshot, or ErrNotLoaded before startup
// finished loading.
func (s *Store) Snapshot() (*Snapshot, error) {
	if !s.loaded.Load() {
		return nil, ErrNotLoaded
	}
	return s.snap, s.err
}
