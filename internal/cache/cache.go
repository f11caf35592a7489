// Package cache is the read-through snapshot cache shared by every manager. A collection is
// fetched once, served to all readers until invalidated, and concurrent misses collapse
// into a single request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/bao-console/internal/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Collection keys.
const (
	KeyStudents = "students"
	KeyProducts = "products"
	KeyOrders   = "orders"
	KeyUniforms = "uniforms"
)

// Backend stores encoded snapshots.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type Store struct {
	backend Backend
	ttl     time.Duration
	logger  logger.ZapLogger

	group singleflight.Group

	mu  sync.Mutex
	gen map[string]uint64
}

func NewStore(backend Backend, ttl time.Duration, log logger.ZapLogger) *Store {
	return &Store{
		backend: backend,
		ttl:     ttl,
		logger:  log,
		gen:     map[string]uint64{},
	}
}

// Load returns the cached snapshot for key or fetches, stores and returns a fresh one.
// Backend failures degrade to a direct fetch.
func Load[T any](ctx context.Context, s *Store, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if s == nil {
		return fetch(ctx)
	}

	if raw, ok, err := s.backend.Get(ctx, key); err != nil {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		s.logger.Warn("dropping undecodable cache entry", zap.String("key", key))
	}

	gen := s.generation(key)
	v, err, _ := s.group.Do(fmt.Sprintf("%s#%d", key, gen), func() (interface{}, error) {
		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.put(ctx, key, gen, fresh)
		return fresh, nil
	})
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, errors.Errorf("cache: unexpected type for %s", key)
	}
	return out, nil
}

// put stores a snapshot fetched at generation gen. An invalidation before or during the
// write leaves nothing behind.
func (s *Store) put(ctx context.Context, key string, gen uint64, v interface{}) {
	if s.generation(key) != gen {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.backend.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if s.generation(key) != gen {
		if err := s.backend.Delete(ctx, key); err != nil {
			s.logger.Warn("cache delete of stale snapshot failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// Invalidate drops the given collections so the next Load refetches them.
func (s *Store) Invalidate(ctx context.Context, keys ...string) error {
	if s == nil || len(keys) == 0 {
		return nil
	}
	s.mu.Lock()
	for _, k := range keys {
		s.gen[k]++
	}
	s.mu.Unlock()
	if err := s.backend.Delete(ctx, keys...); err != nil {
		return errors.Wrap(err, "cache invalidate")
	}
	s.logger.Debug("cache invalidated", zap.Strings("keys", keys))
	return nil
}

func (s *Store) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen[key]
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.backend.Close()
}
