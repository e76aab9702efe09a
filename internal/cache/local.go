package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jellydator/ttlcache/v3"

	"github.com/MKhiriev/go-service-template/internal/logger"
)

type localRegistry struct {
	mu     sync.RWMutex
	caches map[string]*ttlcache.Cache[string, json.RawMessage]
	logger *logger.Logger
}

// NewLocalRegistry returns an in-process registry. Expired entries are
// evicted by a background loop per namespace that runs until Close.
func NewLocalRegistry(log *logger.Logger) Registry {
	return &localRegistry{
		caches: make(map[string]*ttlcache.Cache[string, json.RawMessage]),
		logger: log,
	}
}

func (r *localRegistry) EnsureNamespace(_ context.Context, ns NamespaceConfig) error {
	if err := validateNamespace(ns); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.caches[ns.Name]; ok {
		return nil
	}

	opts := []ttlcache.Option[string, json.RawMessage]{
		ttlcache.WithTTL[string, json.RawMessage](ns.TTL),
		ttlcache.WithDisableTouchOnHit[string, json.RawMessage](),
	}
	if ns.Capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, json.RawMessage](ns.Capacity))
	}

	c := ttlcache.New[string, json.RawMessage](opts...)
	go c.Start()

	r.caches[ns.Name] = c
	r.logger.Debug().
		Str("func", "localRegistry.EnsureNamespace").
		Str("namespace", ns.Name).
		Dur("ttl", ns.TTL).
		Uint64("capacity", ns.Capacity).
		Msg("cache namespace created")

	return nil
}

func (r *localRegistry) Put(ctx context.Context, ns, key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}
	return r.PutRaw(ctx, ns, key, raw)
}

func (r *localRegistry) PutRaw(_ context.Context, ns, key string, raw json.RawMessage) error {
	c, ok := r.namespace(ns)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNamespaceNotFound, ns)
	}

	c.Set(key, raw, ttlcache.DefaultTTL)
	return nil
}

func (r *localRegistry) Get(ctx context.Context, ns, key string, dst any) (bool, error) {
	raw, found, err := r.GetRaw(ctx, ns, key)
	if err != nil || !found {
		return false, err
	}
	return decode(raw, dst)
}

func (r *localRegistry) GetRaw(_ context.Context, ns, key string) (json.RawMessage, bool, error) {
	c, ok := r.namespace(ns)
	if !ok {
		return nil, false, nil
	}

	item := c.Get(key)
	if item == nil {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

func (r *localRegistry) Invalidate(_ context.Context, ns, key string) error {
	if c, ok := r.namespace(ns); ok {
		c.Delete(key)
	}
	return nil
}

func (r *localRegistry) Contains(_ context.Context, ns, key string) (bool, error) {
	c, ok := r.namespace(ns)
	if !ok {
		return false, nil
	}
	return c.Get(key) != nil, nil
}

func (r *localRegistry) Ping(context.Context) error {
	return nil
}

func (r *localRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, c := range r.caches {
		c.Stop()
		c.DeleteAll()
		delete(r.caches, name)
	}
	return nil
}

func (r *localRegistry) namespace(ns string) (*ttlcache.Cache[string, json.RawMessage], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.caches[ns]
	return c, ok
}
