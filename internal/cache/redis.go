package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	redis "github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-service-template/internal/logger"
)

// RedisConfig configures the Redis-backed registry.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// redisRegistry stores every namespace in one Redis logical database.
// Namespace capacity is not enforced; eviction is left to the server's
// maxmemory policy.
type redisRegistry struct {
	client redis.UniversalClient

	mu         sync.RWMutex
	namespaces map[string]NamespaceConfig

	logger *logger.Logger
}

// NewRedisRegistry connects to Redis and verifies the connection with PING.
func NewRedisRegistry(ctx context.Context, cfg RedisConfig, log *logger.Logger) (Registry, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:      []string{cfg.Addr},
		Password:   cfg.Password,
		DB:         cfg.DB,
		MaxRetries: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Err(err).Str("func", "NewRedisRegistry").Str("addr", cfg.Addr).Msg("error connecting redis")
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	log.Info().Str("func", "NewRedisRegistry").Str("addr", cfg.Addr).Msg("connected to redis successfully")

	return newRedisRegistry(client, log), nil
}

func newRedisRegistry(client redis.UniversalClient, log *logger.Logger) *redisRegistry {
	return &redisRegistry{
		client:     client,
		namespaces: make(map[string]NamespaceConfig),
		logger:     log,
	}
}

func (r *redisRegistry) EnsureNamespace(_ context.Context, ns NamespaceConfig) error {
	if err := validateNamespace(ns); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.namespaces[ns.Name]; !ok {
		r.namespaces[ns.Name] = ns
	}
	return nil
}

func (r *redisRegistry) Put(ctx context.Context, ns, key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return err
	}
	return r.PutRaw(ctx, ns, key, raw)
}

func (r *redisRegistry) PutRaw(ctx context.Context, ns, key string, raw json.RawMessage) error {
	cfg, ok := r.namespace(ns)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNamespaceNotFound, ns)
	}

	if err := r.client.Set(ctx, redisKey(ns, key), []byte(raw), cfg.TTL).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

func (r *redisRegistry) Get(ctx context.Context, ns, key string, dst any) (bool, error) {
	raw, found, err := r.GetRaw(ctx, ns, key)
	if err != nil || !found {
		return false, err
	}
	return decode(raw, dst)
}

func (r *redisRegistry) GetRaw(ctx context.Context, ns, key string) (json.RawMessage, bool, error) {
	if _, ok := r.namespace(ns); !ok {
		return nil, false, nil
	}

	b, err := r.client.Get(ctx, redisKey(ns, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return json.RawMessage(b), true, nil
}

func (r *redisRegistry) Invalidate(ctx context.Context, ns, key string) error {
	if _, ok := r.namespace(ns); !ok {
		return nil
	}

	if err := r.client.Del(ctx, redisKey(ns, key)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

func (r *redisRegistry) Contains(ctx context.Context, ns, key string) (bool, error) {
	if _, ok := r.namespace(ns); !ok {
		return false, nil
	}

	n, err := r.client.Exists(ctx, redisKey(ns, key)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return n > 0, nil
}

func (r *redisRegistry) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

func (r *redisRegistry) Close() error {
	return r.client.Close()
}

func (r *redisRegistry) namespace(ns string) (NamespaceConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.namespaces[ns]
	return cfg, ok
}

func redisKey(ns, key string) string {
	return ns + ":" + key
}
