package cache

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/logger"
)

// Well-known namespaces created at startup.
const (
	NamespaceState   = "state"
	NamespaceSession = "session"
)

// DefaultNamespaces returns the namespaces every registry is created with.
func DefaultNamespaces(cfg config.Cache) []NamespaceConfig {
	return []NamespaceConfig{
		{Name: NamespaceState, TTL: cfg.StateTTL, Capacity: cfg.StateCapacity},
		{Name: NamespaceSession, TTL: cfg.SessionTTL, Capacity: cfg.SessionCapacity},
	}
}

// NewRegistry builds the configured backend and ensures the default
// namespaces on it.
func NewRegistry(ctx context.Context, cfg config.Cache, log *logger.Logger) (Registry, error) {
	var (
		registry Registry
		err      error
	)

	switch cfg.Backend {
	case config.CacheBackendLocal, "":
		registry = NewLocalRegistry(log)
	case config.CacheBackendRedis:
		registry, err = NewRedisRegistry(ctx, RedisConfig{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, log)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	for _, ns := range DefaultNamespaces(cfg) {
		if err = registry.EnsureNamespace(ctx, ns); err != nil {
			_ = registry.Close()
			return nil, err
		}
	}

	return registry, nil
}
