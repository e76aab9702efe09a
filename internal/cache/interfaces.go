package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Registry is the namespaced TTL cache consumed by services.
type Registry interface {
	// EnsureNamespace creates ns if it does not exist yet. Re-ensuring an
	// existing namespace keeps its original settings.
	EnsureNamespace(ctx context.Context, ns NamespaceConfig) error

	// Put stores the JSON encoding of value under key.
	Put(ctx context.Context, ns, key string, value any) error
	// PutRaw stores an already encoded JSON value under key.
	PutRaw(ctx context.Context, ns, key string, raw json.RawMessage) error

	// Get decodes the value under key into dst and reports whether it was
	// found.
	Get(ctx context.Context, ns, key string, dst any) (bool, error)
	// GetRaw returns the stored JSON value under key.
	GetRaw(ctx context.Context, ns, key string) (json.RawMessage, bool, error)

	Invalidate(ctx context.Context, ns, key string) error
	Contains(ctx context.Context, ns, key string) (bool, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// NamespaceConfig describes a single cache namespace.
type NamespaceConfig struct {
	Name     string
	TTL      time.Duration
	Capacity uint64
}
