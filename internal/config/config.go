// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Environments recognised by [App.Environment].
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Cache backends recognised by [Cache.Backend].
const (
	CacheBackendLocal = "local"
	CacheBackendRedis = "redis"
)

// StructuredConfig is the top-level configuration container of the service.
// It is populated by merging values from environment variables,
// command-line flags, an optional JSON file and finally built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//   - validate: go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds application-level settings such as the service name,
	// the runtime environment and the log level.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the relational database pool.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds configuration for the namespaced TTL cache registry.
	Cache Cache `envPrefix:"CACHE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Name is the service name reported by the health endpoint.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// Environment selects the runtime profile: "development" or "production".
	// Diagnostic details (e.g. recovered panic messages) are echoed into
	// responses only in development.
	// Env: APP_ENV
	Environment string `env:"ENV" validate:"omitempty,oneof=development production"`

	// LogLevel is the minimum emitted log level (trace, debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error"`

	// Version is the semantic version string of the running service.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the deadline layer abandons it (e.g. "2s").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gte=0"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gte=0"`

	// CORSAllowedOrigins lists origins allowed by the CORS policy.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL Data Source Name. An empty DSN disables the
	// database pool; readiness then reports the component as disabled.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI" json:"-"`

	// MaxOpenConns caps the number of open pool connections.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS" validate:"gte=0"`

	// MaxIdleConns caps the number of idle pool connections.
	// Env: STORAGE_DB_MAX_IDLE_CONNS
	MaxIdleConns int `env:"MAX_IDLE_CONNS" validate:"gte=0"`

	// MaxRetries bounds how many times a transient connection failure is
	// retried when acquiring or pinging. Zero disables retries.
	// Env: STORAGE_DB_MAX_RETRIES
	MaxRetries uint64 `env:"MAX_RETRIES"`

	// RetryBackoff is the first delay of the exponential retry backoff.
	// Env: STORAGE_DB_RETRY_BACKOFF
	RetryBackoff time.Duration `env:"RETRY_BACKOFF" validate:"gte=0"`
}

// Cache holds settings for the namespaced TTL cache registry.
type Cache struct {
	// Backend is "local" (in-process) or "redis".
	// Env: CACHE_BACKEND
	Backend string `env:"BACKEND" validate:"omitempty,oneof=local redis"`

	// RedisAddress is the "host:port" of the Redis server. Required when
	// Backend is "redis".
	// Env: CACHE_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS" validate:"required_if=Backend redis"`

	// RedisPassword authenticates against Redis.
	// Env: CACHE_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD" json:"-"`

	// RedisDB selects the Redis logical database.
	// Env: CACHE_REDIS_DB
	RedisDB int `env:"REDIS_DB" validate:"gte=0"`

	// StateTTL and StateCapacity configure the "state" namespace.
	// Env: CACHE_STATE_TTL, CACHE_STATE_CAPACITY
	StateTTL      time.Duration `env:"STATE_TTL" validate:"gte=0"`
	StateCapacity uint64        `env:"STATE_CAPACITY"`

	// SessionTTL and SessionCapacity configure the "session" namespace.
	// Env: CACHE_SESSION_TTL, CACHE_SESSION_CAPACITY
	SessionTTL      time.Duration `env:"SESSION_TTL" validate:"gte=0"`
	SessionCapacity uint64        `env:"SESSION_CAPACITY"`
}

// IsDevelopment reports whether the service runs with the development profile.
func (cfg *StructuredConfig) IsDevelopment() bool {
	return cfg.App.Environment == EnvironmentDevelopment
}

// GetStructuredConfig loads, merges, and validates the service
// configuration from all available sources in the following priority order
// (the first source that sets a field wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
