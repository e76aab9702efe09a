package config

import (
	"os"
	"strings"
	"time"
)

// Built-in defaults applied to fields no other source has set.
const (
	DefaultName            = "example-service"
	DefaultHTTPAddress     = "0.0.0.0:8080"
	DefaultRequestTimeout  = 2 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name:        DefaultName,
			Environment: detectEnvironment(),
			LogLevel:    DefaultLogLevel,
		},
		Server: Server{
			HTTPAddress:        DefaultHTTPAddress,
			RequestTimeout:     DefaultRequestTimeout,
			ShutdownTimeout:    DefaultShutdownTimeout,
			CORSAllowedOrigins: []string{"*"},
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: 10,
				MaxIdleConns: 4,
				MaxRetries:   3,
				RetryBackoff: 100 * time.Millisecond,
			},
		},
		Cache: Cache{
			Backend:         CacheBackendLocal,
			StateTTL:        120 * time.Second,
			StateCapacity:   10_000,
			SessionTTL:      time.Hour,
			SessionCapacity: 100_000,
		},
	}
}

// detectEnvironment falls back to the generic ENV variable when APP_ENV is
// not set. Without either the service runs as production.
func detectEnvironment() string {
	if env := strings.TrimSpace(os.Getenv("ENV")); env != "" {
		return env
	}
	return EnvironmentProduction
}

func normalizeEnvironment(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local":
		return EnvironmentDevelopment
	case "prod", "production":
		return EnvironmentProduction
	default:
		return env
	}
}
