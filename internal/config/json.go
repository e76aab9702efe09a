package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// accept either Go duration strings ("2s") or integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		Name        string `json:"name"`
		Environment string `json:"environment"`
		LogLevel    string `json:"log_level"`
		Version     string `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		ShutdownTimeout    Duration `json:"shutdown_timeout"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			DSN          string   `json:"dsn"`
			MaxOpenConns int      `json:"max_open_conns"`
			MaxIdleConns int      `json:"max_idle_conns"`
			MaxRetries   uint64   `json:"max_retries"`
			RetryBackoff Duration `json:"retry_backoff"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Cache struct {
		Backend         string   `json:"backend"`
		RedisAddress    string   `json:"redis_address"`
		RedisPassword   string   `json:"redis_password"`
		RedisDB         int      `json:"redis_db"`
		StateTTL        Duration `json:"state_ttl"`
		StateCapacity   uint64   `json:"state_capacity"`
		SessionTTL      Duration `json:"session_ttl"`
		SessionCapacity uint64   `json:"session_capacity"`
	} `json:"cache,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:        jsonCfg.App.Name,
			Environment: jsonCfg.App.Environment,
			LogLevel:    jsonCfg.App.LogLevel,
			Version:     jsonCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout:    time.Duration(jsonCfg.Server.ShutdownTimeout),
			CORSAllowedOrigins: jsonCfg.Server.CORSAllowedOrigins,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns: jsonCfg.Storage.DB.MaxIdleConns,
				MaxRetries:   jsonCfg.Storage.DB.MaxRetries,
				RetryBackoff: time.Duration(jsonCfg.Storage.DB.RetryBackoff),
			},
		},
		Cache: Cache{
			Backend:         jsonCfg.Cache.Backend,
			RedisAddress:    jsonCfg.Cache.RedisAddress,
			RedisPassword:   jsonCfg.Cache.RedisPassword,
			RedisDB:         jsonCfg.Cache.RedisDB,
			StateTTL:        time.Duration(jsonCfg.Cache.StateTTL),
			StateCapacity:   jsonCfg.Cache.StateCapacity,
			SessionTTL:      time.Duration(jsonCfg.Cache.SessionTTL),
			SessionCapacity: jsonCfg.Cache.SessionCapacity,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
