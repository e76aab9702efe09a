package store

import (
	"context"

	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/logger"
)

// Storages aggregates every storage collaborator of the service.
// DB is nil when no DSN is configured.
type Storages struct {
	DB *DB
}

// NewStorages connects the configured backends.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	if cfg.DB.DSN == "" {
		log.Info().Str("func", "NewStorages").Msg("database DSN is empty, pool disabled")
		return &Storages{}, nil
	}

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	return &Storages{DB: db}, nil
}

// Enabled reports whether a database pool is configured.
func (s *Storages) Enabled() bool {
	return s != nil && s.DB != nil
}

func (s *Storages) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.DB.Close()
}
