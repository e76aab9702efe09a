package service

import (
	"time"

	"github.com/MKhiriev/go-service-template/internal/cache"
	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/store"
)

type Services struct {
	AppInfoService        AppInfoService
	HealthService         HealthService
	AuthenticationService AuthenticationService
}

func NewServices(storages *store.Storages, registry cache.Registry, cfg *config.StructuredConfig, startedAt time.Time, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, startedAt, logger)
	if err != nil {
		return nil, err
	}

	var pool store.Pool
	if storages.Enabled() {
		pool = storages.DB
	}

	return &Services{
		AppInfoService:        appInfo,
		HealthService:         NewHealthService(appInfo, pool, registry, logger),
		AuthenticationService: NewAuthenticationService(logger),
	}, nil
}
