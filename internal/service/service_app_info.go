package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/models"
)

type appInfoService struct {
	appName     string
	appVersion  string
	environment string
	startedAt   time.Time

	now    func() time.Time
	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, startedAt time.Time, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appName:     cfg.Name,
		appVersion:  cfg.Version,
		environment: cfg.Environment,
		startedAt:   startedAt.UTC(),
		now:         time.Now,
		logger:      logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return models.AppInfo{
		Name:        s.appName,
		Version:     s.appVersion,
		Environment: s.environment,
		StartedAt:   s.startedAt,
		UptimeMS:    s.now().Sub(s.startedAt).Milliseconds(),
	}
}
