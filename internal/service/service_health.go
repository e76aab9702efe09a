package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-service-template/internal/cache"
	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/store"
	"github.com/MKhiriev/go-service-template/models"
)

const (
	readyCacheKey = "health:ready"
	readyCacheFor = 5 * time.Second
	probeTimeout  = time.Second
)

// Component names reported by the readiness probe.
const (
	ComponentDatabase = "database"
	ComponentCache    = "cache"
)

type healthService struct {
	appInfo AppInfoService
	pool    store.Pool
	cache   cache.Registry
	started atomic.Bool

	now    func() time.Time
	logger *logger.Logger
}

type cachedReadiness struct {
	Components []models.ComponentStatus `json:"components"`
	CheckedAt  time.Time                `json:"checked_at"`
}

// NewHealthService builds the health capability. pool may be nil when no
// database is configured; the component is then reported as disabled.
func NewHealthService(appInfo AppInfoService, pool store.Pool, registry cache.Registry, logger *logger.Logger) HealthService {
	return &healthService{
		appInfo: appInfo,
		pool:    pool,
		cache:   registry,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *healthService) Health(ctx context.Context) models.HealthReport {
	return models.HealthReport{
		Code:    models.CodeOK,
		Message: "OK",
		Data:    s.appInfo.GetAppInfo(ctx),
	}
}

func (s *healthService) Live(ctx context.Context) models.HealthReport {
	return models.HealthReport{
		Code:    models.CodeOK,
		Message: "OK",
	}
}

func (s *healthService) Ready(ctx context.Context) (models.HealthReport, error) {
	var cached cachedReadiness
	found, err := s.cache.Get(ctx, cache.NamespaceState, readyCacheKey, &cached)
	if err != nil {
		s.logger.Warn().Err(err).Str("func", "healthService.Ready").Msg("error reading cached readiness")
	}
	if found && s.now().Sub(cached.CheckedAt) < readyCacheFor {
		return readyReport(cached.Components, true), nil
	}

	components := []models.ComponentStatus{
		s.probe(ctx, ComponentDatabase, s.pingDatabase),
		s.probe(ctx, ComponentCache, s.cache.Ping),
	}

	healthy := true
	for _, c := range components {
		if c.Status == models.ComponentDown {
			healthy = false
		}
	}

	if !healthy {
		if err = s.cache.Invalidate(ctx, cache.NamespaceState, readyCacheKey); err != nil {
			s.logger.Warn().Err(err).Str("func", "healthService.Ready").Msg("error invalidating cached readiness")
		}
		return readyReport(components, false), fmt.Errorf("%w: readiness check failed", ErrDependencyUnavailable)
	}

	entry := cachedReadiness{Components: components, CheckedAt: s.now().UTC()}
	if err = s.cache.Put(ctx, cache.NamespaceState, readyCacheKey, entry); err != nil {
		s.logger.Warn().Err(err).Str("func", "healthService.Ready").Msg("error caching readiness")
	}

	return readyReport(components, true), nil
}

func (s *healthService) Started(ctx context.Context) (models.HealthReport, error) {
	if !s.started.Load() {
		return models.HealthReport{
			Code:    models.CodeUnavailable,
			Message: "Service is starting",
		}, ErrNotStarted
	}

	return models.HealthReport{
		Code:    models.CodeOK,
		Message: "OK",
	}, nil
}

func (s *healthService) MarkStarted() {
	if s.started.CompareAndSwap(false, true) {
		s.logger.Info().Str("func", "healthService.MarkStarted").Msg("service marked as started")
	}
}

func (s *healthService) pingDatabase(ctx context.Context) error {
	if s.pool == nil {
		return store.ErrPoolDisabled
	}
	return s.pool.Ping(ctx)
}

func (s *healthService) probe(ctx context.Context, name string, ping func(context.Context) error) models.ComponentStatus {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := s.now()
	err := ping(ctx)
	status := models.ComponentStatus{
		Name:      name,
		Status:    models.ComponentUp,
		LatencyMS: s.now().Sub(start).Milliseconds(),
	}

	switch {
	case err == nil:
	case isDisabled(err):
		status.Status = models.ComponentDisabled
	default:
		status.Status = models.ComponentDown
		status.Error = err.Error()
		s.logger.Warn().Err(err).Str("component", name).Msg("readiness probe failed")
	}

	return status
}

func isDisabled(err error) bool {
	return errors.Is(err, store.ErrPoolDisabled)
}

func readyReport(components []models.ComponentStatus, healthy bool) models.HealthReport {
	report := models.HealthReport{
		Code:    models.CodeOK,
		Message: "OK",
		Data:    map[string]any{"components": components},
		Count:   len(components),
	}
	if !healthy {
		report.Code = models.CodeUnavailable
		report.Message = "One or more dependencies are unavailable"
	}
	return report
}
