package http

import (
	"time"

	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/metrics"
	"github.com/MKhiriev/go-service-template/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Recorder

	requestTimeout time.Duration
	corsOrigins    []string
	development    bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, recorder *metrics.Recorder, logger *logger.Logger) *Handler {
	logger.Info().
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Str("environment", cfg.App.Environment).
		Msg("http handler created")

	return &Handler{
		services:       services,
		metrics:        recorder,
		requestTimeout: cfg.Server.RequestTimeout,
		corsOrigins:    cfg.Server.CORSAllowedOrigins,
		development:    cfg.IsDevelopment(),
		logger:         logger,
	}
}
