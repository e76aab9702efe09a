package handler

import (
	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/handler/http"
	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/metrics"
	"github.com/MKhiriev/go-service-template/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, recorder *metrics.Recorder, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, recorder, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
