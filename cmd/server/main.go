package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-service-template/internal/cache"
	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/handler"
	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/metrics"
	"github.com/MKhiriev/go-service-template/internal/server"
	"github.com/MKhiriev/go-service-template/internal/service"
	"github.com/MKhiriev/go-service-template/internal/store"
)

// metricsNamespace prefixes every exported Prometheus metric.
const metricsNamespace = "service"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	startedAt := time.Now()

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("server").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLoggerWithLevel(cfg.App.Name, cfg.App.LogLevel, os.Stdout)
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	registry, err := cache.NewRegistry(ctx, cfg.Cache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cache registry")
	}
	defer registry.Close()

	services, err := service.NewServices(storages, registry, cfg, startedAt, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, metrics.NewRecorder(metricsNamespace), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, services.HealthService.MarkStarted, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
