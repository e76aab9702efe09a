package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-service-template/internal/config"
	"github.com/MKhiriev/go-service-template/internal/handler"
	"github.com/MKhiriev/go-service-template/internal/logger"
)

type server struct {
	httpServer      *httpServer
	shutdownTimeout time.Duration
	onStarted       func()
	logger          *logger.Logger
}

// NewServer builds the HTTP server for handlers. onStarted, when not nil, is
// called once the listening socket is bound.
func NewServer(handlers *handler.Handlers, cfg config.Server, onStarted func(), logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		shutdownTimeout: cfg.ShutdownTimeout,
		onStarted:       onStarted,
		logger:          logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Run(ctx context.Context) error {
	if err := s.httpServer.listen(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	s.logger.Info().Str("address", s.httpServer.addr()).Msg("Launching HTTP server")
	go func() {
		serveErr <- s.httpServer.serve()
	}()

	if s.onStarted != nil {
		s.onStarted()
	}

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		return err
	}

	shutdownCtx, cancel := s.shutdownContext()
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.shutdown(ctx)
}

// shutdownContext bounds the drain of in-flight requests. A zero timeout
// waits for them indefinitely.
func (s *server) shutdownContext() (context.Context, context.CancelFunc) {
	if s.shutdownTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.shutdownTimeout)
}
