package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-service-template/models"
)

// HealthService reports liveness, readiness and startup state of the
// process and its dependencies.
type HealthService interface {
	// Health returns the aggregate application report.
	Health(ctx context.Context) models.HealthReport
	// Live reports that the process is running.
	Live(ctx context.Context) models.HealthReport
	// Ready probes every dependency. A non-nil error wraps
	// ErrDependencyUnavailable and the report lists the failing components.
	Ready(ctx context.Context) (models.HealthReport, error)
	// Started fails with ErrNotStarted until MarkStarted was called.
	Started(ctx context.Context) (models.HealthReport, error)
	MarkStarted()
}

// AuthenticationService is the capability behind the /auth routes. The
// decision logic lives in a provider; the built-in implementation reports
// ErrAuthenticationUnavailable for every call.
type AuthenticationService interface {
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
	Logout(ctx context.Context, req models.LogoutRequest) error
	Refresh(ctx context.Context, req models.RefreshRequest) (models.Session, error)
	// OIDCRedirect returns the identity provider URL the client is sent to.
	OIDCRedirect(ctx context.Context, state string) (string, error)
	OIDCCallback(ctx context.Context, cb models.OIDCCallback) (models.Session, error)
}

// AppInfoService exposes static application metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}
