package service

import (
	"context"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/models"
)

// unavailableAuthService is the default AuthenticationService. It accepts
// well-formed requests and reports that no provider is configured.
type unavailableAuthService struct {
	logger *logger.Logger
}

func NewAuthenticationService(logger *logger.Logger) AuthenticationService {
	return &unavailableAuthService{logger: logger}
}

func (s *unavailableAuthService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	s.unavailable(ctx, "Login")
	return models.Session{}, ErrAuthenticationUnavailable
}

func (s *unavailableAuthService) Logout(ctx context.Context, req models.LogoutRequest) error {
	s.unavailable(ctx, "Logout")
	return ErrAuthenticationUnavailable
}

func (s *unavailableAuthService) Refresh(ctx context.Context, req models.RefreshRequest) (models.Session, error) {
	s.unavailable(ctx, "Refresh")
	return models.Session{}, ErrAuthenticationUnavailable
}

func (s *unavailableAuthService) OIDCRedirect(ctx context.Context, state string) (string, error) {
	s.unavailable(ctx, "OIDCRedirect")
	return "", ErrAuthenticationUnavailable
}

func (s *unavailableAuthService) OIDCCallback(ctx context.Context, cb models.OIDCCallback) (models.Session, error) {
	s.unavailable(ctx, "OIDCCallback")
	return models.Session{}, ErrAuthenticationUnavailable
}

func (s *unavailableAuthService) unavailable(ctx context.Context, op string) {
	logger.FromContext(ctx).Debug().
		Str("func", "unavailableAuthService."+op).
		Msg("authentication provider is not configured")
}
