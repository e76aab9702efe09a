package models

import "time"

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Login    string `json:"login" validate:"required,max=256"`
	Password string `json:"password" validate:"required,max=1024"`
}

// RefreshRequest is the body of POST /api/v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest is the body of POST /api/v1/auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// OIDCCallback carries the query parameters of the OIDC redirect callback.
type OIDCCallback struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state" validate:"required"`
}

// Session is issued by an authentication provider.
type Session struct {
	Subject      string    `json:"subject"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}
