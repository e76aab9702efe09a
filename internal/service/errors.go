package service

import "errors"

// Domain error taxonomy. Handlers translate these into statuses and envelope
// codes; wrap them with %w to add context.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrTimeout      = errors.New("operation timed out")
	ErrInternal     = errors.New("internal error")
)

var (
	// ErrAuthenticationUnavailable is returned when no authentication
	// provider is configured.
	ErrAuthenticationUnavailable = errors.New("authentication provider is not configured")

	// ErrDependencyUnavailable is returned by readiness checks when at least
	// one dependency is down.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrNotStarted is returned by the startup probe before the server
	// finished starting.
	ErrNotStarted = errors.New("service has not finished starting")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
