// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// request metadata extraction, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/go-service-template/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RequestContextCtxKey is the key under which the per-request
// [models.RequestContext] is stored.
var RequestContextCtxKey = contextKey("requestContext")

// WithRequestContext returns a copy of ctx carrying rc.
func WithRequestContext(ctx context.Context, rc models.RequestContext) context.Context {
	return context.WithValue(ctx, RequestContextCtxKey, rc)
}

// GetRequestContext retrieves the request context stored by
// WithRequestContext.
//
// Returns the value and an ok flag:
//   - ok == true: value is found and has the correct type
//   - ok == false: value is missing (the request did not pass the
//     correlation layer)
func GetRequestContext(ctx context.Context) (models.RequestContext, bool) {
	rc, ok := ctx.Value(RequestContextCtxKey).(models.RequestContext)
	return rc, ok
}

// GetRequestIDFromContext returns the correlation id of the request or an
// empty string when none was assigned.
func GetRequestIDFromContext(ctx context.Context) string {
	rc, _ := GetRequestContext(ctx)
	return rc.RequestID
}

// NewResponse returns an empty envelope bound to the correlation id of the
// request carried by ctx, so the X-Request-ID header, the body and the access
// record all agree. Handlers build responses through it rather than through
// [models.NewResponse], which mints an unrelated id.
//
// Outside a request (no id in ctx) a fresh id is generated.
func NewResponse[T any](ctx context.Context) models.Response[T] {
	return models.NewResponseWithRequestID[T](GetRequestIDFromContext(ctx))
}
