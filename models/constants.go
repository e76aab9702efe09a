package models

// Envelope codes produced by the pipeline and the built-in handlers.
const (
	CodeOK             = "OK"
	CodeValidation     = "VALIDATION_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeTimeout        = "TIMEOUT"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeUnavailable    = "UNAVAILABLE"
)

// Header names.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderSubject       = "X-Subject"
	HeaderForwardedFor  = "X-Forwarded-For"
	HeaderRealIP        = "X-Real-IP"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
	HeaderAuthorization = "Authorization"
)

// Content types.
const (
	ContentTypeJSON        = "application/json"
	ContentTypeProblemJSON = "application/problem+json"
	ContentTypeText        = "text/plain; charset=utf-8"
)
