package models

// RequestContext is the per-request identity snapshot created by the
// correlation layer and carried in the request's context.Context.
//
// Optional fields are empty strings when the information is not available.
type RequestContext struct {
	// RequestID is the correlation id of the request. Never empty.
	RequestID string

	// Subject identifies the caller, taken from the X-Subject header.
	Subject string

	// ClientIP is the best-effort originating client address.
	ClientIP string

	// UserAgent is the raw User-Agent header value.
	UserAgent string
}
