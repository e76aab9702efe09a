package cache

import "errors"

var (
	// ErrNamespaceNotFound is returned when writing to a namespace that was
	// never created with EnsureNamespace.
	ErrNamespaceNotFound = errors.New("cache namespace not found")

	// ErrInvalidNamespace is returned when ensuring a namespace with an
	// empty name or a non-positive TTL.
	ErrInvalidNamespace = errors.New("invalid cache namespace configuration")

	// ErrEncodeValue is returned when a value cannot be encoded to JSON.
	ErrEncodeValue = errors.New("error encoding cache value")

	// ErrDecodeValue is returned when a stored value cannot be decoded into
	// the requested destination.
	ErrDecodeValue = errors.New("error decoding cache value")

	// ErrBackendUnavailable wraps failures of a remote cache backend.
	ErrBackendUnavailable = errors.New("cache backend unavailable")

	// ErrUnknownBackend is returned by NewRegistry for an unsupported backend.
	ErrUnknownBackend = errors.New("unknown cache backend")
)
