package config

import "errors"

// ErrInvalidConfig is returned by [StructuredConfig.validate] when a field
// violates its `validate` tag (for example, an unknown environment or a
// redis cache backend without an address).
var ErrInvalidConfig = errors.New("invalid configuration")
