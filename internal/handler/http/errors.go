// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the handlers themselves while reading a
// request. Callers can match against them with [errors.Is].
var (
	// ErrInvalidRequestBody is returned when the request body is not valid
	// JSON or does not fit the expected shape.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrMissingQueryParameter is returned when a required query parameter
	// is absent or empty.
	ErrMissingQueryParameter = errors.New("missing query parameter")
)
