// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// serverTimeLayout is RFC3339 with a fixed nine-digit fraction. Unlike
// [time.RFC3339Nano] it never trims trailing zeros.
const serverTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Response is the uniform envelope every route handler and every pipeline
// layer answers with.
//
// All With* methods use value receivers and return an updated copy. The meta
// map is copied on every write, so two envelopes derived from the same value
// never share mutable state.
type Response[T any] struct {
	// RequestID is the correlation id of the request. It is echoed in the
	// X-Request-ID response header when the envelope is finalized.
	RequestID string `json:"request_id"`

	// Code is a machine readable outcome code (e.g. "OK", "NOT_FOUND").
	Code string `json:"code,omitempty"`

	// Message is a human readable description of the outcome.
	Message string `json:"message,omitempty"`

	// ServerTime is the construction time in Unix milliseconds.
	ServerTime int64 `json:"server_time"`

	// ServerTimeISO is the construction time formatted as RFC3339 with
	// nanosecond precision in UTC.
	ServerTimeISO string `json:"server_time_iso"`

	// Count is serialized only when it is strictly positive.
	Count int `json:"count,omitempty"`

	// Data is the payload. A payload that serializes to null is written as {}.
	Data T `json:"data"`

	// Agg is a free-form aggregate payload.
	Agg any `json:"agg,omitempty"`

	// Meta accumulates auxiliary key/value pairs; later writes win.
	Meta map[string]any `json:"meta,omitempty"`
}

// NewResponse returns an empty envelope with a freshly generated request id.
//
// The id is not the correlation id of any request. Inside a request handler
// use utils.NewResponse(ctx) or [NewResponseWithRequestID] instead, otherwise
// the response header and body disagree with the inbound X-Request-ID.
func NewResponse[T any]() Response[T] {
	now := time.Now().UTC()
	return Response[T]{
		RequestID:     uuid.NewString(),
		ServerTime:    now.UnixMilli(),
		ServerTimeISO: now.Format(serverTimeLayout),
	}
}

// NewResponseWithRequestID returns an empty envelope bound to requestID.
// An empty requestID falls back to a generated one so the envelope never
// carries a blank correlation id.
func NewResponseWithRequestID[T any](requestID string) Response[T] {
	r := NewResponse[T]()
	if requestID != "" {
		r.RequestID = requestID
	}
	return r
}

// OK returns a success envelope carrying data. Like [NewResponse] it mints a
// fresh request id; bind it with [Response.WithRequestID] inside a request.
func OK[T any](data T) Response[T] {
	r := NewResponse[T]()
	r.Data = data
	return r
}

// Error returns an envelope with code and message set and a zero payload.
// It mints a fresh request id, see [OK].
func Error[T any](code, message string) Response[T] {
	r := NewResponse[T]()
	r.Code = code
	r.Message = message
	return r
}

// FromError converts err into an envelope. A nil err yields a success
// envelope with a zero payload. It mints a fresh request id, see [OK].
func FromError[T any](code string, err error) Response[T] {
	if err == nil {
		var zero T
		return OK(zero)
	}
	return Error[T](code, err.Error())
}

// WithRequestID rebinds the envelope to requestID. An empty requestID keeps
// the current one.
func (r Response[T]) WithRequestID(requestID string) Response[T] {
	if requestID != "" {
		r.RequestID = requestID
	}
	return r
}

func (r Response[T]) WithCode(code string) Response[T] {
	r.Code = code
	return r
}

func (r Response[T]) WithMessage(message string) Response[T] {
	r.Message = message
	return r
}

func (r Response[T]) WithData(data T) Response[T] {
	r.Data = data
	return r
}

// WithCount sets count when n is positive and is a no-op otherwise.
func (r Response[T]) WithCount(n int) Response[T] {
	if n > 0 {
		r.Count = n
	}
	return r
}

func (r Response[T]) WithAgg(agg any) Response[T] {
	r.Agg = agg
	return r
}

// WithMetaKV merges a single key into meta.
func (r Response[T]) WithMetaKV(key string, value any) Response[T] {
	r.Meta = mergeMeta(r.Meta, map[string]any{key: value})
	return r
}

// WithMeta merges every key of m into meta.
func (r Response[T]) WithMeta(m map[string]any) Response[T] {
	if len(m) == 0 {
		return r
	}
	r.Meta = mergeMeta(r.Meta, m)
	return r
}

// WithPagination stores p under the "pagination" meta key.
func (r Response[T]) WithPagination(p Pagination) Response[T] {
	return r.WithMetaKV("pagination", p)
}

// Populate sets code, message and data in one call.
//
// A non-nil meta that serializes to a JSON object is merged key by key;
// any other value is nested under the "meta" key. count follows the same
// positivity rule as [Response.WithCount].
func (r Response[T]) Populate(code, message string, data T, meta any, count int) Response[T] {
	r.Code = code
	r.Message = message
	r.Data = data

	if meta != nil {
		if obj, ok := asObject(meta); ok {
			r = r.WithMeta(obj)
		} else {
			r = r.WithMetaKV("meta", meta)
		}
	}

	return r.WithCount(count)
}

// MarshalJSON implements [json.Marshaler]. It coerces a null payload to {}.
func (r Response[T]) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.Data)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(data, nullJSON) {
		data = emptyObjectJSON
	}

	var count int
	if r.Count > 0 {
		count = r.Count
	}

	return json.Marshal(struct {
		RequestID     string          `json:"request_id"`
		Code          string          `json:"code,omitempty"`
		Message       string          `json:"message,omitempty"`
		ServerTime    int64           `json:"server_time"`
		ServerTimeISO string          `json:"server_time_iso"`
		Count         int             `json:"count,omitempty"`
		Data          json.RawMessage `json:"data"`
		Agg           any             `json:"agg,omitempty"`
		Meta          map[string]any  `json:"meta,omitempty"`
	}{
		RequestID:     r.RequestID,
		Code:          r.Code,
		Message:       r.Message,
		ServerTime:    r.ServerTime,
		ServerTimeISO: r.ServerTimeISO,
		Count:         count,
		Data:          data,
		Agg:           r.Agg,
		Meta:          r.Meta,
	})
}

// WithStatus finalizes the envelope: it copies the request id into the
// X-Request-ID header, sets the JSON content type, writes status and the
// serialized body.
//
// If the envelope cannot be serialized a bare INTERNAL_ERROR envelope with
// the same request id is written with status 500 instead, and the
// serialization error is returned.
func (r Response[T]) WithStatus(w http.ResponseWriter, status int) error {
	body, err := json.Marshal(r)
	if err != nil {
		fallback := NewResponseWithRequestID[any](r.RequestID).
			WithCode(CodeInternalError).
			WithMessage("response serialization failed")
		body, _ = json.Marshal(fallback)
		writeJSONBody(w, r.RequestID, http.StatusInternalServerError, ContentTypeJSON, body)
		return err
	}

	return writeJSONBody(w, r.RequestID, status, ContentTypeJSON, body)
}

func writeJSONBody(w http.ResponseWriter, requestID string, status int, contentType string, body []byte) error {
	h := w.Header()
	h.Set(HeaderContentType, contentType)
	if requestID != "" {
		h.Set(HeaderRequestID, requestID)
	}
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

var (
	nullJSON        = []byte("null")
	emptyObjectJSON = []byte("{}")
)

func mergeMeta(dst, src map[string]any) map[string]any {
	merged := make(map[string]any, len(dst)+len(src))
	maps.Copy(merged, dst)
	maps.Copy(merged, src)
	return merged
}

// asObject reports whether v serializes to a JSON object and, if so, returns
// it decoded as a map.
func asObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}

	raw, err := json.Marshal(v)
	if err != nil || len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}
