package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
)

// withTimeout bounds every request by the configured request timeout.
//
// The inner chain runs on its own goroutine and writes into a buffered
// [timeoutWriter]. When the deadline fires first the inner chain is abandoned:
// its context is cancelled, its later writes are discarded and the client
// receives a 504 TIMEOUT envelope. A non-positive timeout disables the layer.
func (h *Handler) withTimeout(next http.Handler) http.Handler {
	if h.requestTimeout <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		dl := newDeadline()
		r = r.WithContext(withDeadline(ctx, dl))

		tw := newTimeoutWriter(w)
		done := make(chan struct{})
		panicChan := make(chan any, 1)

		go func() {
			defer func() {
				if p := recover(); p != nil {
					panicChan <- p
					return
				}
				close(done)
			}()
			next.ServeHTTP(tw, r)
		}()

		select {
		case p := <-panicChan:
			panic(p)
		case <-done:
		case <-ctx.Done():
			if h.expire(ctx, dl) {
				tw.timeout()
				h.writeTimeout(w, r)
				return
			}
			// a client that went away still gets the chain's own outcome
			select {
			case p := <-panicChan:
				panic(p)
			case <-done:
			}
		}

		// the chain may return after the deadline without claiming it
		if h.expire(ctx, dl) {
			tw.timeout()
			h.writeTimeout(w, r)
			return
		}
		tw.flush()
	})
}

// expire reports whether the deadline layer owns the outcome. Only deadline
// expiry abandons the chain.
func (h *Handler) expire(ctx context.Context, dl *deadline) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded) && dl.expire()
}

func (h *Handler) writeTimeout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.metrics.IncTimeouts()
	logger.FromContext(ctx).Warn().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Dur("timeout", h.requestTimeout).
		Msg("request timed out")

	err := utils.NewResponse[any](ctx).
		WithCode(models.CodeTimeout).
		WithMessage("Request timed out").
		WithMetaKV("timeout_ms", h.requestTimeout.Milliseconds()).
		WithMetaKV("path", r.URL.Path).
		WithMetaKV("method", r.Method).
		WithStatus(w, http.StatusGatewayTimeout)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error writing timeout response")
	}
}
