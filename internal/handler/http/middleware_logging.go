package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// withLogging emits exactly one access record per request through the
// handler's base logger; the record names the request id itself.
//
// The record carries the status the client observes: the handler's status on
// a normal return, 500 when the chain panics (the fault barrier above answers
// with 500, unless an unbuffered response already sent its status) and 504
// when the deadline layer wins, in which case it is emitted from the expiry
// hook.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		record := &accessRecord{}
		r = r.WithContext(withAccessRecord(r.Context(), record))

		entry := newAccessEntry(r)
		var once sync.Once
		emit := func(status int) {
			once.Do(func() {
				elapsed := time.Since(start)
				route := record.routePattern()
				h.metrics.ObserveRequest(entry.method, route, status, elapsed)
				entry.log(h.logger, status, route, elapsed)
			})
		}

		dl, hasDeadline := deadlineFromContext(r.Context())
		claim := func() bool {
			return !hasDeadline || dl.complete(r.Context())
		}
		if hasDeadline {
			dl.onExpire(func() { emit(http.StatusGatewayTimeout) })
		}

		lw := &responseWriter{
			ResponseWriter: w,
		}

		_, buffered := w.(resettableWriter)

		returned := false
		defer func() {
			if returned || !claim() {
				return
			}
			// an unbuffered response that already sent its status line keeps it
			if !buffered && lw.wroteHeader {
				emit(lw.statusCode())
				return
			}
			emit(http.StatusInternalServerError)
		}()

		next.ServeHTTP(lw, r)
		returned = true

		if claim() {
			emit(lw.statusCode())
		}
	})
}

// withRoutePattern records the matched route pattern for the access logger.
// It must be installed on the routed group so chi has resolved the pattern.
func (h *Handler) withRoutePattern(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if record, ok := accessRecordFromContext(r.Context()); ok {
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				record.setRoute(rctx.RoutePattern())
			}
		}
		next.ServeHTTP(w, r)
	})
}

// accessEntry is the request-side snapshot taken before dispatch, so the
// record can be emitted from any goroutine without touching the request.
type accessEntry struct {
	requestID string
	subject   string
	method    string
	path      string
	query     string
	ip        string
	userAgent string
	host      string
}

func newAccessEntry(r *http.Request) accessEntry {
	entry := accessEntry{
		method:    r.Method,
		path:      r.URL.Path,
		query:     r.URL.RawQuery,
		ip:        utils.ClientIP(r),
		userAgent: r.UserAgent(),
		host:      r.Host,
		subject:   r.Header.Get(models.HeaderSubject),
		requestID: r.Header.Get(models.HeaderRequestID),
	}
	if rc, ok := utils.GetRequestContext(r.Context()); ok {
		entry.requestID = rc.RequestID
		entry.subject = rc.Subject
		entry.ip = rc.ClientIP
		entry.userAgent = rc.UserAgent
	}
	return entry
}

func (e accessEntry) log(log *logger.Logger, status int, route string, elapsed time.Duration) {
	var event *zerolog.Event
	if status >= 500 && status <= 599 {
		event = log.Error()
	} else {
		event = log.Info()
	}

	event.
		Str("request_id", e.requestID).
		Str("subject", e.subject).
		Int("status", status).
		Str("method", e.method).
		Str("route", route).
		Str("path", e.path).
		Str("query", e.query).
		Str("ip", e.ip).
		Str("user_agent", e.userAgent).
		Str("host", e.host).
		Int64("latency_ms", elapsed.Milliseconds()).
		Msg(e.path)
}
