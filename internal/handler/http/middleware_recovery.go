package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
)

// withRecovery converts a panic anywhere below it into a 500 INTERNAL_ERROR
// envelope and keeps the server serving. [http.ErrAbortHandler] is re-raised
// so net/http can abort the connection as intended.
func (h *Handler) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buffered, resettable := w.(resettableWriter)

		var tracked *responseWriter
		if !resettable {
			tracked = &responseWriter{ResponseWriter: w}
			w = tracked
		}

		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			panicMessage := fmt.Sprint(p)

			logger.FromRequest(r).Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("panic", panicMessage).
				Bytes("stack", debug.Stack()).
				Msg("request panicked")
			h.metrics.IncPanics()

			if resettable {
				if !buffered.reset() {
					return
				}
			} else if tracked.wroteHeader {
				// the client already has a status line
				return
			}

			resp := utils.NewResponse[any](r.Context()).
				WithCode(models.CodeInternalError).
				WithMessage("internal web error").
				WithMetaKV("path", r.URL.Path).
				WithMetaKV("method", r.Method)
			if h.development {
				resp = resp.WithMetaKV("panic", panicMessage)
			}
			_ = resp.WithStatus(w, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
