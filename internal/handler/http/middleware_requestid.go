package http

import (
	"net/http"

	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// withRequestID is the outermost pipeline layer. It adopts a non-empty
// X-Request-ID from the client or generates a v4 uuid, then publishes the
// request identity, a request-scoped logger and the response header.
func (h *Handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var requestID string
		if requestIDFromHeader := r.Header.Get(models.HeaderRequestID); requestIDFromHeader != "" {
			requestID = requestIDFromHeader
		} else {
			requestID = uuid.NewString()
			r.Header.Set(models.HeaderRequestID, requestID)
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", requestID)
		})

		ctx = utils.WithRequestContext(l.WithContext(ctx), models.RequestContext{
			RequestID: requestID,
			Subject:   r.Header.Get(models.HeaderSubject),
			ClientIP:  utils.ClientIP(r),
			UserAgent: r.UserAgent(),
		})

		w.Header().Set(models.HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
