package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/service"
	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
)

// errorResponse is the transport rendering of a domain error.
type errorResponse struct {
	status int
	code   string
}

var errorStatusMap = map[error]errorResponse{
	service.ErrValidation:                {http.StatusBadRequest, models.CodeValidation},
	service.ErrUnauthorized:              {http.StatusUnauthorized, models.CodeUnauthorized},
	service.ErrForbidden:                 {http.StatusForbidden, models.CodeForbidden},
	service.ErrNotFound:                  {http.StatusNotFound, models.CodeNotFound},
	service.ErrTimeout:                   {http.StatusGatewayTimeout, models.CodeTimeout},
	service.ErrInternal:                  {http.StatusInternalServerError, models.CodeInternalError},
	service.ErrAuthenticationUnavailable: {http.StatusNotImplemented, models.CodeNotImplemented},
	service.ErrDependencyUnavailable:     {http.StatusServiceUnavailable, models.CodeUnavailable},
	service.ErrNotStarted:                {http.StatusServiceUnavailable, models.CodeUnavailable},

	ErrInvalidRequestBody:    {http.StatusBadRequest, models.CodeValidation},
	ErrMissingQueryParameter: {http.StatusBadRequest, models.CodeValidation},
}

func statusFromError(err error) (int, string) {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp.status, resp.code
		}
	}
	return http.StatusInternalServerError, models.CodeInternalError
}

// handlerFunc is a route handler that may hand a domain error back to the
// adapter instead of rendering it itself.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to [http.HandlerFunc]. A returned error is rendered as an
// envelope unless fn already produced a response, in which case it is only
// logged.
func (h *Handler) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}

		err := fn(rw, r)
		if err == nil {
			return
		}

		if rw.wroteHeader {
			logger.FromRequest(r).Err(err).
				Int("status", rw.status).
				Msg("handler failed after the response was written")
			return
		}
		h.writeError(rw, r, err)
	}
}

// writeError renders err as an envelope. Client errors echo the error text;
// server errors answer a generic message and echo the cause only in
// development.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFromError(err)

	resp := utils.NewResponse[any](r.Context()).
		WithCode(code)

	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
		resp = resp.WithMessage(http.StatusText(status))
		if h.development {
			resp = resp.WithMetaKV("error", err.Error())
		}
	} else {
		logger.FromRequest(r).Debug().Err(err).Int("status", status).Msg("request rejected")
		resp = resp.WithMessage(err.Error())
	}

	if err = resp.WithStatus(w, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing error response")
	}
}
