package http

import (
	"net/http"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) error {
	return writeReport(w, r, h.services.HealthService.Health(r.Context()), http.StatusOK)
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) error {
	return writeReport(w, r, h.services.HealthService.Live(r.Context()), http.StatusOK)
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) error {
	report, err := h.services.HealthService.Ready(r.Context())
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("readiness check failed")
		status, _ := statusFromError(err)
		return writeReport(w, r, report, status)
	}
	return writeReport(w, r, report, http.StatusOK)
}

func (h *Handler) started(w http.ResponseWriter, r *http.Request) error {
	report, err := h.services.HealthService.Started(r.Context())
	if err != nil {
		status, _ := statusFromError(err)
		return writeReport(w, r, report, status)
	}
	return writeReport(w, r, report, http.StatusOK)
}

// writeReport renders a health report as an envelope. The report's own code
// and message win over the transport status.
func writeReport(w http.ResponseWriter, r *http.Request, report models.HealthReport, status int) error {
	var meta any
	if len(report.Meta) > 0 {
		meta = report.Meta
	}

	return utils.NewResponse[any](r.Context()).
		Populate(report.Code, report.Message, report.Data, meta, report.Count).
		WithStatus(w, status)
}
