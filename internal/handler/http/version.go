package http

import (
	"net/http"

	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) error {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	return utils.NewResponse[map[string]string](r.Context()).
		Populate(models.CodeOK, "OK", map[string]string{"version": serverVersion}, nil, 0).
		WithStatus(w, http.StatusOK)
}
