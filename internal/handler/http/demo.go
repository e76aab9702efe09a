package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
)

// demoSlowFor is how long the /timeout demo route works before answering.
// It is meant to outlive any sensible request timeout.
const demoSlowFor = 10 * time.Second

func (h *Handler) demoOK(w http.ResponseWriter, r *http.Request) error {
	return utils.NewResponse[map[string]string](r.Context()).
		Populate(models.CodeOK, "All good", map[string]string{"hello": "world"}, nil, 0).
		WithStatus(w, http.StatusCreated)
}

func (h *Handler) demoError(w http.ResponseWriter, r *http.Request) error {
	return models.NewProblemDetails(http.StatusBadRequest,
		validationProblemType,
		validationProblemTitle,
		"The 'name' field is required.",
		r.URL.Path,
	).Write(w)
}

// demoTimeout blocks until the request is cancelled, which the deadline layer
// does on expiry.
func (h *Handler) demoTimeout(w http.ResponseWriter, r *http.Request) error {
	timer := time.NewTimer(demoSlowFor)
	defer timer.Stop()

	select {
	case <-r.Context().Done():
		logger.FromRequest(r).Debug().Err(r.Context().Err()).Msg("slow demo route abandoned")
		return nil
	case <-timer.C:
	}

	return utils.NewResponse[any](r.Context()).
		WithCode(models.CodeOK).
		WithMessage("Finished").
		WithStatus(w, http.StatusOK)
}
