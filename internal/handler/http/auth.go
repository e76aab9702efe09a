package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
	"github.com/google/uuid"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return nil
	}

	session, err := h.services.AuthenticationService.Login(ctx, req)
	if err != nil {
		log.Err(err).Str("login", req.Login).Msg("login failed")
		return err
	}

	return writeSession(w, r, session, "Logged in")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LogoutRequest
	if !decodeAndValidate(w, r, &req) {
		return nil
	}

	if err := h.services.AuthenticationService.Logout(ctx, req); err != nil {
		log.Err(err).Msg("logout failed")
		return err
	}

	return utils.NewResponse[any](ctx).
		WithCode(models.CodeOK).
		WithMessage("Logged out").
		WithStatus(w, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if !decodeAndValidate(w, r, &req) {
		return nil
	}

	session, err := h.services.AuthenticationService.Refresh(ctx, req)
	if err != nil {
		log.Err(err).Msg("session refresh failed")
		return err
	}

	return writeSession(w, r, session, "Session refreshed")
}

// oidcRedirect sends the caller to the identity provider. A missing state
// query parameter is replaced by a random one.
func (h *Handler) oidcRedirect(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	state := r.URL.Query().Get("state")
	if state == "" {
		state = uuid.NewString()
	}

	location, err := h.services.AuthenticationService.OIDCRedirect(ctx, state)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("building oidc redirect failed")
		return err
	}

	http.Redirect(w, r, location, http.StatusFound)
	return nil
}

func (h *Handler) oidcCallback(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	query := r.URL.Query()
	callback := models.OIDCCallback{
		Code:  query.Get("code"),
		State: query.Get("state"),
	}
	if err := validate.Struct(callback); err != nil {
		writeValidationProblem(w, r, validationDetail(err))
		return nil
	}

	session, err := h.services.AuthenticationService.OIDCCallback(ctx, callback)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("oidc callback failed")
		return err
	}

	return writeSession(w, r, session, "Logged in")
}

// decodeAndValidate reads a JSON body into dst. On failure it answers with a
// validation problem and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		writeValidationProblem(w, r, fmt.Sprintf("%s: %s", ErrInvalidRequestBody, err))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeValidationProblem(w, r, validationDetail(err))
		return false
	}
	return true
}

func writeSession(w http.ResponseWriter, r *http.Request, session models.Session, message string) error {
	return utils.NewResponse[models.Session](r.Context()).
		Populate(models.CodeOK, message, session, nil, 0).
		WithStatus(w, http.StatusOK)
}
