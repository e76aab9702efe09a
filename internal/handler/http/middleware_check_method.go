// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-service-template/internal/logger"
	"github.com/MKhiriev/go-service-template/internal/utils"
	"github.com/MKhiriev/go-service-template/models"
	"github.com/go-chi/chi/v5"
)

// notFound answers every request no route matches with a 404 NOT_FOUND
// envelope describing the request. It is registered as the router's
// NotFound handler.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	err := utils.NewResponse[any](r.Context()).
		WithCode(models.CodeNotFound).
		WithMessage("No route matches the requested path").
		WithMetaKV("path", r.URL.Path).
		WithMetaKV("method", r.Method).
		WithMetaKV("host", r.Host).
		WithStatus(w, http.StatusNotFound)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing not found response")
	}
}

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi's default behaviour is to respond with HTTP 405 Method Not Allowed
// whenever a request path matches a registered route but the HTTP method
// is not handled. This function overrides that behaviour: if the requested
// method is not registered for the matched route, it responds with the
// Not-Found envelope instead, hiding the existence of the route from callers
// that use an unsupported method.
//
// If the requested method IS registered for the matched route, the request
// is forwarded to the router's normal ServeHTTP pipeline so that the
// appropriate handler executes as usual.
//
// The lookup compares each route's pattern against the raw request path
// ([http.Request.URL.Path]). Only exact pattern matches are considered.
func (h *Handler) CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		// Search for a route whose pattern exactly matches the requested path.
		var foundRoute chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			h.notFound(w, r)
			return
		}

		router.ServeHTTP(w, r)
	}
}
