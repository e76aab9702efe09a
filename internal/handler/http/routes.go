package http

import (
	"net/http"

	"github.com/MKhiriev/go-service-template/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Init builds the route tree and wraps it in the request pipeline.
//
// The pipeline wraps the router from the outside, so chi's pooled routing
// context lives entirely inside the deadline layer's goroutine and is never
// recycled while an abandoned handler still holds it.
func (h *Handler) Init() http.Handler {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{models.HeaderRequestID},
	}))

	router.Group(func(r chi.Router) {
		r.Use(h.withRoutePattern)

		r.Get("/api/v1/health", h.handle(h.health))
		r.Get("/api/v1/health/live", h.handle(h.live))
		r.Get("/api/v1/health/ready", h.handle(h.ready))
		r.Get("/api/v1/health/started", h.handle(h.started))
		r.Get("/api/v1/version", h.handle(h.getServerVersion))

		r.Post("/api/v1/auth/login", h.handle(h.login))
		r.Post("/api/v1/auth/logout", h.handle(h.logout))
		r.Post("/api/v1/auth/refresh", h.handle(h.refresh))
		r.Get("/api/v1/auth/oidc/redirect", h.handle(h.oidcRedirect))
		r.Get("/api/v1/auth/oidc/callback", h.handle(h.oidcCallback))

		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

		// demo routes
		if h.development {
			r.Get("/ok", h.handle(h.demoOK))
			r.Get("/err", h.handle(h.demoError))
			r.Get("/timeout", h.handle(h.demoTimeout))
		}
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.CheckHTTPMethod(router))

	return h.pipeline(router)
}

// pipeline wraps next in the request layers, outermost first.
func (h *Handler) pipeline(next http.Handler) http.Handler {
	return h.withRequestID(
		h.withTimeout(
			h.withRecovery(
				h.withLogging(next),
			),
		),
	)
}
