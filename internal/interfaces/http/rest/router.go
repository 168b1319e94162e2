package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Routes builds the HTTP router with all middleware and endpoints.
func (a *API) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(a.logger))
	router.Use(a.metrics.Middleware)
	router.Use(identity(a.identityHeader))

	router.Get("/healthz", a.handleHealthz)
	router.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/worlds", func(r chi.Router) {
			r.Post("/", a.handleCreateWorld)
			r.Get("/", a.handleListWorlds)

			r.Route("/{worldID}", func(r chi.Router) {
				r.Get("/", a.handleGetWorld)
				r.Get("/stats", a.handleWorldStats)

				r.Route("/content", func(r chi.Router) {
					r.Post("/", a.handleCreateContent)
					r.Get("/", a.handleListContent)

					r.Route("/{kind}/{contentID}", func(r chi.Router) {
						r.Get("/", a.handleGetContent)
						r.Get("/tags", a.handleContentTags)
						r.Post("/tags", a.handleAddTag)
						r.Get("/links", a.handleNeighborhood)
						r.Get("/attribution", a.handleAttribution)
					})
				})

				r.Route("/tags", func(r chi.Router) {
					r.Get("/", a.handleWorldTags)
					r.Get("/suggest", a.handleSuggestTags)
					r.Get("/{tagName}", a.handleGetTag)
				})

				r.Post("/links", a.handleCreateLink)
			})
		})
	})

	return router
}
