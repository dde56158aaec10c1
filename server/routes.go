package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GetPageSpeed/recheck/redos"
)

// NewRouter builds the chi.Router serving the analyzer API: analyzer is
// the shared default-config Analyzer used when a request carries no
// override, and base is the Config it was built from.
func NewRouter(analyzer *redos.Analyzer, base redos.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", Endpoint(handleHealthz))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", Endpoint(handleAnalyze(analyzer, base)))
	})

	return r
}
