package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Home Assistant entity browsing
		r.Get("/entities", s.handleListEntities)

		// Plate discovery
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)
			r.Get("/resolutions", s.handleListResolutions)
			r.Get("/resolutions/{model}", s.handleGetResolution)
		})

		// Validation pipeline
		r.Route("/validate", func(r chi.Router) {
			r.Post("/", s.handleValidate)
			r.Post("/entity", s.handleValidateEntity)
			r.Post("/coordinates", s.handleValidateCoordinates)
		})

		// Layout storage
		r.Route("/layouts", func(r chi.Router) {
			r.Get("/", s.handleListLayouts)
			r.Post("/", s.handleCreateLayout)

			// Registered before /{id} so "quick" is not treated as a layout ID.
			r.Get("/quick", s.handleLoadQuick)
			r.Post("/quick", s.handleSaveQuick)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetLayout)
				r.Put("/", s.handleUpdateLayout)
				r.Delete("/", s.handleDeleteLayout)
			})
		})

		// Existing plate config import
		r.Route("/import", func(r chi.Router) {
			r.Get("/available", s.handleListImports)
			r.Post("/{filename}", s.handleImport)
		})

		// Output generation
		r.Post("/yaml", s.handleGenerateYAML)
		r.Post("/publish", s.handlePublish)
		r.Post("/reload", s.handleReload)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
