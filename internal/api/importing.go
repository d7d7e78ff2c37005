package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/hasp-designer/internal/importer"
)

// handleListImports returns the plate config files available for import.
func (s *Server) handleListImports(w http.ResponseWriter, _ *http.Request) {
	if s.importer == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "import directory not configured")
		return
	}

	configs, err := s.importer.ListConfigs()
	if err != nil {
		s.logger.Warn("import listing failed", "error", err)
		writeInternalError(w, "failed to list importable configs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"configs": configs,
		"count":   len(configs),
	})
}

// handleImport parses an existing plate config file into a layout.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if s.importer == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "import directory not configured")
		return
	}

	filename := chi.URLParam(r, "filename")

	lay, err := s.importer.Import(filename)
	if err != nil {
		if errors.Is(err, importer.ErrConfigNotFound) {
			writeNotFound(w, "config file not found: "+filename)
			return
		}
		s.logger.Warn("import failed", "filename", filename, "error", err)
		writeInternalError(w, "failed to import config")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"layout": lay,
		"stats":  importer.CalculateStats(lay.Objects()),
	})
}
