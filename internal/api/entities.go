package api

import "net/http"

// handleListEntities returns Home Assistant entities enriched with display
// metadata, optionally filtered by domain and search term.
//
// GET /api/v1/entities?type=light&search=lounge
func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("type")
	search := r.URL.Query().Get("search")

	entities, err := s.entities.EnhancedEntities(r.Context(), domain, search)
	if err != nil {
		s.logger.Warn("entity listing failed", "error", err)
		writeUpstreamError(w, "failed to fetch entities from Home Assistant")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entities": entities,
		"count":    len(entities),
	})
}
