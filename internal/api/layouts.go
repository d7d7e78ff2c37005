package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/hasp-designer/internal/hasp"
	"github.com/nerrad567/hasp-designer/internal/layout"
)

// handleListLayouts returns all saved layouts, most recently updated first.
func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	layouts, err := s.layouts.List(r.Context())
	if err != nil {
		s.logger.Warn("layout listing failed", "error", err)
		writeInternalError(w, "failed to list layouts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"layouts": layouts,
		"count":   len(layouts),
	})
}

// handleCreateLayout saves a new named layout.
func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var lay layout.Layout
	if err := json.NewDecoder(r.Body).Decode(&lay); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if lay.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	// Server assigns identity and timestamps.
	lay.ID = ""
	if err := s.layouts.Save(r.Context(), &lay); err != nil {
		s.logger.Warn("layout save failed", "name", lay.Name, "error", err)
		writeInternalError(w, "failed to save layout")
		return
	}

	writeJSON(w, http.StatusCreated, lay)
}

// handleGetLayout returns a single layout by ID.
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lay, err := s.layouts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, layout.ErrNotFound) {
			writeNotFound(w, "layout not found: "+id)
			return
		}
		writeInternalError(w, "failed to load layout")
		return
	}

	writeJSON(w, http.StatusOK, lay)
}

// handleUpdateLayout replaces the mutable fields of an existing layout.
func (s *Server) handleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := s.layouts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, layout.ErrNotFound) {
			writeNotFound(w, "layout not found: "+id)
			return
		}
		writeInternalError(w, "failed to load layout")
		return
	}

	var req layout.Layout
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	existing.Name = req.Name
	existing.DeviceID = req.DeviceID
	existing.Description = req.Description
	existing.Pages = req.Pages

	if err := s.layouts.Save(r.Context(), existing); err != nil {
		s.logger.Warn("layout update failed", "id", id, "error", err)
		writeInternalError(w, "failed to save layout")
		return
	}

	writeJSON(w, http.StatusOK, existing)
}

// handleDeleteLayout removes a layout by ID.
func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.layouts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, layout.ErrNotFound) {
			writeNotFound(w, "layout not found: "+id)
			return
		}
		writeInternalError(w, "failed to delete layout")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// handleLoadQuick returns the autosaved working layout.
func (s *Server) handleLoadQuick(w http.ResponseWriter, r *http.Request) {
	objects, err := s.layouts.LoadQuick(r.Context())
	if err != nil {
		s.logger.Warn("quick layout load failed", "error", err)
		writeInternalError(w, "failed to load quick layout")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"objects": objects,
		"count":   len(objects),
	})
}

// handleSaveQuick overwrites the autosaved working layout.
func (s *Server) handleSaveQuick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Objects []hasp.Object `json:"objects"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := s.layouts.SaveQuick(r.Context(), req.Objects); err != nil {
		s.logger.Warn("quick layout save failed", "error", err)
		writeInternalError(w, "failed to save quick layout")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"saved": true,
		"count": len(req.Objects),
	})
}
