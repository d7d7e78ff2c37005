package api

import (
	"encoding/json"
	"net/http"

	"github.com/nerrad567/hasp-designer/internal/hasp"
	"github.com/nerrad567/hasp-designer/internal/validation"
)

// validateRequest is the request body for a full validation run.
type validateRequest struct {
	Objects  []hasp.Object       `json:"objects"`
	DeviceID string              `json:"device_id"`
	Options  *validation.Options `json:"options"`
}

// handleValidate runs the full validation pipeline over a layout.
//
// The response always carries HTTP 200; validation failures are reported
// in the result body, not the status code.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	opts := validation.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}

	result := s.validator.Validate(r.Context(), req.Objects, req.DeviceID, opts)
	writeJSON(w, http.StatusOK, result)
}

// handleValidateEntity checks a single entity reference against Home Assistant.
func (s *Server) handleValidateEntity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EntityID string `json:"entity_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.EntityID == "" {
		writeBadRequest(w, "entity_id is required")
		return
	}

	exists, err := s.entities.Exists(r.Context(), req.EntityID)
	if err != nil {
		s.logger.Warn("entity check failed", "entity_id", req.EntityID, "error", err)
		writeUpstreamError(w, "failed to check entity against Home Assistant")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entity_id": req.EntityID,
		"exists":    exists,
	})
}

// handleValidateCoordinates checks a single object against a screen size,
// for live feedback while the user drags objects in the editor.
func (s *Server) handleValidateCoordinates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Object hasp.Object `json:"object"`
		Width  int         `json:"width"`
		Height int         `json:"height"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		writeBadRequest(w, "width and height must be positive")
		return
	}

	boundsErr := validation.CheckBounds(req.Object, req.Width, req.Height)
	writeJSON(w, http.StatusOK, map[string]any{
		"valid": boundsErr == nil,
		"error": boundsErr,
	})
}
