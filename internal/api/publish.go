package api

import (
	"encoding/json"
	"net/http"

	"github.com/nerrad567/hasp-designer/internal/hasp"
	"github.com/nerrad567/hasp-designer/internal/validation"
	"github.com/nerrad567/hasp-designer/internal/yamlgen"
)

// outputRequest is the shared request body for YAML generation and publishing.
type outputRequest struct {
	Objects  []hasp.Object `json:"objects"`
	DeviceID string        `json:"device_id"`
}

// handleGenerateYAML renders the Home Assistant openhasp YAML for a layout.
func (s *Server) handleGenerateYAML(w http.ResponseWriter, r *http.Request) {
	var req outputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.DeviceID == "" {
		writeBadRequest(w, "device_id is required")
		return
	}

	out, err := yamlgen.Generate(req.Objects, req.DeviceID)
	if err != nil {
		s.logger.Warn("yaml generation failed", "device_id", req.DeviceID, "error", err)
		writeInternalError(w, "failed to generate YAML")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": req.DeviceID,
		"yaml":      out,
	})
}

// handlePublish validates a layout and, if it passes, writes its pages file
// and pushes it to the plate.
//
// Validation failures return 422 with the full validation result so the
// editor can surface every error at once.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req outputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	if req.DeviceID == "" {
		writeBadRequest(w, "device_id is required")
		return
	}
	if s.deployer == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "publishing not configured")
		return
	}

	result := s.validator.Validate(r.Context(), req.Objects, req.DeviceID, validation.DefaultOptions())
	if !result.Passed {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "layout failed validation",
			"validation": result,
		})
		return
	}

	deployment, err := s.deployer.Deploy(r.Context(), req.DeviceID, req.Objects)
	if err != nil {
		s.logger.Warn("publish failed", "device_id", req.DeviceID, "error", err)
		writeInternalError(w, "failed to publish layout")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deployment": deployment,
		"validation": result,
	})
}

// handleReload asks Home Assistant to reload pages on all plates.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.entities.ReloadPages(r.Context()); err != nil {
		s.logger.Warn("reload failed", "error", err)
		writeUpstreamError(w, "failed to reload pages via Home Assistant")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reloaded": true})
}
