package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// handleListDevices returns openHASP plates discovered from Home Assistant.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.devices.ListDevices(r.Context())
	if err != nil {
		s.logger.Warn("device discovery failed", "error", err)
		writeUpstreamError(w, "failed to discover devices from Home Assistant")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"devices": devices,
		"count":   len(devices),
	})
}

// resolutionEntry pairs a catalogue key with its screen resolution.
type resolutionEntry struct {
	Key string `json:"key"`
	hasp.Resolution
}

// handleListResolutions returns the known plate resolution catalogue.
func (s *Server) handleListResolutions(w http.ResponseWriter, _ *http.Request) {
	all := hasp.AllResolutions()
	entries := make([]resolutionEntry, 0, len(all))
	for _, item := range all {
		entries = append(entries, resolutionEntry{Key: item.Key, Resolution: item.Resolution})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"resolutions": entries,
		"count":       len(entries),
	})
}

// handleGetResolution returns the resolution for a single plate model.
func (s *Server) handleGetResolution(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")

	res, err := hasp.ResolutionForModel(model)
	if err != nil {
		if errors.Is(err, hasp.ErrUnknownModel) {
			writeNotFound(w, "unknown plate model: "+model)
			return
		}
		writeInternalError(w, "failed to resolve plate model")
		return
	}

	writeJSON(w, http.StatusOK, res)
}
