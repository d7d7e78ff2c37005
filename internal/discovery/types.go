package discovery

import "github.com/nerrad567/hasp-designer/internal/hasp"

// Device is one reconstructed plate device.
//
// EntityIDs is always non-empty and sorted; clusters with at most one
// associated entity never surface to callers.
type Device struct {
	DeviceID    string           `json:"device_id"`
	DisplayName string           `json:"display_name"`
	Model       string           `json:"model,omitempty"`
	Online      bool             `json:"online"`
	Resolution  *hasp.Resolution `json:"resolution,omitempty"`
	EntityIDs   []string         `json:"entity_ids"`
}
