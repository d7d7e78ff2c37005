package homeassistant

import (
	"context"
	"fmt"
	"strings"
)

// RegistryEntry is one device from GET /api/config/device_registry/list.
type RegistryEntry struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	NameByUser   *string `json:"name_by_user"`
	Model        string  `json:"model"`
	Manufacturer string  `json:"manufacturer"`
	Identifiers  [][]any `json:"identifiers"`
}

// DisplayName returns the user-assigned name when set, falling back to the
// integration-assigned name.
func (r RegistryEntry) DisplayName() string {
	if r.NameByUser != nil && *r.NameByUser != "" {
		return *r.NameByUser
	}
	return r.Name
}

// DeviceRegistryList fetches the Home Assistant device registry. Not every
// installation exposes this endpoint over REST, so callers treat failures as
// best-effort.
func (c *Client) DeviceRegistryList(ctx context.Context) ([]RegistryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GetRegistryTimeout())
	defer cancel()

	var entries []RegistryEntry
	if err := c.get(ctx, "/api/config/device_registry/list", &entries); err != nil {
		return nil, fmt.Errorf("fetching device registry: %w", err)
	}
	return entries, nil
}

// DeviceName looks up an authoritative device name for an entity identifier
// by scanning registry identifiers for the entity's object part. Returns
// ("", nil) when no registry entry matches; a non-nil error means the
// registry could not be consulted at all.
func (c *Client) DeviceName(ctx context.Context, entityID string) (string, error) {
	entries, err := c.DeviceRegistryList(ctx)
	if err != nil {
		return "", err
	}

	object := entityID
	if i := strings.IndexByte(entityID, '.'); i >= 0 {
		object = entityID[i+1:]
	}

	for _, entry := range entries {
		for _, ident := range entry.Identifiers {
			for _, part := range ident {
				s, ok := part.(string)
				if !ok {
					continue
				}
				if s != "" && strings.Contains(object, s) {
					return entry.DisplayName(), nil
				}
			}
		}
	}
	return "", nil
}
