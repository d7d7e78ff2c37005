package homeassistant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Entity is one state record from GET /api/states.
//
// Attributes stay loosely typed because discovery reads arbitrary hints
// (friendly_name, model, resolution) from them; typed accessors below cover
// the fields this system actually consumes.
type Entity struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state"`
	Attributes map[string]any `json:"attributes"`
}

// Domain returns the entity's domain ("light" for "light.kitchen").
func (e Entity) Domain() string {
	if i := strings.IndexByte(e.EntityID, '.'); i > 0 {
		return e.EntityID[:i]
	}
	return ""
}

// FriendlyName returns the friendly_name attribute, or the entity ID when
// no friendly name is set.
func (e Entity) FriendlyName() string {
	if name, ok := e.Attributes["friendly_name"].(string); ok && name != "" {
		return name
	}
	return e.EntityID
}

// Model returns the model attribute if present.
func (e Entity) Model() string {
	if model, ok := e.Attributes["model"].(string); ok {
		return model
	}
	return ""
}

// intAttribute reads a numeric attribute as int. JSON numbers decode as
// float64; some integrations report them as strings.
func (e Entity) intAttribute(key string) (int, bool) {
	switch v := e.Attributes[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// ScreenSize returns the width/height attributes if both are present.
func (e Entity) ScreenSize() (width, height int, ok bool) {
	w, wok := e.intAttribute("width")
	h, hok := e.intAttribute("height")
	if wok && hok && w > 0 && h > 0 {
		return w, h, true
	}
	return 0, 0, false
}

// States fetches a point-in-time snapshot of all entity states.
func (c *Client) States(ctx context.Context) ([]Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GetRequestTimeout())
	defer cancel()

	var entities []Entity
	if err := c.get(ctx, "/api/states", &entities); err != nil {
		return nil, fmt.Errorf("fetching states: %w", err)
	}
	return entities, nil
}

// Exists checks whether an entity exists.
//
// Returns (false, nil) only when Home Assistant confirmed the entity is
// missing. A non-nil error means the check could not be completed and the
// caller must not treat the entity as missing.
func (c *Client) Exists(ctx context.Context, entityID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GetEntityTimeout())
	defer cancel()

	err := c.get(ctx, "/api/states/"+url.PathEscape(entityID), nil)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrEntityNotFound):
		return false, nil
	default:
		return false, err
	}
}

// EntityState fetches the current state of a single entity.
// Returns ErrEntityNotFound when the entity does not exist.
func (c *Client) EntityState(ctx context.Context, entityID string) (Entity, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GetEntityTimeout())
	defer cancel()

	var entity Entity
	if err := c.get(ctx, "/api/states/"+url.PathEscape(entityID), &entity); err != nil {
		return Entity{}, fmt.Errorf("fetching state for %s: %w", entityID, err)
	}
	return entity, nil
}

// EnhancedEntity is an entity enriched with designer-facing metadata.
type EnhancedEntity struct {
	EntityID     string         `json:"entity_id"`
	State        string         `json:"state"`
	FriendlyName string         `json:"friendly_name"`
	Icon         string         `json:"icon"`
	Domain       string         `json:"domain"`
	Attributes   map[string]any `json:"attributes"`
}

// defaultIcons maps entity domains to Material Design icon names used when
// an entity does not declare its own icon.
var defaultIcons = map[string]string{
	"light":         "mdi:lightbulb",
	"switch":        "mdi:light-switch",
	"sensor":        "mdi:gauge",
	"binary_sensor": "mdi:checkbox-marked-circle",
	"cover":         "mdi:window-shutter",
	"climate":       "mdi:thermostat",
	"fan":           "mdi:fan",
	"lock":          "mdi:lock",
	"media_player":  "mdi:speaker",
}

// EnhancedEntities returns all entities enriched with metadata, optionally
// filtered by domain and a case-insensitive search over entity ID and
// friendly name.
func (c *Client) EnhancedEntities(ctx context.Context, domain, search string) ([]EnhancedEntity, error) {
	entities, err := c.States(ctx)
	if err != nil {
		return nil, err
	}

	searchLower := strings.ToLower(search)
	out := make([]EnhancedEntity, 0, len(entities))
	for _, e := range entities {
		if domain != "" && e.Domain() != domain {
			continue
		}
		if searchLower != "" &&
			!strings.Contains(strings.ToLower(e.EntityID), searchLower) &&
			!strings.Contains(strings.ToLower(e.FriendlyName()), searchLower) {
			continue
		}

		icon, _ := e.Attributes["icon"].(string)
		if icon == "" {
			icon = defaultIcons[e.Domain()]
			if icon == "" {
				icon = "mdi:home-assistant"
			}
		}

		out = append(out, EnhancedEntity{
			EntityID:     e.EntityID,
			State:        e.State,
			FriendlyName: e.FriendlyName(),
			Icon:         icon,
			Domain:       e.Domain(),
			Attributes:   e.Attributes,
		})
	}
	return out, nil
}
