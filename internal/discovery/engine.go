package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nerrad567/hasp-designer/internal/hasp"
	"github.com/nerrad567/hasp-designer/internal/homeassistant"
)

// StatesProvider supplies the point-in-time entity state snapshot the
// engine clusters. Implemented by homeassistant.Client.
type StatesProvider interface {
	States(ctx context.Context) ([]homeassistant.Entity, error)
}

// NameResolver supplies authoritative device names from an external
// registry. Implemented by homeassistant.Client; optional.
type NameResolver interface {
	DeviceName(ctx context.Context, entityID string) (string, error)
}

// Logger is the logging interface used by the engine.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Engine clusters entity state records into plate devices.
//
// Each ListDevices call works on a fresh snapshot; the engine holds no
// state between calls and is safe for concurrent use.
type Engine struct {
	states StatesProvider
	names  NameResolver
	logger Logger
}

// NewEngine creates a discovery engine over the given state provider.
func NewEngine(states StatesProvider) *Engine {
	return &Engine{
		states: states,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the engine.
func (e *Engine) SetLogger(logger Logger) {
	e.logger = logger
}

// SetNameResolver enables authoritative display-name lookups. Without a
// resolver, names are derived from friendly-name prefixes only.
func (e *Engine) SetNameResolver(names NameResolver) {
	e.names = names
}

// cluster accumulates per-key state while grouping records.
type cluster struct {
	entityIDs     []string
	friendlyNames []string
	model         string
	online        bool
	resolution    *hasp.Resolution
}

// isPlateRecord decides whether a state record belongs to a plate: the
// domain must be actuator/sensor-like and the identifier (or its
// attributes) must carry an openHASP marker or follow the plate naming
// convention. The integration's own bookkeeping entities are excluded.
func isPlateRecord(entity homeassistant.Entity) bool {
	if _, ok := relevantDomains[entity.Domain()]; !ok {
		return false
	}

	object := objectID(entity.EntityID)
	if strings.HasPrefix(object, selfEntityPrefix) {
		return false
	}

	if integration, ok := entity.Attributes["integration"].(string); ok && integration == "openhasp" {
		return true
	}
	return plateConventionRe.MatchString(object)
}

// ListDevices clusters the current state snapshot into plate devices.
//
// The result is deterministic for a given snapshot: clusters are keyed and
// sorted by the derived cluster key, entity IDs within a device are sorted,
// and display-name prefix computation sorts its inputs.
func (e *Engine) ListDevices(ctx context.Context) ([]Device, error) {
	snapshot, err := e.states.States(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	clusters := make(map[string]*cluster)
	for _, entity := range snapshot {
		if !isPlateRecord(entity) {
			continue
		}

		object := objectID(entity.EntityID)
		key := clusterKey(object)
		c, ok := clusters[key]
		if !ok {
			c = &cluster{}
			clusters[key] = c
		}

		c.entityIDs = append(c.entityIDs, entity.EntityID)
		if name, ok := entity.Attributes["friendly_name"].(string); ok && name != "" {
			c.friendlyNames = append(c.friendlyNames, name)
		}
		if model := entity.Model(); model != "" {
			c.model = model
		}
		if strings.Contains(object, "status") && isPositiveState(entity.State) {
			c.online = true
		}
		// Resolution hints live on the status record.
		if strings.HasSuffix(object, "_status") {
			if w, h, ok := entity.ScreenSize(); ok {
				c.resolution = &hasp.Resolution{Width: w, Height: h}
			}
		}
	}

	keys := make([]string, 0, len(clusters))
	for key, c := range clusters {
		// Single-entity clusters are integration noise. This also hides
		// genuine one-entity plates; see the package doc.
		if len(c.entityIDs) <= 1 {
			e.logger.Debug("dropping single-entity cluster", "key", key)
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	devices := make([]Device, 0, len(keys))
	for _, key := range keys {
		c := clusters[key]
		sort.Strings(c.entityIDs)

		device := Device{
			DeviceID:    key,
			DisplayName: e.displayName(ctx, key, c),
			Model:       c.model,
			Online:      c.online,
			Resolution:  c.resolution,
			EntityIDs:   c.entityIDs,
		}
		if device.Resolution == nil && c.model != "" {
			if modelKey, ok := hasp.MatchModel(c.model); ok {
				if res, err := hasp.ResolutionForModel(modelKey); err == nil {
					device.Resolution = &res
				}
			}
		}
		devices = append(devices, device)
	}
	return devices, nil
}

// displayName derives a device's display name: an authoritative registry
// lookup when available, otherwise the longest common prefix of the
// cluster's friendly names with any trailing role word removed.
func (e *Engine) displayName(ctx context.Context, key string, c *cluster) string {
	if e.names != nil {
		name, err := e.names.DeviceName(ctx, c.entityIDs[0])
		if err != nil {
			e.logger.Debug("registry name lookup failed", "key", key, "error", err)
		} else if name != "" {
			return name
		}
	}

	var name string
	switch len(c.friendlyNames) {
	case 0:
		return key
	case 1:
		// A prefix of one string is ill-defined for this purpose; strip
		// the role word from the single name directly.
		name = stripRoleWord(c.friendlyNames[0])
	default:
		name = stripRoleWord(commonPrefix(c.friendlyNames))
	}
	if name == "" {
		return key
	}
	return name
}
