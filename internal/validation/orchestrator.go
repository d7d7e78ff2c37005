package validation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/hasp-designer/internal/discovery"
	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// defaultEntityCheckLimit bounds the entity existence fan-out.
const defaultEntityCheckLimit = 8

// Logger is the logging interface used by the orchestrator.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Orchestrator sequences the validation stages over one layout.
//
// Safe for concurrent use; each Validate call works on its own snapshot
// and aggregates into its own result.
type Orchestrator struct {
	registry    DeviceRegistry
	entities    EntityExistenceChecker
	entityLimit int
	logger      Logger
}

// NewOrchestrator creates an orchestrator over the given capabilities.
func NewOrchestrator(registry DeviceRegistry, entities EntityExistenceChecker) *Orchestrator {
	return &Orchestrator{
		registry:    registry,
		entities:    entities,
		entityLimit: defaultEntityCheckLimit,
		logger:      noopLogger{},
	}
}

// SetLogger sets the logger for the orchestrator.
func (o *Orchestrator) SetLogger(logger Logger) {
	o.logger = logger
}

// SetEntityCheckLimit bounds the concurrent entity existence checks.
// Values below one fall back to serial checking.
func (o *Orchestrator) SetEntityCheckLimit(limit int) {
	o.entityLimit = limit
}

// Validate runs every enabled stage against the layout and target device.
//
// A failed device check aborts the run: the result carries only the
// device error and no other stage executes. Otherwise stage outputs merge
// in a fixed order (entity, coordinate, object ID, overlap) regardless of
// completion order, so results are deterministic for a given layout.
func (o *Orchestrator) Validate(ctx context.Context, objects []hasp.Object, deviceID string, opts Options) Result {
	var target *discovery.Device
	var lookupErr error
	if opts.CheckDevice || opts.CheckBounds {
		var devices []discovery.Device
		devices, lookupErr = o.registry.ListDevices(ctx)
		if lookupErr == nil {
			target = resolveDevice(devices, deviceID)
		}
	}

	if opts.CheckDevice {
		if devErr := checkDevice(target, deviceID, lookupErr); devErr != nil {
			return Result{
				Passed:   false,
				Errors:   []Error{*devErr},
				Warnings: []Warning{},
			}
		}
	} else if lookupErr != nil {
		o.logger.Debug("device lookup failed, bounds check unavailable",
			"device_id", deviceID, "error", lookupErr)
	}

	var (
		entityErrors   []Error
		entityWarnings []Warning
	)
	g, gctx := errgroup.WithContext(ctx)
	if opts.CheckEntities {
		g.Go(func() error {
			entityErrors, entityWarnings = checkEntities(gctx, objects, o.entities, o.entityLimit)
			return nil
		})
	}

	var coordErrors []Error
	if opts.CheckBounds {
		if target != nil && target.Resolution != nil {
			coordErrors = checkCoordinates(objects, target.Resolution.Width, target.Resolution.Height)
		} else {
			// Resolution is best-effort metadata; no resolution means no
			// bounds check, not a failure.
			o.logger.Debug("no resolution for device, skipping bounds check",
				"device_id", deviceID)
		}
	}

	var idErrors []Error
	if opts.CheckObjectIDs {
		idErrors = checkObjectIDs(objects)
	}

	var overlapWarnings []Warning
	if opts.CheckOverlaps {
		overlapWarnings = detectOverlaps(objects)
	}

	g.Wait() //nolint:errcheck // stage goroutines never return errors

	errs := make([]Error, 0, len(entityErrors)+len(coordErrors)+len(idErrors))
	errs = append(errs, entityErrors...)
	errs = append(errs, coordErrors...)
	errs = append(errs, idErrors...)

	warnings := make([]Warning, 0, len(entityWarnings)+len(overlapWarnings))
	warnings = append(warnings, entityWarnings...)
	warnings = append(warnings, overlapWarnings...)
	if opts.SuppressWarnings {
		warnings = warnings[:0]
	}

	return Result{
		Passed:   len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}
