package validation

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// EntityExistenceChecker reports whether an entity identifier exists in
// Home Assistant. A false result with a nil error is a confirmed absence;
// a non-nil error means the check could not be completed.
// Implemented by homeassistant.Client.
type EntityExistenceChecker interface {
	Exists(ctx context.Context, entityID string) (bool, error)
}

type existsResult struct {
	exists bool
	err    error
}

// checkEntities verifies every entity reference in the layout.
//
// Each distinct reference is checked exactly once, with checks fanned out
// concurrently up to limit. A confirmed missing entity produces one error
// per object referencing it. A check that fails outright degrades to a
// single warning for that reference: deployment must not block on Home
// Assistant being unreachable, only on confirmed non-existence.
func checkEntities(ctx context.Context, objects []hasp.Object, checker EntityExistenceChecker, limit int) ([]Error, []Warning) {
	refObjects := make(map[string][]int)
	for _, obj := range objects {
		if obj.Entity == "" {
			continue
		}
		refObjects[obj.Entity] = append(refObjects[obj.Entity], obj.ID)
	}
	if len(refObjects) == 0 {
		return nil, nil
	}

	refs := make([]string, 0, len(refObjects))
	for ref := range refObjects {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	if limit <= 0 {
		limit = 1
	}
	results := make([]existsResult, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			exists, err := checker.Exists(ctx, ref)
			results[i] = existsResult{exists: exists, err: err}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return errors

	var errs []Error
	var warnings []Warning
	for i, ref := range refs {
		res := results[i]
		if res.err != nil {
			warnings = append(warnings, Warning{
				Kind:      WarnEntityCheck,
				Message:   fmt.Sprintf("could not verify entity %q: %v", ref, res.err),
				EntityRef: ref,
			})
			continue
		}
		if res.exists {
			continue
		}
		for _, objID := range refObjects[ref] {
			errs = append(errs, Error{
				Kind:      KindEntity,
				Message:   fmt.Sprintf("entity %q does not exist in Home Assistant", ref),
				ObjectID:  objID,
				EntityRef: ref,
			})
		}
	}
	return errs, warnings
}
