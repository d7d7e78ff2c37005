package validation

import (
	"fmt"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// checkObjectIDs flags duplicate object IDs in input order.
//
// One error is emitted per occurrence after the first sighting, not per
// duplicate pair; three objects sharing an ID yield two errors. Objects
// without an ID are skipped.
func checkObjectIDs(objects []hasp.Object) []Error {
	seen := make(map[int]struct{})
	var errs []Error
	for _, obj := range objects {
		if obj.ID == 0 {
			continue
		}
		if _, dup := seen[obj.ID]; dup {
			errs = append(errs, Error{
				Kind:     KindObjectID,
				Message:  fmt.Sprintf("duplicate object ID: %d", obj.ID),
				ObjectID: obj.ID,
				Page:     obj.Page,
			})
			continue
		}
		seen[obj.ID] = struct{}{}
	}
	return errs
}
