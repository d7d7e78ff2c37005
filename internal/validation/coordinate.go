package validation

import (
	"fmt"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// CheckBounds verifies a single object against a screen size, for
// editor-side checks before a full validation run.
func CheckBounds(obj hasp.Object, width, height int) *Error {
	errs := checkCoordinates([]hasp.Object{obj}, width, height)
	if len(errs) == 0 {
		return nil
	}
	return &errs[0]
}

// checkCoordinates verifies every placed object fits the target screen.
// Page markers carry no geometry and are skipped. Each failing object gets
// exactly one error; the negative check wins over the extent checks.
func checkCoordinates(objects []hasp.Object, width, height int) []Error {
	var errs []Error
	for _, obj := range objects {
		if obj.IsPage() {
			continue
		}

		var msg string
		switch {
		case obj.X < 0 || obj.Y < 0:
			msg = fmt.Sprintf("coordinates cannot be negative: x=%d, y=%d", obj.X, obj.Y)
		case obj.X+obj.W > width:
			msg = fmt.Sprintf("object extends beyond screen width: %d > %d", obj.X+obj.W, width)
		case obj.Y+obj.H > height:
			msg = fmt.Sprintf("object extends beyond screen height: %d > %d", obj.Y+obj.H, height)
		default:
			continue
		}

		errs = append(errs, Error{
			Kind:     KindCoordinate,
			Message:  msg,
			ObjectID: obj.ID,
			Page:     obj.Page,
		})
	}
	return errs
}
