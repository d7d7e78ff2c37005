package validation

import (
	"fmt"
	"sort"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// detectOverlaps warns about objects sharing pixels on the same page.
//
// Pairwise over all C(n,2) combinations per page. Layouts hold tens of
// objects at most, so the quadratic scan stays cheap and a spatial index
// would be pure overhead. Edge-adjacent objects do not overlap.
func detectOverlaps(objects []hasp.Object) []Warning {
	byPage := make(map[int][]hasp.Object)
	for _, obj := range objects {
		if obj.IsPage() {
			continue
		}
		byPage[obj.Page] = append(byPage[obj.Page], obj)
	}

	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	var warnings []Warning
	for _, page := range pages {
		group := byPage[page]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if !group[i].Rect().Overlaps(group[j].Rect()) {
					continue
				}
				low, high := group[i].ID, group[j].ID
				if high < low {
					low, high = high, low
				}
				warnings = append(warnings, Warning{
					Kind:     WarnOverlap,
					Message:  fmt.Sprintf("objects %d and %d overlap on page %d", low, high, page),
					ObjectID: low,
				})
			}
		}
	}
	return warnings
}
