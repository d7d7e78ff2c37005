package layout

import (
	"errors"
	"sort"
	"time"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// ErrNotFound is returned when a layout ID does not exist.
var ErrNotFound = errors.New("layout: not found")

// Page groups the objects placed on one display page.
type Page struct {
	PageID  int           `json:"page_id"`
	Objects []hasp.Object `json:"objects"`
}

// Layout is a saved design with metadata.
type Layout struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DeviceID    string    `json:"device_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Pages       []Page    `json:"pages"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Objects flattens the layout into one object list in page order, the
// form the validation pipeline and JSONL codec consume.
func (l *Layout) Objects() []hasp.Object {
	var out []hasp.Object
	for _, page := range l.Pages {
		out = append(out, page.Objects...)
	}
	return out
}

// GroupPages organises a flat object list into pages sorted by page
// number, preserving input order within each page.
func GroupPages(objects []hasp.Object) []Page {
	byPage := make(map[int][]hasp.Object)
	for _, obj := range objects {
		byPage[obj.Page] = append(byPage[obj.Page], obj)
	}

	ids := make([]int, 0, len(byPage))
	for id := range byPage {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	pages := make([]Page, 0, len(ids))
	for _, id := range ids {
		pages = append(pages, Page{PageID: id, Objects: byPage[id]})
	}
	return pages
}
