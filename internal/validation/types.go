package validation

// ErrorKind classifies a validation error.
type ErrorKind string

// Error kinds. Device errors abort the pipeline; the rest accumulate.
const (
	KindDevice     ErrorKind = "device"
	KindEntity     ErrorKind = "entity"
	KindCoordinate ErrorKind = "coordinate"
	KindObjectID   ErrorKind = "object_id"
)

// WarningKind classifies a validation warning. Warnings never fail a run.
type WarningKind string

const (
	// WarnOverlap flags two objects sharing pixels on the same page.
	WarnOverlap WarningKind = "overlap"
	// WarnEntityCheck flags an entity reference that could not be
	// verified because Home Assistant was unreachable.
	WarnEntityCheck WarningKind = "entity_check"
)

// Error is one actionable validation failure.
type Error struct {
	Kind      ErrorKind `json:"type"`
	Message   string    `json:"message"`
	ObjectID  int       `json:"object_id,omitempty"`
	EntityRef string    `json:"entity_id,omitempty"`
	Page      int       `json:"page_id,omitempty"`
}

// Warning is a non-blocking validation finding.
type Warning struct {
	Kind      WarningKind `json:"type"`
	Message   string      `json:"message"`
	ObjectID  int         `json:"object_id,omitempty"`
	EntityRef string      `json:"entity_id,omitempty"`
}

// Result is the aggregate outcome of one validation run. Errors and
// Warnings are ordered deterministically for a given layout.
type Result struct {
	Passed   bool      `json:"passed"`
	Errors   []Error   `json:"errors"`
	Warnings []Warning `json:"warnings"`
}

// Options selects which stages run. The zero value disables everything;
// use DefaultOptions as the starting point.
type Options struct {
	CheckEntities    bool `json:"validate_entities"`
	CheckBounds      bool `json:"check_bounds"`
	CheckDevice      bool `json:"verify_device"`
	CheckObjectIDs   bool `json:"check_object_ids"`
	CheckOverlaps    bool `json:"check_overlaps"`
	SuppressWarnings bool `json:"skip_warnings"`
}

// DefaultOptions enables every stage except overlap detection.
func DefaultOptions() Options {
	return Options{
		CheckEntities:  true,
		CheckBounds:    true,
		CheckDevice:    true,
		CheckObjectIDs: true,
	}
}
