package hasp

import "fmt"

// ObjectKind identifies the kind of a layout object.
// The values match the "obj" field in openHASP pages files.
type ObjectKind string

// ObjectKind constants.
const (
	KindPage     ObjectKind = "page"
	KindButton   ObjectKind = "btn"
	KindLabel    ObjectKind = "label"
	KindSlider   ObjectKind = "slider"
	KindCheckbox ObjectKind = "checkbox"
	KindSwitch   ObjectKind = "sw"
	KindDropdown ObjectKind = "dropdown"
)

// AllObjectKinds returns all valid object kind values.
func AllObjectKinds() []ObjectKind {
	return []ObjectKind{
		KindPage, KindButton, KindLabel, KindSlider,
		KindCheckbox, KindSwitch, KindDropdown,
	}
}

// validKinds is the pre-computed set for O(1) kind lookups.
var validKinds map[ObjectKind]struct{}

func init() {
	validKinds = make(map[ObjectKind]struct{}, len(AllObjectKinds()))
	for _, k := range AllObjectKinds() {
		validKinds[k] = struct{}{}
	}
}

// ValidateKind checks if an object kind is valid.
func ValidateKind(kind ObjectKind) error {
	if _, ok := validKinds[kind]; ok {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
}

// Object is a single page marker or placed object in a layout.
//
// Objects of kind page carry no geometry and are excluded from geometry and
// entity checks. An ID of zero means the object carries no identifier; the
// duplicate-ID check skips such objects.
type Object struct {
	Page int        `json:"page"`
	ID   int        `json:"id"`
	Kind ObjectKind `json:"obj"`

	// Geometry in pixels. Zero for page markers.
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`

	// Entity is the Home Assistant entity this object is bound to
	// (e.g. "light.kitchen"). Empty for unbound objects.
	Entity string `json:"entity,omitempty"`

	Text     string `json:"text,omitempty"`
	Color    string `json:"color,omitempty"`
	BgColor  string `json:"bg_color,omitempty"`
	FontSize int    `json:"font_size,omitempty"`

	// Slider range and value.
	Min int `json:"min,omitempty"`
	Max int `json:"max,omitempty"`
	Val int `json:"val,omitempty"`

	// Options is the newline-separated option list for dropdowns.
	Options string `json:"options,omitempty"`
}

// IsPage reports whether the object is a page marker.
func (o Object) IsPage() bool {
	return o.Kind == KindPage
}

// Rect returns the object's bounding rectangle.
func (o Object) Rect() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// Name returns the openHASP object identifier, e.g. "p1b2" for page 1,
// object 2. This naming is used in generated YAML automations.
func (o Object) Name() string {
	return fmt.Sprintf("p%db%d", o.Page, o.ID)
}

// Validate checks the object for structural problems that would make it
// unusable regardless of the target device: an unknown kind, or negative
// dimensions. Bounds against a device resolution are the validation
// pipeline's job, not this method's.
func (o Object) Validate() error {
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.IsPage() {
		return nil
	}
	if o.W < 0 || o.H < 0 {
		return fmt.Errorf("%w: object %d has negative dimensions %dx%d", ErrInvalidObject, o.ID, o.W, o.H)
	}
	return nil
}
