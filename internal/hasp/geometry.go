package hasp

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Overlaps reports whether two rectangles share any interior pixel.
//
// Intervals are half-open: rectangles that only touch along an edge
// (a.X+a.W == b.X) do not overlap. The predicate is symmetric.
func (r Rect) Overlaps(other Rect) bool {
	return !(r.X+r.W <= other.X ||
		other.X+other.W <= r.X ||
		r.Y+r.H <= other.Y ||
		other.Y+other.H <= r.Y)
}

// FitsWithin reports whether the rectangle lies entirely inside a display of
// the given dimensions. Equality at the boundary is valid: an exact-fit
// rectangle passes.
func (r Rect) FitsWithin(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= width && r.Y+r.H <= height
}
