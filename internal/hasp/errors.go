package hasp

import "errors"

// Domain errors for the hasp package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, hasp.ErrInvalidKind) {
//	    // handle unknown object kind
//	}
var (
	// ErrInvalidKind is returned when an object kind is not recognised.
	ErrInvalidKind = errors.New("hasp: invalid object kind")

	// ErrInvalidObject is returned when object validation fails.
	ErrInvalidObject = errors.New("hasp: invalid object")

	// ErrUnknownModel is returned when a model key has no resolution entry.
	ErrUnknownModel = errors.New("hasp: unknown device model")

	// ErrMalformedJSONL is returned when a JSONL line cannot be decoded.
	ErrMalformedJSONL = errors.New("hasp: malformed jsonl")
)
