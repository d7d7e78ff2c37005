package homeassistant

import "errors"

// Domain errors for the homeassistant package.
var (
	// ErrEntityNotFound is returned when Home Assistant confirms an entity
	// does not exist (HTTP 404). This is distinct from ErrUnavailable.
	ErrEntityNotFound = errors.New("homeassistant: entity not found")

	// ErrUnavailable is returned when Home Assistant cannot be reached or
	// answers with an unexpected status. Callers must not treat this as a
	// confirmed "does not exist".
	ErrUnavailable = errors.New("homeassistant: unavailable")

	// ErrBadConfig is returned when the client is constructed with an
	// unusable configuration.
	ErrBadConfig = errors.New("homeassistant: bad configuration")
)
