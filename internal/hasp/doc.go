// Package hasp provides the openHASP object model for HASP Designer.
//
// It defines the typed layout object used across validation, storage and
// publishing, the display resolution table for known plate models, rectangle
// geometry predicates, and the JSONL codec for openHASP pages files.
//
// # Key Types
//
//   - Object: a single page or placed object in a layout
//   - ObjectKind: the closed set of supported object kinds
//   - Rect: axis-aligned rectangle with half-open overlap semantics
//   - Resolution: display dimensions for a known plate model
//
// Loose JSON records coming from the designer frontend or from imported
// JSONL files are converted to Object values once at the boundary, so the
// validation pipeline never re-checks optional-field presence.
package hasp
