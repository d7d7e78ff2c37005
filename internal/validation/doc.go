// Package validation checks a layout for deployability against a target
// plate: entity references resolve, objects fit the screen, object IDs are
// unique, and nothing overlaps.
//
// Stages are independent and pure except for the two that reach out to
// Home Assistant (entity existence, device resolution). The orchestrator
// gates everything behind the device check: an unresolved or offline
// target aborts the pipeline with a single device error, because checking
// geometry against an unidentified screen is meaningless. All other stage
// failures accumulate; overlaps only ever warn.
package validation
