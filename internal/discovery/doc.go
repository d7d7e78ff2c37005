// Package discovery reconstructs logical openHASP plate devices from the
// flat Home Assistant state snapshot.
//
// Home Assistant exposes no authoritative manifest linking a plate's
// entities together, so the engine clusters entity identifiers
// heuristically: it strips known role suffixes ("_backlight", "_status",
// ...) to derive a shared cluster key, accumulates names, model and online
// hints per cluster, and drops single-entity clusters as integration noise.
//
// The engine sits behind the validation package's DeviceRegistry interface
// so it can be replaced wholesale by a config-driven registry without
// touching the validation pipeline.
//
// # Known limitation
//
// The single-entity noise filter also hides genuine plates that expose only
// one entity. This is inherited behaviour; dropped cluster keys are logged
// at debug level so the false negative stays observable.
package discovery
