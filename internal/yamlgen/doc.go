// Package yamlgen renders the Home Assistant openHASP package YAML for a
// layout: per-object event handlers that toggle the bound entity and
// state automations that push entity changes back to the plate.
package yamlgen
