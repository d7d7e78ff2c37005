// Package deploy writes validated layouts to the openHASP config
// directory and pushes them to the target plate.
//
// Deployment always lands the JSONL file; the MQTT push and the Home
// Assistant reload are best-effort accelerators. A broker or reload
// failure downgrades to a warning on the result so the file-based path
// still wins.
package deploy
