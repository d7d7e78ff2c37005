// Package mqtt wraps paho.mqtt.golang for pushing page definitions
// directly to openHASP plates.
//
// Plates subscribe to their command topics on the same broker Home
// Assistant uses; publishing a JSONL payload to
// <prefix>/<node>/command/jsonl renders the objects immediately without
// waiting for a config reload. The client is publish-only with
// auto-reconnect; deployment falls back to file-and-reload when the
// broker is unavailable.
package mqtt
