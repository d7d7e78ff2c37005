// Package homeassistant provides the REST client for the Home Assistant API.
//
// It exposes the three capabilities the rest of the system consumes:
//
//   - entity existence checks with a hard distinction between "confirmed
//     missing" (HTTP 404) and "could not check" (transport failure), so the
//     validation pipeline can degrade instead of blocking on an outage
//   - point-in-time state snapshots used by device discovery
//   - best-effort device registry name lookups and the openHASP page
//     reload service call
//
// All calls carry per-request timeouts and retry transient failures via
// hashicorp/go-retryablehttp.
package homeassistant
