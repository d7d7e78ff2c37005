package discovery

import (
	"regexp"
	"sort"
	"strings"
)

// roleSuffixes are the known entity role suffixes a plate integration
// appends to its entities. Checked left-to-right; first match wins.
var roleSuffixes = []string{
	"_backlight",
	"_moodlight",
	"_statusupdate",
	"_status",
	"_antiburn",
	"_idle",
	"_page",
}

// roleWords are the display-name forms of the role suffixes, stripped from
// the trailing end of a derived display name.
var roleWords = []string{
	"Backlight",
	"Moodlight",
	"Status Update",
	"Status",
	"Antiburn",
	"Idle",
	"Page",
}

var trailingNumberRe = regexp.MustCompile(`_\d+$`)

// relevantDomains are entity domains that can belong to a plate.
var relevantDomains = map[string]struct{}{
	"light":         {},
	"switch":        {},
	"sensor":        {},
	"binary_sensor": {},
	"number":        {},
}

// plateConventionRe matches entity object IDs following the plate naming
// convention (e.g. "plate01_backlight").
var plateConventionRe = regexp.MustCompile(`^plate[0-9a-z_]*$`)

// selfEntityPrefix marks the integration's own bookkeeping entities
// (e.g. "sensor.openhasp_plate01_version"); those are never plate members.
const selfEntityPrefix = "openhasp_"

// objectID returns the part of an entity identifier after the domain.
func objectID(entityID string) string {
	if i := strings.IndexByte(entityID, '.'); i >= 0 {
		return entityID[i+1:]
	}
	return entityID
}

// clusterKey derives the grouping key for an entity object ID: the first
// matching role suffix is removed, then any trailing numeric suffix.
func clusterKey(object string) string {
	for _, suffix := range roleSuffixes {
		if strings.HasSuffix(object, suffix) {
			object = strings.TrimSuffix(object, suffix)
			break
		}
	}
	return trailingNumberRe.ReplaceAllString(object, "")
}

// commonPrefix computes the longest common character prefix of the given
// names. The slice is sorted first so only the lexicographic extremes need
// comparing; this keeps the result independent of input order.
func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	first, last := sorted[0], sorted[len(sorted)-1]
	max := len(first)
	if len(last) < max {
		max = len(last)
	}
	i := 0
	for i < max && first[i] == last[i] {
		i++
	}
	return first[:i]
}

// stripRoleWord removes one trailing role word from a display name and
// trims surrounding whitespace.
func stripRoleWord(name string) string {
	trimmed := strings.TrimSpace(name)
	for _, word := range roleWords {
		if strings.HasSuffix(trimmed, word) {
			trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, word))
			break
		}
	}
	return trimmed
}

// isPositiveState reports whether a status entity's state means online.
func isPositiveState(state string) bool {
	switch strings.ToLower(state) {
	case "on", "online", "connected", "available":
		return true
	}
	return false
}
