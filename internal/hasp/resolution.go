package hasp

import (
	"fmt"
	"sort"
	"strings"
)

// Resolution describes the display of a known plate model.
type Resolution struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Model       string `json:"model"`
	Description string `json:"description,omitempty"`
}

// resolutions is the fixed model-key to resolution table.
// Read-only, process-wide, loaded once at start.
var resolutions = map[string]Resolution{
	// Lanbon series
	"lanbon_l8":    {Width: 480, Height: 320, Model: "Lanbon L8", Description: "Lanbon L8 3-gang switch"},
	"lanbon_l8_hd": {Width: 800, Height: 480, Model: "Lanbon L8 HD", Description: "Lanbon L8 HD high-resolution"},

	// WT32-SC01 series
	"wt32_sc01":      {Width: 320, Height: 480, Model: "WT32-SC01", Description: "WT32-SC01 3.5\" display"},
	"wt32_sc01_plus": {Width: 480, Height: 320, Model: "WT32-SC01 Plus", Description: "WT32-SC01 Plus 3.5\" display"},

	// ESP32 series
	"esp32_2432s028r": {Width: 240, Height: 320, Model: "ESP32-2432S028R", Description: "ESP32-2432S028R 2.8\" display (Cheap Yellow Display)"},
	"esp32_3248s035c": {Width: 480, Height: 320, Model: "ESP32-3248S035C", Description: "ESP32-3248S035C 3.5\" display"},
	"esp32_4827s043":  {Width: 480, Height: 272, Model: "ESP32-4827S043", Description: "ESP32-4827S043 4.3\" display"},
	"esp32_8048s070":  {Width: 800, Height: 480, Model: "ESP32-8048S070", Description: "ESP32-8048S070 7\" display"},

	// Other devices
	"freetouchdeck":   {Width: 480, Height: 320, Model: "FreeTouchDeck", Description: "FreeTouchDeck ESP32 touchscreen"},
	"m5stack_core2":   {Width: 320, Height: 240, Model: "M5Stack Core2", Description: "M5Stack Core2 2\" display"},
	"lilygo_t_display": {Width: 135, Height: 240, Model: "LILYGO T-Display", Description: "LILYGO T-Display 1.14\" TFT"},

	// Generic size presets
	"small_portrait":   {Width: 240, Height: 320, Model: "Small Portrait", Description: "Generic small portrait (240x320)"},
	"medium_portrait":  {Width: 320, Height: 480, Model: "Medium Portrait", Description: "Generic medium portrait (320x480)"},
	"large_portrait":   {Width: 480, Height: 800, Model: "Large Portrait", Description: "Generic large portrait (480x800)"},
	"small_landscape":  {Width: 320, Height: 240, Model: "Small Landscape", Description: "Generic small landscape (320x240)"},
	"medium_landscape": {Width: 480, Height: 320, Model: "Medium Landscape", Description: "Generic medium landscape (480x320)"},
	"large_landscape":  {Width: 800, Height: 480, Model: "Large Landscape", Description: "Generic large landscape (800x480)"},
}

// modelPatterns maps normalised model-string substrings to resolution keys.
// Ordered: more specific patterns come before their prefixes so first match
// wins deterministically (e.g. "lanbonl8hd" before "lanbonl8").
var modelPatterns = []struct {
	substring string
	key       string
}{
	{"lanbonl8hd", "lanbon_l8_hd"},
	{"lanbonl8", "lanbon_l8"},
	{"wt32sc01plus", "wt32_sc01_plus"},
	{"wt32sc01", "wt32_sc01"},
	{"esp322432s028r", "esp32_2432s028r"},
	{"esp323248s035c", "esp32_3248s035c"},
	{"esp324827s043", "esp32_4827s043"},
	{"esp328048s070", "esp32_8048s070"},
	{"freetouchdeck", "freetouchdeck"},
	{"m5stackcore2", "m5stack_core2"},
	{"lilygotdisplay", "lilygo_t_display"},
}

// ResolutionForModel returns the resolution for a model key.
// The key is case-insensitive.
func ResolutionForModel(key string) (Resolution, error) {
	res, ok := resolutions[strings.ToLower(key)]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownModel, key)
	}
	return res, nil
}

// AllResolutions returns the full model table, sorted by key for
// deterministic API responses.
func AllResolutions() []struct {
	Key        string
	Resolution Resolution
} {
	keys := make([]string, 0, len(resolutions))
	for k := range resolutions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]struct {
		Key        string
		Resolution Resolution
	}, 0, len(keys))
	for _, k := range keys {
		out = append(out, struct {
			Key        string
			Resolution Resolution
		}{Key: k, Resolution: resolutions[k]})
	}
	return out
}

// MatchModel maps a raw device model string (as reported by Home Assistant
// attributes) to a resolution-table key by normalised substring matching.
//
// The model string is lowercased and stripped of spaces, hyphens and
// underscores before matching. First matching pattern wins; no match
// returns ok=false.
func MatchModel(model string) (string, bool) {
	normalised := strings.ToLower(model)
	normalised = strings.ReplaceAll(normalised, " ", "")
	normalised = strings.ReplaceAll(normalised, "-", "")
	normalised = strings.ReplaceAll(normalised, "_", "")
	if normalised == "" {
		return "", false
	}

	for _, p := range modelPatterns {
		if strings.Contains(normalised, p.substring) {
			return p.key, true
		}
	}
	return "", false
}
