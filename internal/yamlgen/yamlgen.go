package yamlgen

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nerrad567/hasp-designer/internal/hasp"
)

// toggleServices maps entity domains to their toggle service. Domains
// outside the map fall back to homeassistant.toggle.
var toggleServices = map[string]string{
	"light":        "light.toggle",
	"switch":       "switch.toggle",
	"cover":        "cover.toggle",
	"fan":          "fan.toggle",
	"climate":      "climate.toggle",
	"lock":         "lock.toggle",
	"media_player": "media_player.toggle",
}

type target struct {
	EntityID string `yaml:"entity_id"`
}

type serviceCall struct {
	Service string `yaml:"service"`
	Target  target `yaml:"target"`
	Data    *data  `yaml:"data,omitempty"`
}

type data struct {
	Obj     string `yaml:"obj"`
	Text    string `yaml:"text,omitempty"`
	BgColor string `yaml:"bg_color,omitempty"`
	Val     string `yaml:"val,omitempty"`
}

type event struct {
	Down []serviceCall `yaml:"down"`
}

type objectConfig struct {
	Obj        string            `yaml:"obj"`
	Properties map[string]string `yaml:"properties"`
	Event      *event            `yaml:"event,omitempty"`
	State      []serviceCall     `yaml:"state,omitempty"`
}

type deviceConfig struct {
	Objects []objectConfig `yaml:"objects"`
}

// Generate renders the openHASP package YAML for the given layout objects
// targeting one plate. Page markers carry no bindings and are skipped.
func Generate(objects []hasp.Object, deviceID string) (string, error) {
	device := deviceConfig{Objects: []objectConfig{}}
	for _, obj := range objects {
		if obj.IsPage() {
			continue
		}
		device.Objects = append(device.Objects, objectYAML(obj, deviceID))
	}

	doc := map[string]map[string]deviceConfig{
		"openhasp": {deviceID: device},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshalling openhasp package: %w", err)
	}
	return string(out), nil
}

func objectYAML(obj hasp.Object, deviceID string) objectConfig {
	cfg := objectConfig{
		Obj:        obj.Name(),
		Properties: map[string]string{},
	}
	if obj.Text != "" {
		cfg.Properties["text"] = obj.Text
	}

	if obj.Entity == "" {
		return cfg
	}

	if interactive(obj.Kind) {
		cfg.Event = &event{Down: []serviceCall{{
			Service: toggleService(obj.Entity),
			Target:  target{EntityID: obj.Entity},
		}}}
	}
	cfg.State = stateUpdates(obj.Entity, obj.Name(), deviceID)
	return cfg
}

// interactive reports whether a tap on the object should drive its entity.
func interactive(kind hasp.ObjectKind) bool {
	switch kind {
	case hasp.KindButton, hasp.KindSwitch, hasp.KindCheckbox:
		return true
	}
	return false
}

func toggleService(entityID string) string {
	if svc, ok := toggleServices[entityDomain(entityID)]; ok {
		return svc
	}
	return "homeassistant.toggle"
}

func entityDomain(entityID string) string {
	if i := strings.IndexByte(entityID, '.'); i >= 0 {
		return entityID[:i]
	}
	return ""
}

// stateUpdates builds the automation calls that mirror entity state onto
// the plate object. The template shape depends on the entity domain.
func stateUpdates(entityID, objName, deviceID string) []serviceCall {
	call := serviceCall{
		Service: "openhasp.update_object",
		Target:  target{EntityID: fmt.Sprintf("openhasp.%s", deviceID)},
	}

	switch entityDomain(entityID) {
	case "light":
		call.Data = &data{
			Obj:     objName,
			Text:    onOffTemplate(entityID),
			BgColor: fmt.Sprintf("{{ '#00FF00' if is_state('%s', 'on') else '#FF0000' }}", entityID),
		}
	case "sensor":
		call.Data = &data{
			Obj:  objName,
			Text: fmt.Sprintf("{{ states('%s') }}{{ state_attr('%s', 'unit_of_measurement') }}", entityID, entityID),
		}
	case "binary_sensor":
		call.Data = &data{
			Obj:  objName,
			Text: onOffTemplate(entityID),
		}
	case "switch", "cover", "fan":
		call.Data = &data{
			Obj:  objName,
			Text: onOffTemplate(entityID),
			Val:  fmt.Sprintf("{{ 1 if is_state('%s', 'on') else 0 }}", entityID),
		}
	default:
		call.Data = &data{
			Obj:  objName,
			Text: fmt.Sprintf("{{ states('%s') }}", entityID),
		}
	}
	return []serviceCall{call}
}

func onOffTemplate(entityID string) string {
	return fmt.Sprintf("{{ 'ON' if is_state('%s', 'on') else 'OFF' }}", entityID)
}
