package discovery

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nerrad567/hasp-designer/internal/homeassistant"
)

type fakeStates struct {
	entities []homeassistant.Entity
	err      error
}

func (f *fakeStates) States(context.Context) ([]homeassistant.Entity, error) {
	return f.entities, f.err
}

type fakeNames struct {
	name string
	err  error
}

func (f *fakeNames) DeviceName(context.Context, string) (string, error) {
	return f.name, f.err
}

func entity(id, state, friendly string) homeassistant.Entity {
	return homeassistant.Entity{
		EntityID: id,
		State:    state,
		Attributes: map[string]any{
			"friendly_name": friendly,
		},
	}
}

func TestListDevicesClustersPlate(t *testing.T) {
	states := &fakeStates{entities: []homeassistant.Entity{
		entity("sensor.plate01_backlight", "75", "Kevin Plate Backlight"),
		entity("sensor.plate01_status", "on", "Kevin Plate Status"),
	}}

	devices, err := NewEngine(states).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("ListDevices() returned %d devices, want 1", len(devices))
	}

	got := devices[0]
	if got.DeviceID != "plate01" {
		t.Errorf("DeviceID = %q, want %q", got.DeviceID, "plate01")
	}
	if got.DisplayName != "Kevin Plate" {
		t.Errorf("DisplayName = %q, want %q", got.DisplayName, "Kevin Plate")
	}
	if !got.Online {
		t.Error("Online = false, want true")
	}
	wantIDs := []string{"sensor.plate01_backlight", "sensor.plate01_status"}
	if !reflect.DeepEqual(got.EntityIDs, wantIDs) {
		t.Errorf("EntityIDs = %v, want %v", got.EntityIDs, wantIDs)
	}
}

func TestListDevicesDropsSingleEntityClusters(t *testing.T) {
	states := &fakeStates{entities: []homeassistant.Entity{
		entity("sensor.plate01_status", "on", "Lone Status"),
	}}

	devices, err := NewEngine(states).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if len(devices) != 0 {
		t.Fatalf("ListDevices() returned %d devices, want 0", len(devices))
	}
}

func TestListDevicesFiltersRecords(t *testing.T) {
	states := &fakeStates{entities: []homeassistant.Entity{
		entity("sensor.plate01_backlight", "75", "Hall Plate Backlight"),
		entity("sensor.plate01_status", "on", "Hall Plate Status"),
		// Integration bookkeeping entity: never a cluster member.
		entity("sensor.openhasp_plate01_version", "0.7.0", "openHASP Version"),
		// Irrelevant domain.
		entity("media_player.plate01_cast", "idle", "Hall Cast"),
		// Neither marker nor convention.
		entity("sensor.kitchen_temperature", "21.5", "Kitchen Temperature"),
	}}

	devices, err := NewEngine(states).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("ListDevices() returned %d devices, want 1", len(devices))
	}
	if got := len(devices[0].EntityIDs); got != 2 {
		t.Errorf("EntityIDs count = %d, want 2", got)
	}
}

func TestListDevicesIntegrationMarker(t *testing.T) {
	// Entities flagged by the integration attribute cluster even when the
	// object ID does not follow the plate convention.
	member := func(id, friendly string) homeassistant.Entity {
		e := entity(id, "on", friendly)
		e.Attributes["integration"] = "openhasp"
		return e
	}
	states := &fakeStates{entities: []homeassistant.Entity{
		member("light.lounge_panel_backlight", "Lounge Panel Backlight"),
		member("sensor.lounge_panel_status", "Lounge Panel Status"),
	}}

	devices, err := NewEngine(states).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("ListDevices() returned %d devices, want 1", len(devices))
	}
	if devices[0].DeviceID != "lounge_panel" {
		t.Errorf("DeviceID = %q, want %q", devices[0].DeviceID, "lounge_panel")
	}
	if devices[0].DisplayName != "Lounge Panel" {
		t.Errorf("DisplayName = %q, want %q", devices[0].DisplayName, "Lounge Panel")
	}
}

func TestListDevicesOnlineFromStatus(t *testing.T) {
	tests := []struct {
		name       string
		state      string
		wantOnline bool
	}{
		{"on", "on", true},
		{"connected", "connected", true},
		{"off", "off", false},
		{"unavailable", "unavailable", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			states := &fakeStates{entities: []homeassistant.Entity{
				entity("sensor.plate01_backlight", "75", "Plate Backlight"),
				entity("sensor.plate01_status", tt.state, "Plate Status"),
			}}
			devices, err := NewEngine(states).ListDevices(context.Background())
			if err != nil {
				t.Fatalf("ListDevices() error = %v", err)
			}
			if len(devices) != 1 {
				t.Fatalf("ListDevices() returned %d devices, want 1", len(devices))
			}
			if devices[0].Online != tt.wantOnline {
				t.Errorf("Online = %v, want %v", devices[0].Online, tt.wantOnline)
			}
		})
	}
}

func TestListDevicesResolutionFromStatusAttributes(t *testing.T) {
	status := entity("sensor.plate01_status", "on", "Plate Status")
	status.Attributes["width"] = float64(480)
	status.Attributes["height"] = float64(320)
	states := &fakeStates{entities: []homeassistant.Entity{
		entity("sensor.plate01_backlight", "75", "Plate Backlight"),
		status,
	}}

	devices, err := NewEngine(states).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	res := devices[0].Resolution
	if res == nil {
		t.Fatal("Resolution = nil, want 480x320")
	}
	if res.Width != 480 || res.Height != 320 {
		t.Errorf("Resolution = %dx%d, want 480x320", res.Width, res.Height)
	}
}

func TestListDevicesResolutionFromModel(t *testing.T) {
	status := entity("sensor.plate01_status", "on", "Plate Status")
	status.Attributes["model"] = "Lanbon L8-HD"
	states := &fakeStates{entities: []homeassistant.Entity{
		entity("sensor.plate01_backlight", "75", "Plate Backlight"),
		status,
	}}

	devices, err := NewEngine(states).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	res := devices[0].Resolution
	if res == nil {
		t.Fatal("Resolution = nil, want match from model")
	}
	if res.Width != 800 || res.Height != 480 {
		t.Errorf("Resolution = %dx%d, want 800x480", res.Width, res.Height)
	}
	if devices[0].Model != "Lanbon L8-HD" {
		t.Errorf("Model = %q, want %q", devices[0].Model, "Lanbon L8-HD")
	}
}

func TestListDevicesNameResolverWins(t *testing.T) {
	states := &fakeStates{entities: []homeassistant.Entity{
		entity("sensor.plate01_backlight", "75", "Kevin Plate Backlight"),
		entity("sensor.plate01_status", "on", "Kevin Plate Status"),
	}}

	engine := NewEngine(states)
	engine.SetNameResolver(&fakeNames{name: "Hallway Panel"})

	devices, err := engine.ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if devices[0].DisplayName != "Hallway Panel" {
		t.Errorf("DisplayName = %q, want %q", devices[0].DisplayName, "Hallway Panel")
	}
}

func TestListDevicesNameResolverFallsBack(t *testing.T) {
	states := &fakeStates{entities: []homeassistant.Entity{
		entity("sensor.plate01_backlight", "75", "Kevin Plate Backlight"),
		entity("sensor.plate01_status", "on", "Kevin Plate Status"),
	}}

	engine := NewEngine(states)
	engine.SetNameResolver(&fakeNames{err: errors.New("registry down")})

	devices, err := engine.ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if devices[0].DisplayName != "Kevin Plate" {
		t.Errorf("DisplayName = %q, want %q", devices[0].DisplayName, "Kevin Plate")
	}
}

func TestListDevicesDeterministicOrder(t *testing.T) {
	states := &fakeStates{entities: []homeassistant.Entity{
		entity("sensor.plate02_status", "on", "Bedroom Plate Status"),
		entity("sensor.plate01_backlight", "75", "Hall Plate Backlight"),
		entity("sensor.plate02_backlight", "40", "Bedroom Plate Backlight"),
		entity("sensor.plate01_status", "off", "Hall Plate Status"),
	}}

	devices, err := NewEngine(states).ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices() error = %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("ListDevices() returned %d devices, want 2", len(devices))
	}
	if devices[0].DeviceID != "plate01" || devices[1].DeviceID != "plate02" {
		t.Errorf("device order = [%s %s], want [plate01 plate02]",
			devices[0].DeviceID, devices[1].DeviceID)
	}
}

func TestListDevicesStatesError(t *testing.T) {
	states := &fakeStates{err: errors.New("connection refused")}
	if _, err := NewEngine(states).ListDevices(context.Background()); err == nil {
		t.Fatal("ListDevices() error = nil, want error")
	}
}

func TestClusterKey(t *testing.T) {
	tests := []struct {
		object string
		want   string
	}{
		{"plate01_backlight", "plate01"},
		{"plate01_status", "plate01"},
		{"plate01_statusupdate", "plate01"},
		{"plate01_page", "plate01"},
		{"plate_kitchen_idle", "plate_kitchen"},
		{"plate01", "plate01"},
		{"plate_2", "plate"},
	}
	for _, tt := range tests {
		if got := clusterKey(tt.object); got != tt.want {
			t.Errorf("clusterKey(%q) = %q, want %q", tt.object, got, tt.want)
		}
	}
}

func TestStripRoleWord(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Kevin Plate Backlight", "Kevin Plate"},
		{"Kevin Plate Status Update", "Kevin Plate"},
		{"Kevin Plate ", "Kevin Plate"},
		{"Backlight", ""},
	}
	for _, tt := range tests {
		if got := stripRoleWord(tt.name); got != tt.want {
			t.Errorf("stripRoleWord(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
