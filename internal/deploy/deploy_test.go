package deploy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nerrad567/hasp-designer/internal/hasp"
	"github.com/nerrad567/hasp-designer/internal/infrastructure/mqtt"
)

type fakePusher struct {
	connected bool
	err       error
	topic     string
	payload   []byte
}

func (f *fakePusher) Publish(topic string, payload []byte, _ byte, _ bool) error {
	if f.err != nil {
		return f.err
	}
	f.topic = topic
	f.payload = payload
	return nil
}

func (f *fakePusher) IsConnected() bool { return f.connected }

type fakeReloader struct {
	calls int
	err   error
}

func (f *fakeReloader) ReloadPages(context.Context) error {
	f.calls++
	return f.err
}

func sampleObjects() []hasp.Object {
	return []hasp.Object{
		{Page: 1, Kind: hasp.KindPage},
		{ID: 1, Page: 1, Kind: hasp.KindButton, Entity: "light.hall", X: 10, Y: 10, W: 100, H: 50},
	}
}

func TestDeployWritesFile(t *testing.T) {
	dir := t.TempDir()
	reloader := &fakeReloader{}
	d := New(dir, reloader)

	result, err := d.Deploy(context.Background(), "plate01", sampleObjects())
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if result.File != "plate01.jsonl" || result.Objects != 2 {
		t.Errorf("result = %+v, want plate01.jsonl with 2 objects", result)
	}
	if !result.Reloaded || reloader.calls != 1 {
		t.Errorf("Reloaded = %v, reload calls = %d, want reloaded once", result.Reloaded, reloader.calls)
	}

	data, err := os.ReadFile(filepath.Join(dir, "plate01.jsonl"))
	if err != nil {
		t.Fatalf("reading deployed file: %v", err)
	}
	if !strings.Contains(string(data), `"light.hall"`) {
		t.Errorf("deployed file missing entity binding:\n%s", data)
	}
}

func TestDeployPushesOverMQTT(t *testing.T) {
	pusher := &fakePusher{connected: true}
	d := New(t.TempDir(), nil)
	d.SetPusher(pusher, mqtt.Topics{}, 1)

	result, err := d.Deploy(context.Background(), "plate01", sampleObjects())
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if !result.Pushed {
		t.Error("Pushed = false, want true")
	}
	if pusher.topic != "hasp/plate01/command/jsonl" {
		t.Errorf("topic = %q, want hasp/plate01/command/jsonl", pusher.topic)
	}
	if len(pusher.payload) == 0 {
		t.Error("payload empty, want JSONL content")
	}
}

func TestDeployPushFailureDowngradesToWarning(t *testing.T) {
	pusher := &fakePusher{connected: true, err: errors.New("broker gone")}
	d := New(t.TempDir(), nil)
	d.SetPusher(pusher, mqtt.Topics{}, 1)

	result, err := d.Deploy(context.Background(), "plate01", sampleObjects())
	if err != nil {
		t.Fatalf("Deploy() error = %v, want file write to win", err)
	}
	if result.Pushed {
		t.Error("Pushed = true, want false")
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one push warning", result.Warnings)
	}
}

func TestDeployDisconnectedBrokerSkipsPush(t *testing.T) {
	pusher := &fakePusher{connected: false}
	d := New(t.TempDir(), nil)
	d.SetPusher(pusher, mqtt.Topics{}, 1)

	result, err := d.Deploy(context.Background(), "plate01", sampleObjects())
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if result.Pushed {
		t.Error("Pushed = true, want false while disconnected")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one warning", result.Warnings)
	}
}

func TestDeployReloadFailureDowngradesToWarning(t *testing.T) {
	reloader := &fakeReloader{err: errors.New("service unavailable")}
	d := New(t.TempDir(), reloader)

	result, err := d.Deploy(context.Background(), "plate01", sampleObjects())
	if err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if result.Reloaded {
		t.Error("Reloaded = true, want false")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one reload warning", result.Warnings)
	}
}

func TestDeployCreatesConfigDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "openhasp")
	d := New(dir, nil)

	if _, err := d.Deploy(context.Background(), "plate01", sampleObjects()); err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plate01.jsonl")); err != nil {
		t.Errorf("deployed file missing: %v", err)
	}
}
