package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nerrad567/hasp-designer/internal/hasp"
	"github.com/nerrad567/hasp-designer/internal/infrastructure/mqtt"
)

const (
	dirPermissions  = 0750
	filePermissions = 0644
)

// Pusher publishes page payloads to a plate's command topic.
// Implemented by mqtt.Client.
type Pusher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	IsConnected() bool
}

// Reloader asks Home Assistant to reload openHASP page files.
// Implemented by homeassistant.Client.
type Reloader interface {
	ReloadPages(ctx context.Context) error
}

// Logger is the logging interface used by the deployer.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Result reports what one deployment actually did.
type Result struct {
	Node     string   `json:"node"`
	File     string   `json:"file"`
	Objects  int      `json:"objects"`
	Pushed   bool     `json:"pushed"`
	Reloaded bool     `json:"reloaded"`
	Warnings []string `json:"warnings"`
}

// Deployer lands layouts on plates.
type Deployer struct {
	configPath string
	reloader   Reloader
	pusher     Pusher
	topics     mqtt.Topics
	qos        byte
	logger     Logger
}

// New creates a deployer writing into the given config directory.
// The reloader is optional; without one, deployed files wait for the
// next Home Assistant restart or manual reload.
func New(configPath string, reloader Reloader) *Deployer {
	return &Deployer{
		configPath: configPath,
		reloader:   reloader,
		logger:     noopLogger{},
	}
}

// SetPusher enables direct MQTT page pushes on top of the file write.
func (d *Deployer) SetPusher(pusher Pusher, topics mqtt.Topics, qos byte) {
	d.pusher = pusher
	d.topics = topics
	d.qos = qos
}

// SetLogger sets the logger for the deployer.
func (d *Deployer) SetLogger(logger Logger) {
	d.logger = logger
}

// Deploy writes the objects as <node>.jsonl into the config directory,
// then best-effort pushes the payload over MQTT and triggers a Home
// Assistant reload. Only the file write can fail the deployment.
func (d *Deployer) Deploy(ctx context.Context, node string, objects []hasp.Object) (*Result, error) {
	payload, err := hasp.EncodeJSONL(objects)
	if err != nil {
		return nil, fmt.Errorf("encoding layout for %s: %w", node, err)
	}

	if err := os.MkdirAll(d.configPath, dirPermissions); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	filename := node + ".jsonl"
	path := filepath.Join(d.configPath, filename)
	if err := os.WriteFile(path, payload, filePermissions); err != nil {
		return nil, fmt.Errorf("writing %s: %w", filename, err)
	}

	result := &Result{
		Node:     node,
		File:     filename,
		Objects:  len(objects),
		Warnings: []string{},
	}

	if d.pusher != nil {
		if err := d.push(node, payload); err != nil {
			d.logger.Warn("page push failed, plate will pick up the file on reload",
				"node", node, "error", err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("page push failed: %v", err))
		} else {
			result.Pushed = true
		}
	}

	if d.reloader != nil {
		if err := d.reloader.ReloadPages(ctx); err != nil {
			d.logger.Warn("reload request failed", "node", node, "error", err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("reload request failed: %v", err))
		} else {
			result.Reloaded = true
		}
	}

	return result, nil
}

func (d *Deployer) push(node string, payload []byte) error {
	if !d.pusher.IsConnected() {
		return mqtt.ErrNotConnected
	}
	return d.pusher.Publish(d.topics.CommandJSONL(node), payload, d.qos, false)
}
