// HASP Designer - openHASP layout designer backend
//
// This is the main entry point for the HASP Designer service. It serves the
// layout editor REST API, discovers openHASP plates through Home Assistant,
// validates layouts before they reach hardware, and publishes page files to
// the shared Home Assistant config directory (optionally pushing them live
// over MQTT).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/hasp-designer/migrations"

	"github.com/nerrad567/hasp-designer/internal/api"
	"github.com/nerrad567/hasp-designer/internal/deploy"
	"github.com/nerrad567/hasp-designer/internal/discovery"
	"github.com/nerrad567/hasp-designer/internal/homeassistant"
	"github.com/nerrad567/hasp-designer/internal/importer"
	"github.com/nerrad567/hasp-designer/internal/infrastructure/config"
	"github.com/nerrad567/hasp-designer/internal/infrastructure/database"
	"github.com/nerrad567/hasp-designer/internal/infrastructure/logging"
	"github.com/nerrad567/hasp-designer/internal/infrastructure/mqtt"
	"github.com/nerrad567/hasp-designer/internal/layout"
	"github.com/nerrad567/hasp-designer/internal/validation"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting HASP Designer",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open database and run migrations
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database ready", "path", cfg.Database.Path)

	// Home Assistant client
	ha, err := homeassistant.New(cfg.HomeAssistant)
	if err != nil {
		return fmt.Errorf("creating Home Assistant client: %w", err)
	}
	log.Info("Home Assistant client created", "base_url", cfg.HomeAssistant.BaseURL)

	// Plate discovery
	engine := discovery.NewEngine(ha)
	engine.SetNameResolver(ha)
	engine.SetLogger(log)

	// Validation pipeline
	orchestrator := validation.NewOrchestrator(engine, ha)
	orchestrator.SetLogger(log)
	if cfg.Designer.EntityCheckConcurrency > 0 {
		orchestrator.SetEntityCheckLimit(cfg.Designer.EntityCheckConcurrency)
	}

	// Layout storage
	layouts := layout.NewSQLiteRepository(db.DB)

	// Importer for existing plate configs
	var imp *importer.Importer
	if cfg.Designer.ConfigPath != "" {
		imp = importer.New(cfg.Designer.ConfigPath)
		imp.SetLogger(log)
	} else {
		log.Info("config path not set, import endpoints disabled")
	}

	// Publishing: file write plus optional MQTT push
	var deployer *deploy.Deployer
	if cfg.Designer.ConfigPath != "" {
		deployer = deploy.New(cfg.Designer.ConfigPath, ha)
		deployer.SetLogger(log)

		if cfg.MQTT.Enabled {
			mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
			if mqttErr != nil {
				// Publishing degrades to file-only; the plate picks the
				// layout up on its next reload.
				log.Warn("MQTT connect failed, live push disabled", "error", mqttErr)
			} else {
				defer func() {
					log.Info("disconnecting from MQTT")
					if closeErr := mqttClient.Close(); closeErr != nil {
						log.Error("error closing MQTT", "error", closeErr)
					}
				}()
				log.Info("MQTT connected",
					"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
					"client_id", cfg.MQTT.Broker.ClientID,
				)
				qos := byte(cfg.MQTT.QoS) //nolint:gosec // QoS validated to 0..2 by config
				deployer.SetPusher(mqttClient, mqtt.Topics{Prefix: cfg.MQTT.TopicPrefix}, qos)
			}
		}
	} else {
		log.Info("config path not set, publishing disabled")
	}

	// HTTP API server
	serverDeps := api.Deps{
		Config:    cfg.API,
		Logger:    log,
		Entities:  ha,
		Devices:   engine,
		Validator: orchestrator,
		Layouts:   layouts,
		Importer:  imp,
		Version:   version,
	}
	if deployer != nil {
		serverDeps.Deployer = deployer
	}

	server, err := api.New(serverDeps)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HASPDESIGNER_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HASPDESIGNER_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
