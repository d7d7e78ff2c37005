package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for HASP Designer.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	HomeAssistant HomeAssistantConfig `yaml:"homeassistant"`
	Designer      DesignerConfig      `yaml:"designer"`
	Database      DatabaseConfig      `yaml:"database"`
	API           APIConfig           `yaml:"api"`
	MQTT          MQTTConfig          `yaml:"mqtt"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// HomeAssistantConfig contains connection settings for the Home Assistant
// REST API. Token is a long-lived access token; it should come from the
// environment, not the config file.
type HomeAssistantConfig struct {
	BaseURL         string `yaml:"base_url"`
	Token           string `yaml:"token"`
	RequestTimeout  int    `yaml:"request_timeout"`
	EntityTimeout   int    `yaml:"entity_timeout"`
	RegistryTimeout int    `yaml:"registry_timeout"`
	RetryMax        int    `yaml:"retry_max"`
}

// DesignerConfig contains paths and limits for layout design and publishing.
type DesignerConfig struct {
	// ConfigPath is the directory shared with Home Assistant where published
	// JSONL page files and generated YAML packages are written.
	ConfigPath string `yaml:"config_path"`

	// EntityCheckConcurrency bounds parallel entity existence checks during
	// validation. Zero means the built-in default.
	EntityCheckConcurrency int `yaml:"entity_check_concurrency"`
}

// DatabaseConfig contains SQLite database settings for layout storage.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// MQTTConfig contains MQTT broker settings for pushing pages directly to
// openHASP plates. Optional; when disabled, publishing only writes files
// and triggers a Home Assistant reload.
type MQTTConfig struct {
	Enabled     bool           `yaml:"enabled"`
	Broker      BrokerConfig   `yaml:"broker"`
	Auth        MQTTAuthConfig `yaml:"auth"`
	QoS         int            `yaml:"qos"`
	TopicPrefix string         `yaml:"topic_prefix"`
}

// BrokerConfig contains MQTT broker connection details.
type BrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HASPDESIGNER_SECTION_KEY
// For example: HASPDESIGNER_HA_TOKEN, HASPDESIGNER_API_PORT
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		HomeAssistant: HomeAssistantConfig{
			BaseURL:         "http://homeassistant.local:8123",
			RequestTimeout:  10,
			EntityTimeout:   5,
			RegistryTimeout: 10,
			RetryMax:        2,
		},
		Designer: DesignerConfig{
			ConfigPath:             "/config/openhasp",
			EntityCheckConcurrency: 8,
		},
		Database: DatabaseConfig{
			Path:        "./data/haspdesigner.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8090,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		MQTT: MQTTConfig{
			Broker: BrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "haspdesigner",
			},
			QoS:         1,
			TopicPrefix: "hasp",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HASPDESIGNER_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Home Assistant
	if v := os.Getenv("HASPDESIGNER_HA_URL"); v != "" {
		cfg.HomeAssistant.BaseURL = v
	}
	if v := os.Getenv("HASPDESIGNER_HA_TOKEN"); v != "" {
		cfg.HomeAssistant.Token = v
	}

	// Designer
	if v := os.Getenv("HASPDESIGNER_CONFIG_PATH"); v != "" {
		cfg.Designer.ConfigPath = v
	}

	// Database
	if v := os.Getenv("HASPDESIGNER_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// API
	if v := os.Getenv("HASPDESIGNER_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("HASPDESIGNER_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// MQTT
	if v := os.Getenv("HASPDESIGNER_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("HASPDESIGNER_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("HASPDESIGNER_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	// Home Assistant validation — the token is required because every
	// validation run calls the HA API.
	if c.HomeAssistant.BaseURL == "" {
		errs = append(errs, "homeassistant.base_url is required")
	} else if _, err := url.Parse(c.HomeAssistant.BaseURL); err != nil {
		errs = append(errs, "homeassistant.base_url is not a valid URL")
	}
	if c.HomeAssistant.Token == "" {
		errs = append(errs, "homeassistant.token is required (set HASPDESIGNER_HA_TOKEN environment variable)")
	}

	if c.Designer.ConfigPath == "" {
		errs = append(errs, "designer.config_path is required")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required when mqtt is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetRequestTimeout returns the general HA request timeout as a Duration.
func (c *HomeAssistantConfig) GetRequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// GetEntityTimeout returns the per-entity existence check timeout as a Duration.
func (c *HomeAssistantConfig) GetEntityTimeout() time.Duration {
	return time.Duration(c.EntityTimeout) * time.Second
}

// GetRegistryTimeout returns the device registry lookup timeout as a Duration.
func (c *HomeAssistantConfig) GetRegistryTimeout() time.Duration {
	return time.Duration(c.RegistryTimeout) * time.Second
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
