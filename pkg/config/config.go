package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Inspect   InspectConfig   `mapstructure:"inspect"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig contains HTTP façade configuration
type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	SessionAPIKey string `mapstructure:"session_api_key"`
}

// InspectConfig bounds the inspection operations. MaxDepth < 0 means
// unbounded traversal; MaxSampleElements caps every dataset read.
type InspectConfig struct {
	MaxDepth          int `mapstructure:"max_depth"`
	MaxSampleElements int `mapstructure:"max_sample_elements"`
}

// TelemetryConfig contains telemetry configuration
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Load loads the configuration from viper
func Load() (*Config, error) {
	cfg := &Config{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8000)

	viper.SetDefault("inspect.max_depth", -1)
	viper.SetDefault("inspect.max_sample_elements", 1000)

	viper.SetDefault("telemetry.enabled", false)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)

	viper.BindEnv("server.session_api_key", "SESSION_API_KEY")
	viper.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func validate(cfg *Config) error {
	if cfg.Inspect.MaxSampleElements <= 0 {
		return fmt.Errorf("inspect.max_sample_elements must be positive, got %d",
			cfg.Inspect.MaxSampleElements)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	return nil
}
