package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that behavior.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Booleans that default to true are seeded before unmarshalling so an
	// absent key keeps the default and an explicit "false" still wins.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention ESPRUNE_SECTION_FIELD (e.g., ESPRUNE_MAIL_RELAY) and always take
// precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	ApplyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. ESPRUNE_NODES takes a comma-separated list.
func ApplyEnvOverrides(cfg *Config) {
	if val := os.Getenv("ESPRUNE_NODES"); val != "" {
		var nodes []string
		for _, n := range strings.Split(val, ",") {
			if n = strings.TrimSpace(n); n != "" {
				nodes = append(nodes, n)
			}
		}
		cfg.Nodes = nodes
	}
	if val := os.Getenv("ESPRUNE_KEEP_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.KeepDays = i
		}
	}
	if val := os.Getenv("ESPRUNE_PREFIX"); val != "" {
		cfg.Prefix = val
	}
	if val := os.Getenv("ESPRUNE_SCHEDULE"); val != "" {
		cfg.Schedule = val
	}

	// Mail overrides
	if val := os.Getenv("ESPRUNE_MAIL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Mail.Enabled = b
		}
	}
	if val := os.Getenv("ESPRUNE_MAIL_RELAY"); val != "" {
		cfg.Mail.Relay = val
	}
	if val := os.Getenv("ESPRUNE_MAIL_FROM"); val != "" {
		cfg.Mail.From = val
	}
	if val := os.Getenv("ESPRUNE_MAIL_TO"); val != "" {
		cfg.Mail.To = val
	}
	if val := os.Getenv("ESPRUNE_MAIL_SUBJECT"); val != "" {
		cfg.Mail.Subject = val
	}

	// Telemetry overrides
	if val := os.Getenv("ESPRUNE_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("ESPRUNE_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("ESPRUNE_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("ESPRUNE_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
