package config

// Default values for configuration fields.
const (
	// Retention defaults
	DefaultKeepDays = 180
	DefaultPrefix   = "filebeat-*"

	// Mail defaults
	DefaultMailEnabled = true
	DefaultMailSubject = "Deleted search indices"

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsEnabled = true
	DefaultMetricsListen  = "127.0.0.1:9108"
	DefaultMetricsPath    = "/metrics"
)

// Default returns a Config populated with default values and no nodes.
// Callers must supply at least one node before the config validates.
func Default() *Config {
	cfg := &Config{}
	cfg.Mail.Enabled = DefaultMailEnabled
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in default values for any zero-valued fields.
// Booleans that default to true are handled in LoadConfig via yaml
// pre-population, so ApplyDefaults only touches fields whose zero value
// is never a deliberate setting.
func ApplyDefaults(cfg *Config) {
	if cfg.KeepDays == 0 {
		cfg.KeepDays = DefaultKeepDays
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.Mail.Subject == "" {
		cfg.Mail.Subject = DefaultMailSubject
	}
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListen
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
