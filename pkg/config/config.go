package config

// Config is the root configuration structure for esprune.
// It describes the node fleet to clean, the retention window, the index
// name pattern, mail notification settings, and telemetry settings.
type Config struct {
	// Nodes is the ordered list of search-cluster endpoints to process.
	// Each entry is a hostname, host:port pair, or full URL
	// (e.g., "es-data-01", "10.0.4.7:9200", "http://es-data-01:9200").
	// At least one node is required.
	Nodes []string `yaml:"nodes"`

	// KeepDays is the retention window in days. Indices whose embedded
	// date is strictly older than today minus KeepDays are deleted.
	// Default: 180
	KeepDays int `yaml:"keep_days"`

	// Prefix is the wildcard index name pattern to match.
	// Default: "filebeat-*"
	Prefix string `yaml:"prefix"`

	// Schedule is an optional cron expression. When set, esprune runs as
	// a daemon and executes a cleanup cycle on this schedule.
	// When empty, esprune performs a single run and exits.
	// Example: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`

	// Mail contains notification settings for the end-of-run report.
	Mail MailConfig `yaml:"mail"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// MailConfig contains SMTP notification settings. The relay is an
// unauthenticated submission endpoint (typically a local MTA); esprune
// never handles mail credentials.
type MailConfig struct {
	// Enabled controls whether a report email is sent after each run.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Relay is the SMTP relay address in host or host:port form.
	// Port 25 is assumed when omitted.
	Relay string `yaml:"relay"`

	// From is the envelope sender address.
	From string `yaml:"from"`

	// To is the recipient address for the run report.
	To string `yaml:"to"`

	// Subject is the report email subject line.
	// Default: "Deleted search indices"
	Subject string `yaml:"subject"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	// Metrics are only served in scheduled (daemon) mode.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served in
	// scheduled mode.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the metrics HTTP listener.
	// Default: "127.0.0.1:9108"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
