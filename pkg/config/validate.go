package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "mail.relay").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	if len(cfg.Nodes) == 0 {
		errs = append(errs, FieldError{
			Field:   "nodes",
			Message: "at least one search-cluster node is required",
		})
	}
	for i, node := range cfg.Nodes {
		if strings.TrimSpace(node) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("nodes[%d]", i),
				Message: "node address must not be empty",
			})
		}
	}

	if cfg.KeepDays <= 0 {
		errs = append(errs, FieldError{
			Field:   "keep_days",
			Message: "retention window must be a positive number of days",
		})
	}

	if cfg.Prefix == "" {
		errs = append(errs, FieldError{
			Field:   "prefix",
			Message: "index name pattern is required",
		})
	}

	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "schedule",
				Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule, err),
			})
		}
	}

	errs = append(errs, validateMail(&cfg.Mail)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateMail validates mail notification configuration. Relay and address
// fields are only required when notification is enabled.
func validateMail(cfg *MailConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return nil
	}

	if cfg.Relay == "" {
		errs = append(errs, FieldError{
			Field:   "mail.relay",
			Message: "SMTP relay address is required when mail is enabled",
		})
	}
	if cfg.From == "" {
		errs = append(errs, FieldError{
			Field:   "mail.from",
			Message: "sender address is required when mail is enabled",
		})
	}
	if cfg.To == "" {
		errs = append(errs, FieldError{
			Field:   "mail.to",
			Message: "recipient address is required when mail is enabled",
		})
	}
	if cfg.Subject == "" {
		errs = append(errs, FieldError{
			Field:   "mail.subject",
			Message: "subject is required when mail is enabled",
		})
	}

	return errs
}

// validateTelemetry validates logging and metrics configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown log level %q (expected debug, info, warn, or error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown log format %q (expected json or text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.listen_address",
			Message: "listen address is required when metrics are enabled",
		})
	}

	return errs
}
