// Package config provides configuration loading, validation, and file
// watching for esprune. Configuration is sourced from a YAML file with
// ESPRUNE_* environment variable overrides applied on top.
package config
