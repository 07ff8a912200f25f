package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const minimalConfig = `
nodes:
  - es-data-01
  - es-data-02
mail:
  relay: relay.internal
  from: esprune@example.com
  to: ops@example.com
`

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if len(cfg.Nodes) != 2 || cfg.Nodes[0] != "es-data-01" {
		t.Errorf("nodes = %v", cfg.Nodes)
	}
	if cfg.KeepDays != DefaultKeepDays {
		t.Errorf("keep_days = %d, want default %d", cfg.KeepDays, DefaultKeepDays)
	}
	if cfg.Prefix != DefaultPrefix {
		t.Errorf("prefix = %q, want default %q", cfg.Prefix, DefaultPrefix)
	}
	if !cfg.Mail.Enabled {
		t.Error("mail should be enabled by default")
	}
	if cfg.Mail.Subject != DefaultMailSubject {
		t.Errorf("mail subject = %q, want default", cfg.Mail.Subject)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("logging level = %q, want default", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfig_ExplicitFalseWins(t *testing.T) {
	path := writeConfigFile(t, `
nodes:
  - es-data-01
mail:
  enabled: false
telemetry:
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Mail.Enabled {
		t.Error("explicit mail.enabled=false should override the default")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("explicit metrics.enabled=false should override the default")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "nodes: [unclosed")
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	// No nodes and mail enabled without relay details.
	path := writeConfigFile(t, "keep_days: 90\n")
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ESPRUNE_NODES", "es-a, es-b ,es-c")
	t.Setenv("ESPRUNE_KEEP_DAYS", "30")
	t.Setenv("ESPRUNE_PREFIX", "logstash-*")
	t.Setenv("ESPRUNE_MAIL_ENABLED", "false")
	t.Setenv("ESPRUNE_LOGGING_LEVEL", "debug")

	cfg := Default()
	cfg.Nodes = []string{"from-file"}
	ApplyEnvOverrides(cfg)

	if len(cfg.Nodes) != 3 || cfg.Nodes[1] != "es-b" {
		t.Errorf("nodes = %v, want trimmed comma-split list", cfg.Nodes)
	}
	if cfg.KeepDays != 30 {
		t.Errorf("keep_days = %d, want 30", cfg.KeepDays)
	}
	if cfg.Prefix != "logstash-*" {
		t.Errorf("prefix = %q", cfg.Prefix)
	}
	if cfg.Mail.Enabled {
		t.Error("ESPRUNE_MAIL_ENABLED=false should disable mail")
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	t.Setenv("ESPRUNE_KEEP_DAYS", "7")
	path := writeConfigFile(t, minimalConfig+"keep_days: 365\n")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() failed: %v", err)
	}
	if cfg.KeepDays != 7 {
		t.Errorf("keep_days = %d, environment should win over the file", cfg.KeepDays)
	}
}
