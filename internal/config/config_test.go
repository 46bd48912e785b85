package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
storage:
  dir: "/data/liftplan"
  vault_dir: "/data/vault"
server:
  host: "0.0.0.0"
  port: 9090
  api_key: "test-key-123"
advisor:
  url: "https://llm.example.com/v1/chat/completions"
  model: "test-model"
  api_key: "sk-test"
  timeout_seconds: 10
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all
// fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Dir != "/data/liftplan" {
		t.Errorf("storage dir = %q", cfg.Storage.Dir)
	}
	if cfg.Storage.VaultDir != "/data/vault" {
		t.Errorf("vault dir = %q", cfg.Storage.VaultDir)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.APIKey != "test-key-123" {
		t.Errorf("api key = %q", cfg.Server.APIKey)
	}
	if cfg.Advisor.Model != "test-model" {
		t.Errorf("advisor model = %q", cfg.Advisor.Model)
	}
	if cfg.Advisor.Timeout() != 10*time.Second {
		t.Errorf("advisor timeout = %v, want 10s", cfg.Advisor.Timeout())
	}
}

// TestLoadPartialKeepsDefaults verifies unset fields keep their default
// values.
func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "storage:\n  dir: \"/data\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults = %s:%d, want 127.0.0.1:8080", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Advisor.APIKey != "" {
		t.Errorf("advisor key should default to empty, got %q", cfg.Advisor.APIKey)
	}
	if cfg.Advisor.Timeout() != 30*time.Second {
		t.Errorf("advisor timeout = %v, want default 30s", cfg.Advisor.Timeout())
	}
}

// TestEnvOverrides verifies environment variables win over file values.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("LIFTPLAN_STORAGE_DIR", "/env/data")
	t.Setenv("LIFTPLAN_SERVER_PORT", "7070")
	t.Setenv("LIFTPLAN_ADVISOR_API_KEY", "sk-env")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Dir != "/env/data" {
		t.Errorf("storage dir = %q, want env override", cfg.Storage.Dir)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Advisor.APIKey != "sk-env" {
		t.Errorf("advisor key = %q, want env override", cfg.Advisor.APIKey)
	}
}

// TestValidation verifies required-field checks.
func TestValidation(t *testing.T) {
	if _, err := Load(writeTemp(t, "storage:\n  dir: \"\"\n")); err == nil {
		t.Error("expected error for empty storage.dir")
	}

	yaml := "advisor:\n  url: \"\"\n  api_key: \"sk-test\"\n"
	if _, err := Load(writeTemp(t, yaml)); err == nil {
		t.Error("expected error for advisor key without url")
	}
}

// TestLoadOrDefault verifies a missing file yields defaults plus env
// overrides instead of an error.
func TestLoadOrDefault(t *testing.T) {
	t.Setenv("LIFTPLAN_SERVER_API_KEY", "env-key")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
	if cfg.Server.APIKey != "env-key" {
		t.Errorf("api key = %q, want env override", cfg.Server.APIKey)
	}
	if cfg.WorkoutsPath() != filepath.Join(cfg.Storage.Dir, "workouts.json") {
		t.Errorf("workouts path = %q", cfg.WorkoutsPath())
	}
}
