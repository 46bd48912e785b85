package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Advisor AdvisorConfig `yaml:"advisor"`
}

type StorageConfig struct {
	// Dir holds workouts.json, progress.json and the import ledger.
	Dir string `yaml:"dir"`
	// VaultDir is where generated daily notes are written.
	VaultDir string `yaml:"vault_dir"`
}

type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type AdvisorConfig struct {
	URL            string `yaml:"url"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the advisor round-trip timeout.
func (a AdvisorConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Default returns the configuration used when no config file exists.
// The advisor API key is deliberately empty: no key means no advisor.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Storage: StorageConfig{
			Dir:      filepath.Join(home, ".liftplan"),
			VaultDir: filepath.Join(home, ".liftplan", "daily_notes"),
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Advisor: AdvisorConfig{
			URL:            "https://api.openai.com/v1/chat/completions",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 30,
		},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix LIFTPLAN_ and underscore-separated
// paths:
//
//	LIFTPLAN_STORAGE_DIR, LIFTPLAN_VAULT_DIR,
//	LIFTPLAN_SERVER_HOST, LIFTPLAN_SERVER_PORT, LIFTPLAN_SERVER_API_KEY,
//	LIFTPLAN_ADVISOR_URL, LIFTPLAN_ADVISOR_MODEL,
//	LIFTPLAN_ADVISOR_API_KEY, LIFTPLAN_ADVISOR_TIMEOUT
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except a missing file falls back to defaults plus
// env overrides. The CLI works out of the box without a config file.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		applyEnvOverrides(cfg)
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("config validation: %w", err)
		}
		return cfg, nil
	}
	return Load(path)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTPLAN_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("LIFTPLAN_VAULT_DIR"); v != "" {
		cfg.Storage.VaultDir = v
	}
	if v := os.Getenv("LIFTPLAN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTPLAN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTPLAN_SERVER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("LIFTPLAN_ADVISOR_URL"); v != "" {
		cfg.Advisor.URL = v
	}
	if v := os.Getenv("LIFTPLAN_ADVISOR_MODEL"); v != "" {
		cfg.Advisor.Model = v
	}
	if v := os.Getenv("LIFTPLAN_ADVISOR_API_KEY"); v != "" {
		cfg.Advisor.APIKey = v
	}
	if v := os.Getenv("LIFTPLAN_ADVISOR_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Advisor.TimeoutSeconds = secs
		}
	}
}

func (c *Config) validate() error {
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required")
	}
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Advisor.APIKey != "" && c.Advisor.URL == "" {
		return fmt.Errorf("advisor.url is required when advisor.api_key is set")
	}
	return nil
}

// WorkoutsPath returns the catalog file path.
func (c *Config) WorkoutsPath() string {
	return filepath.Join(c.Storage.Dir, "workouts.json")
}

// ProgressPath returns the progress log file path.
func (c *Config) ProgressPath() string {
	return filepath.Join(c.Storage.Dir, "progress.json")
}
