package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file.
const FileName = "dink.yaml"

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Config represents the top-level dink.yaml configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Storage   StorageConfig   `yaml:"storage"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
	Log       LogConfig       `yaml:"log"`
	Git       GitConfig       `yaml:"git"`
}

// WorkspaceConfig names the workspace.
type WorkspaceConfig struct {
	Name string `yaml:"name"`
}

// LedgerConfig holds the presentation currency and the active tenant.
type LedgerConfig struct {
	Currency      string `yaml:"currency"` // ISO 4217, e.g. "AOA"
	ActiveCompany string `yaml:"active_company"`
	ActiveProfile string `yaml:"active_profile"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "csv" or "sqlite"
	Path    string `yaml:"path"`    // relative to the workspace root
}

// AdvisorConfig configures the advisory text generator.
type AdvisorConfig struct {
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	APIKeyEnv string        `yaml:"api_key_env"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a dink.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the fields that select behaviour.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "", BackendCSV, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Advisor.Timeout < 0 {
		return fmt.Errorf("negative advisor timeout %s", c.Advisor.Timeout)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(name string) *Config {
	return &Config{
		Workspace: WorkspaceConfig{Name: name},
		Ledger: LedgerConfig{
			Currency:      "AOA",
			ActiveCompany: "default",
			ActiveProfile: "admin",
		},
		Storage: StorageConfig{
			Backend: BackendCSV,
			Path:    "companies",
		},
		Advisor: AdvisorConfig{
			Model:     "gemini-2.5-flash",
			Timeout:   30 * time.Second,
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Log: LogConfig{Level: "info"},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "DINK",
			AuthorEmail: "ledger@dink.ao",
		},
	}
}
