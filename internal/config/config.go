// Package config holds the runtime configuration shared by the rafscope
// subcommands. Flags are the primary source; a YAML file carries the
// analysis tunables and environment variables supply secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a rafscope run.
type Config struct {
	DSN        string
	ListenAddr string
	LogFormat  string // "text" or "json"

	MembersFile string
	ClaimsFile  string

	AnthropicAPIKey  string
	NarrativeModel   string        `yaml:"narrative_model"`
	NarrativeTimeout time.Duration `yaml:"narrative_timeout"`
	BatchTopN        int           `yaml:"batch_top_n"` // risk-agent batch size
}

// yamlConfig is the on-disk YAML structure for tunables.
type yamlConfig struct {
	NarrativeModel   string `yaml:"narrative_model"`
	NarrativeTimeout string `yaml:"narrative_timeout"` // Go duration string
	BatchTopN        int    `yaml:"batch_top_n"`
}

// FromEnv seeds secrets from the environment. Flag values set later win.
func (c *Config) FromEnv() {
	if c.DSN == "" {
		c.DSN = os.Getenv("DATABASE_URL")
	}
	if c.AnthropicAPIKey == "" {
		c.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}

// LoadFromFile reads a YAML tunables file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.NarrativeModel != "" {
		c.NarrativeModel = yc.NarrativeModel
	}
	if yc.NarrativeTimeout != "" {
		d, err := time.ParseDuration(yc.NarrativeTimeout)
		if err != nil {
			return fmt.Errorf("invalid narrative_timeout %q: %w", yc.NarrativeTimeout, err)
		}
		c.NarrativeTimeout = d
	}
	if yc.BatchTopN < 0 {
		return fmt.Errorf("batch_top_n must be non-negative, got %d", yc.BatchTopN)
	}
	if yc.BatchTopN > 0 {
		c.BatchTopN = yc.BatchTopN
	}
	return nil
}

// ValidateFiles checks that the member and claim dataset files exist.
func (c *Config) ValidateFiles() error {
	if c.MembersFile == "" {
		return fmt.Errorf("--members is required")
	}
	if _, err := os.Stat(c.MembersFile); err != nil {
		return fmt.Errorf("members file not accessible: %w", err)
	}
	if c.ClaimsFile != "" {
		if _, err := os.Stat(c.ClaimsFile); err != nil {
			return fmt.Errorf("claims file not accessible: %w", err)
		}
	}
	return nil
}

// ValidateDSN checks that a database connection string is configured.
func (c *Config) ValidateDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}
