// Package config loads the demo's configuration from YAML with environment
// overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all grammar-demo configuration.
type Config struct {
	// Grammar configures the remote grammar-check service.
	Grammar GrammarConfig `yaml:"grammar"`

	// AI configures the coreference collaborator.
	AI AIConfig `yaml:"ai"`

	// POV configures point-of-view alignment.
	POV POVConfig `yaml:"pov"`

	// Cache configures the coreference result cache.
	Cache CacheConfig `yaml:"cache"`

	// Rules configures user-rule persistence.
	Rules RulesConfig `yaml:"rules"`

	// Logging configures logging.
	Logging LoggingConfig `yaml:"logging"`
}

// GrammarConfig configures the remote grammar-check service.
type GrammarConfig struct {
	Enabled            bool     `yaml:"enabled"`
	BaseURL            string   `yaml:"base_url"`
	Language           string   `yaml:"language"`
	DisabledCategories []string `yaml:"disabled_categories"`
	Timeout            string   `yaml:"timeout"`
}

// AIConfig configures the coreference collaborator.
type AIConfig struct {
	Provider string `yaml:"provider"` // gemini, openai
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// POVConfig configures point-of-view alignment.
type POVConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CacheConfig configures the coreference result cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// RulesConfig configures user-rule persistence.
type RulesConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Grammar: GrammarConfig{
			Enabled:  false,
			BaseURL:  "http://localhost:8010",
			Language: "en-US",
			Timeout:  "10s",
		},
		AI: AIConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			Timeout:  "30s",
		},
		POV: POVConfig{
			Enabled: true,
		},
		Cache: CacheConfig{
			Capacity: 64,
		},
		Rules: RulesConfig{
			DatabasePath: "data/rules.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.AI.APIKey = key
		if c.AI.Provider == "" {
			c.AI.Provider = "gemini"
		}
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.AI.APIKey = key
		c.AI.Provider = "openai"
	}
	if url := os.Getenv("GRAMMAR_SERVICE_URL"); url != "" {
		c.Grammar.BaseURL = url
		c.Grammar.Enabled = true
	}
	if path := os.Getenv("GRAMMAR_DEMO_DB"); path != "" {
		c.Rules.DatabasePath = path
	}
}

// GetGrammarTimeout returns the grammar service timeout as a duration.
func (c *Config) GetGrammarTimeout() time.Duration {
	d, err := time.ParseDuration(c.Grammar.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetAITimeout returns the AI collaborator timeout as a duration.
func (c *Config) GetAITimeout() time.Duration {
	d, err := time.ParseDuration(c.AI.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
