package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete disco configuration (v2 schema)
type Config struct {
	Version       int    `json:"version" mapstructure:"version"`
	WorkspaceRoot string `json:"workspaceRoot" mapstructure:"workspaceRoot"`

	Store     StoreConfig     `json:"store" mapstructure:"store"`
	Search    SearchConfig    `json:"search" mapstructure:"search"`
	Traversal TraversalConfig `json:"traversal" mapstructure:"traversal"`
	Export    ExportConfig    `json:"export" mapstructure:"export"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// StoreConfig contains catalog store configuration
type StoreConfig struct {
	Path          string `json:"path" mapstructure:"path"`
	BusyTimeoutMs int    `json:"busyTimeoutMs" mapstructure:"busyTimeoutMs"`
}

// SearchConfig contains keyword search configuration
type SearchConfig struct {
	MaxResults   int `json:"maxResults" mapstructure:"maxResults"`
	MaxResultsMD int `json:"maxResultsMd" mapstructure:"maxResultsMd"`
}

// TraversalConfig contains graph traversal configuration
type TraversalConfig struct {
	MaxHops     int `json:"maxHops" mapstructure:"maxHops"`
	PathMaxHops int `json:"pathMaxHops" mapstructure:"pathMaxHops"`
}

// ExportConfig contains catalog export configuration
type ExportConfig struct {
	Compress bool `json:"compress" mapstructure:"compress"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:       2,
		WorkspaceRoot: ".",
		Store: StoreConfig{
			Path:          ".disco/disco.db",
			BusyTimeoutMs: 5000,
		},
		Search: SearchConfig{
			MaxResults:   10,
			MaxResultsMD: 10,
		},
		Traversal: TraversalConfig{
			MaxHops:     2,
			PathMaxHops: 3,
		},
		Export: ExportConfig{
			Compress: false,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .disco/config.json
func LoadConfig(workspaceRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 2)
	v.SetDefault("workspaceRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workspaceRoot, ".disco"))

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .disco/config.json
func (c *Config) Save(workspaceRoot string) error {
	configPath := filepath.Join(workspaceRoot, ".disco", "config.json")

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 2 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Store.Path == "" {
		return &ConfigError{Field: "store.path", Message: "store path must not be empty"}
	}
	if c.Search.MaxResults <= 0 {
		return &ConfigError{Field: "search.maxResults", Message: "must be positive"}
	}
	if c.Traversal.MaxHops < 0 || c.Traversal.PathMaxHops < 0 {
		return &ConfigError{Field: "traversal", Message: "hop budgets must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
