package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 2 {
		t.Errorf("Version = %d, want 2", cfg.Version)
	}

	if cfg.Store.Path != ".disco/disco.db" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, ".disco/disco.db")
	}
	if cfg.Store.BusyTimeoutMs <= 0 {
		t.Error("BusyTimeoutMs should be positive")
	}

	if cfg.Search.MaxResults <= 0 {
		t.Error("Search.MaxResults should be positive")
	}
	if cfg.Traversal.MaxHops <= 0 {
		t.Error("Traversal.MaxHops should be positive")
	}

	if cfg.Export.Compress {
		t.Error("Export compression should be off by default")
	}

	if cfg.Logging.Format != "human" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "human")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"version 1 unsupported", func(c *Config) { c.Version = 1 }, true},
		{"version 0 unsupported", func(c *Config) { c.Version = 0 }, true},
		{"empty store path", func(c *Config) { c.Store.Path = "" }, true},
		{"zero max results", func(c *Config) { c.Search.MaxResults = 0 }, true},
		{"negative hop budget", func(c *Config) { c.Traversal.MaxHops = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr && err == nil {
				t.Error("Validate() should return error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() returned unexpected error: %v", err)
			}

			if err != nil {
				if _, ok := err.(*ConfigError); !ok {
					t.Errorf("Validate() error type = %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{
		Field:   "version",
		Message: "unsupported version 99",
	}

	got := err.Error()
	want := "config error in field 'version': unsupported version 99"

	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	// Should return default config when no config file exists
	if cfg.Version != 2 {
		t.Errorf("Version = %d, want 2 (default)", cfg.Version)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	discoDir := filepath.Join(tmpDir, ".disco")
	if err := os.MkdirAll(discoDir, 0755); err != nil {
		t.Fatalf("Failed to create .disco dir: %v", err)
	}

	configContent := `{
		"version": 2,
		"workspaceRoot": ".",
		"store": {"path": "custom/catalog.db", "busyTimeoutMs": 1000},
		"search": {"maxResults": 25},
		"traversal": {"maxHops": 4}
	}`

	configPath := filepath.Join(discoDir, "config.json")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Store.Path != "custom/catalog.db" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, "custom/catalog.db")
	}
	if cfg.Search.MaxResults != 25 {
		t.Errorf("Search.MaxResults = %d, want 25", cfg.Search.MaxResults)
	}
	if cfg.Traversal.MaxHops != 4 {
		t.Errorf("Traversal.MaxHops = %d, want 4", cfg.Traversal.MaxHops)
	}
}

func TestConfig_Save(t *testing.T) {
	tmpDir := t.TempDir()
	discoDir := filepath.Join(tmpDir, ".disco")
	if err := os.MkdirAll(discoDir, 0755); err != nil {
		t.Fatalf("Failed to create .disco dir: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Search.MaxResults = 42

	err := cfg.Save(tmpDir)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	configPath := filepath.Join(discoDir, "config.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	loaded, err := LoadConfig(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig() after save error = %v", err)
	}

	if loaded.Search.MaxResults != 42 {
		t.Errorf("Loaded Search.MaxResults = %d, want 42", loaded.Search.MaxResults)
	}
}
