package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "Missing bakery name",
			mutate:  func(c *Config) { c.Bakery.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "Missing currency",
			mutate:  func(c *Config) { c.Bakery.Currency = "" },
			wantErr: "currency is required",
		},
		{
			name:    "Negative default markup",
			mutate:  func(c *Config) { c.Pricing.DefaultMarkupPercent = -5 },
			wantErr: "default_markup_percent",
		},
		{
			name:    "Zero bulk bound",
			mutate:  func(c *Config) { c.Pricing.MaxBulkIncreasePercent = 0 },
			wantErr: "max_bulk_increase_percent",
		},
		{
			name:    "Negative cache TTL",
			mutate:  func(c *Config) { c.Cache.TTLSeconds = -1 },
			wantErr: "ttl_seconds",
		},
		{
			name:    "Invalid color scheme",
			mutate:  func(c *Config) { c.Display.ColorScheme = "neon" },
			wantErr: "color_scheme",
		},
		{
			name:    "Invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "log level",
		},
		{
			name:    "Missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bakery.toml")

	cfg := Default()
	cfg.Bakery.Name = "Test Bakery"
	cfg.Pricing.DefaultMarkupPercent = 45

	if err := Save(cfg, path); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	loaded, loadedPath, err := Load(path, false)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if loadedPath != path {
		t.Errorf("expected path %s, got %s", path, loadedPath)
	}
	if loaded.Bakery.Name != "Test Bakery" {
		t.Errorf("expected bakery name round-tripped, got %q", loaded.Bakery.Name)
	}
	if loaded.Pricing.DefaultMarkupPercent != 45 {
		t.Errorf("expected markup 45, got %v", loaded.Pricing.DefaultMarkupPercent)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"), false)
	if err == nil {
		t.Fatal("expected error for missing explicit path")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %T", err)
	}
}

func TestLoad_InvalidContent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bakery.toml")
	if err := os.WriteFile(path, []byte("[pricing]\nmax_bulk_increase_percent = -3\n"), 0640); err != nil {
		t.Fatal(err)
	}

	_, _, err := Load(path, false)
	if err == nil {
		t.Fatal("expected validation failure")
	}
}
