// Package config provides configuration management for crumbwork.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
)

// Config holds the complete application configuration.
type Config struct {
	Bakery   BakeryConfig   `toml:"bakery"`
	Pricing  PricingConfig  `toml:"pricing"`
	Cache    CacheConfig    `toml:"cache"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`
}

// BakeryConfig contains bakery identity settings.
type BakeryConfig struct {
	Name     string `toml:"name"`
	Currency string `toml:"currency"` // display symbol, e.g. "€" or "$"
}

// PricingConfig contains pricing policy settings.
type PricingConfig struct {
	// DefaultMarkupPercent applies when a product is created without an
	// explicit markup, and when a refresh cannot derive a margin because
	// the product's previous cost was zero.
	DefaultMarkupPercent float64 `toml:"default_markup_percent"`

	// MaxBulkIncreasePercent bounds the bulk price-update operation.
	// The (0, max] bound is business policy, not arithmetic.
	MaxBulkIncreasePercent float64 `toml:"max_bulk_increase_percent"`

	// SKUPrefix prefixes generated product SKUs (e.g. PRD-0001).
	SKUPrefix string `toml:"sku_prefix"`
}

// CacheConfig controls derived-data cache lifetimes.
type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeWheat ColorScheme = "wheat"
	ColorSchemeRye   ColorScheme = "rye"
	ColorSchemePlain ColorScheme = "plain"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level      LogLevel `toml:"level"`
	File       string   `toml:"file"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Bakery.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("bakery: %w", err))
	}

	if err := c.Pricing.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pricing: %w", err))
	}

	if err := c.Cache.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cache: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the bakery configuration is valid.
func (b *BakeryConfig) Validate() error {
	var errs []error

	if b.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}

	if b.Currency == "" {
		errs = append(errs, errors.New("currency is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the pricing configuration is valid.
func (p *PricingConfig) Validate() error {
	var errs []error

	if p.DefaultMarkupPercent < 0 {
		errs = append(errs, errors.New("default_markup_percent must be non-negative"))
	}

	if p.MaxBulkIncreasePercent <= 0 {
		errs = append(errs, errors.New("max_bulk_increase_percent must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the cache configuration is valid.
func (c *CacheConfig) Validate() error {
	if c.TTLSeconds < 0 {
		return errors.New("ttl_seconds must be non-negative")
	}
	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeWheat: true,
		ColorSchemeRye:   true,
		ColorSchemePlain: true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	var errs []error

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		errs = append(errs, fmt.Errorf("invalid log level: %s", l.Level))
	}

	if l.MaxSizeMB < 0 {
		errs = append(errs, errors.New("max_size_mb must be non-negative"))
	}

	if l.MaxBackups < 0 {
		errs = append(errs, errors.New("max_backups must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Bakery: BakeryConfig{
			Name:     "Crumbwork Bakery",
			Currency: "€",
		},
		Pricing: PricingConfig{
			DefaultMarkupPercent:   60,
			MaxBulkIncreasePercent: 100,
			SKUPrefix:              "PRD",
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeWheat,
			DateFormat:  "2006-01-02",
		},
		Logging: LoggingConfig{
			Level:      LogLevelInfo,
			File:       "logs/crumbwork.log",
			MaxSizeMB:  10,
			MaxBackups: 5,
		},
		Database: DatabaseConfig{
			Path:                "bakery.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 30,
		},
	}
}
