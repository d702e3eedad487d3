// Package config provides Viper-based configuration loading for sheetsmith.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig selects and parameterizes the sheet persistence backend.
type StorageConfig struct {
	// Backend is the persistence backend: "memory" or "postgres".
	Backend string `mapstructure:"backend"`
	// Postgres holds connection settings; ignored when Backend is "memory".
	Postgres DatabaseConfig `mapstructure:"postgres"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ContentConfig holds master-data locations.
type ContentConfig struct {
	// CatalogRegistry is the path to the YAML registry describing every
	// master dataset category, its schema, and its JSON source file.
	CatalogRegistry string `mapstructure:"catalog_registry"`
}

// ShareConfig holds share-URL encoding settings.
type ShareConfig struct {
	// BaseURL is the prefix the encoded sheet fragment is appended to.
	BaseURL string `mapstructure:"base_url"`
	// WarnLength is the URL length above which a size warning is reported.
	// It is advisory, never a hard limit.
	WarnLength int `mapstructure:"warn_length"`
}

// HistoryConfig holds sheet-history settings.
type HistoryConfig struct {
	// MaxEntries is the cap on retained history records per sheet type.
	// Appending beyond the cap evicts the oldest entry.
	MaxEntries int `mapstructure:"max_entries"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Content ContentConfig `mapstructure:"content"`
	Share   ShareConfig   `mapstructure:"share"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateStorage(c.Storage); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateShare(c.Share); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateHistory(c.History); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	switch s.Backend {
	case "memory":
		return nil
	case "postgres":
		return validateDatabase(s.Postgres)
	default:
		return fmt.Errorf("storage.backend must be one of [memory, postgres], got %q", s.Backend)
	}
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "storage.postgres.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("storage.postgres.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "storage.postgres.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "storage.postgres.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("storage.postgres.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("storage.postgres.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("storage.postgres.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "storage.postgres.min_conns must not exceed storage.postgres.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.CatalogRegistry == "" {
		return errors.New("content.catalog_registry must not be empty")
	}
	return nil
}

func validateShare(s ShareConfig) error {
	var errs []string
	if s.BaseURL == "" {
		errs = append(errs, "share.base_url must not be empty")
	}
	if s.WarnLength < 1 {
		errs = append(errs, fmt.Sprintf("share.warn_length must be >= 1, got %d", s.WarnLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateHistory(h HistoryConfig) error {
	if h.MaxEntries < 1 {
		return fmt.Errorf("history.max_entries must be >= 1, got %d", h.MaxEntries)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SHEETSMITH_ prefix
	v.SetEnvPrefix("SHEETSMITH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "memory")

	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.user", "sheetsmith")
	v.SetDefault("storage.postgres.password", "sheetsmith")
	v.SetDefault("storage.postgres.name", "sheetsmith")
	v.SetDefault("storage.postgres.sslmode", "disable")
	v.SetDefault("storage.postgres.max_conns", 10)
	v.SetDefault("storage.postgres.min_conns", 2)
	v.SetDefault("storage.postgres.max_conn_lifetime", "1h")

	v.SetDefault("content.catalog_registry", "data/catalog.yaml")

	v.SetDefault("share.base_url", "https://encore-rpg.example/sheet")
	v.SetDefault("share.warn_length", 8000)

	v.SetDefault("history.max_entries", 50)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
