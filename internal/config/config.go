// Package config loads the farm engine's process configuration.
//
// Design reference: udisondev/la2go internal/config/config.go — a plain
// YAML-decoded struct, a Default...() constructor with sane values, and a
// Load function that overlays a file on top of the defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/farmforge/engine/internal/whitelist"
)

// Config is the farm engine's process-wide configuration (§6).
type Config struct {
	// Network toggles the whitelist gate on sync-like operations.
	Network whitelist.Network `yaml:"network"`

	LogLevel string `yaml:"log_level"`

	Database DatabaseConfig `yaml:"database"`

	// WhitelistPath is the YAML file of eligible addresses, consulted only
	// when Network == mainnet.
	WhitelistPath string `yaml:"whitelist_path"`

	// Storage selects the repository backend cmd/farmengine wires up:
	// "memory" (the default, an in-process pgrepo.Fake) or "postgres" (a
	// real pgrepo.Repository against Database, migrated on startup).
	Storage string `yaml:"storage"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the reference
// repository adapter (internal/pgrepo).
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns a Config with development-friendly defaults.
func Default() Config {
	return Config{
		Network:       whitelist.Testnet,
		LogLevel:      "info",
		WhitelistPath: "config/whitelist.yaml",
		Storage:       "memory",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "farmengine",
			Password: "farmengine",
			DBName:   "farmengine",
			SSLMode:  "disable",
		},
	}
}

// Load reads a YAML config file and overlays it on top of Default().
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return cfg, nil
}
