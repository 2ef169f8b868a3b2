// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultPort      = 8080
	DefaultDBHost    = "localhost"
	DefaultDBPort    = 5432
	DefaultDBUser    = "todoweb"
	DefaultDBName    = "todoweb"
	DefaultDBSSLMode = "disable"
)

// Config holds the full configuration for todoweb.
type Config struct {
	// Port the HTTP server listens on.
	Port int `toml:"port"`

	DB DBConfig `toml:"db"`
}

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
}

// Load reads the TOML file at path if it exists, fills in defaults for
// anything unset, and then applies TODOWEB_* environment overrides.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	setDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.DB.Host == "" {
		cfg.DB.Host = DefaultDBHost
	}
	if cfg.DB.Port == 0 {
		cfg.DB.Port = DefaultDBPort
	}
	if cfg.DB.User == "" {
		cfg.DB.User = DefaultDBUser
	}
	if cfg.DB.Name == "" {
		cfg.DB.Name = DefaultDBName
	}
	if cfg.DB.SSLMode == "" {
		cfg.DB.SSLMode = DefaultDBSSLMode
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TODOWEB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("TODOWEB_DB_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv("TODOWEB_DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.DB.Port = p
		}
	}
	if v := os.Getenv("TODOWEB_DB_USER"); v != "" {
		cfg.DB.User = v
	}
	if v := os.Getenv("TODOWEB_DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("TODOWEB_DB_NAME"); v != "" {
		cfg.DB.Name = v
	}
	if v := os.Getenv("TODOWEB_DB_SSLMODE"); v != "" {
		cfg.DB.SSLMode = v
	}
}

// DSN renders the connection string consumed by the postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}
