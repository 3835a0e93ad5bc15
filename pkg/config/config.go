// Package config loads service settings from defaults, an optional .env
// file, an optional YAML file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/missionsim/pkg/validation"
)

// Version is reported by the health endpoint and the CLI.
const Version = "0.1.0"

// DefaultOrigin is used when no allowed origins are configured.
const DefaultOrigin = "http://localhost:3000"

// Environments accepted in ENVIRONMENT.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds the service settings.
type Config struct {
	Environment     string        `yaml:"environment"`
	Port            int           `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	LogLevel        string        `yaml:"log_level"`
	DatabaseURL     string        `yaml:"database_url"`
	DefaultTopN     int           `yaml:"default_top_n"`
	SeedStub        *bool         `yaml:"seed_stub_architecture"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the development defaults.
func Default() *Config {
	return &Config{
		Environment:     EnvDevelopment,
		Port:            8000,
		AllowedOrigins:  []string{DefaultOrigin},
		LogLevel:        "info",
		DefaultTopN:     10,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Load builds a Config. A .env file in the working directory is loaded into
// the environment if present; it never overrides variables already set.
// path names an optional YAML file and may be empty. Environment variables
// take precedence over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("ENVIRONMENT"); ok && v != "" {
		c.Environment = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Port = port
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		c.AllowedOrigins = ParseAllowedOrigins(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("DATABASE_URL"); ok {
		c.DatabaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup("SIMULATOR_TOP_N"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SIMULATOR_TOP_N: %w", err)
		}
		c.DefaultTopN = n
	}
	if v, ok := lookup("SEED_STUB_ARCHITECTURE"); ok && v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SEED_STUB_ARCHITECTURE: %w", err)
		}
		c.SeedStub = &seed
	}
	for _, t := range []struct {
		key string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", &c.ReadTimeout},
		{"WRITE_TIMEOUT", &c.WriteTimeout},
		{"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout},
	} {
		if v, ok := lookup(t.key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", t.key, err)
			}
			*t.dst = d
		}
	}
	return nil
}

// fillDefaults restores defaults for a port or timeouts left at zero.
func (c *Config) fillDefaults() {
	d := Default()
	c.Port = validation.DefaultOrInt(c.Port, d.Port)
	c.ReadTimeout = validation.DefaultOrDuration(c.ReadTimeout, d.ReadTimeout)
	c.WriteTimeout = validation.DefaultOrDuration(c.WriteTimeout, d.WriteTimeout)
	c.ShutdownTimeout = validation.DefaultOrDuration(c.ShutdownTimeout, d.ShutdownTimeout)
}

// ParseAllowedOrigins splits a comma-separated origin list, trimming
// whitespace and dropping blanks. An empty result falls back to DefaultOrigin.
func ParseAllowedOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if o := strings.TrimSpace(part); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{DefaultOrigin}
	}
	return origins
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// ShouldSeedStub reports whether the development stub architecture is
// stored at startup. Unless set explicitly it is seeded outside production.
func (c *Config) ShouldSeedStub() bool {
	if c.SeedStub != nil {
		return *c.SeedStub
	}
	return !c.IsProduction()
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate checks the settings.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		OneOf("Environment", c.Environment, []string{EnvDevelopment, EnvStaging, EnvProduction, EnvTest}).
		RangeInt("Port", c.Port, 1, 65535).
		OneOf("LogLevel", c.LogLevel, []string{"debug", "info", "warn", "warning", "error"}).
		Positive("DefaultTopN", c.DefaultTopN).
		MinDuration("ReadTimeout", c.ReadTimeout, time.Second).
		MinDuration("WriteTimeout", c.WriteTimeout, time.Second).
		MinDuration("ShutdownTimeout", c.ShutdownTimeout, time.Second).
		Custom("AllowedOrigins", func() error { return validateOrigins(c.AllowedOrigins) }).
		When(c.DatabaseURL != "", func(v *validation.ConfigValidator) {
			v.Custom("DatabaseURL", func() error { return validateDatabaseURL(c.DatabaseURL) })
		}).
		Validate()
}

func validateOrigins(origins []string) error {
	if len(origins) == 0 {
		return errors.New("at least one origin is required")
	}
	for _, o := range origins {
		if o == "*" {
			continue
		}
		u, err := url.Parse(o)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("origin %q is not an http(s) URL", o)
		}
	}
	return nil
}

func validateDatabaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}
