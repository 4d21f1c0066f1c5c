// Package config loads njord's HCL configuration file.
//
// Example:
//
//	driver         = "sqlite3"
//	dsn            = "app.db"
//	log_level      = "debug"
//	strict_mapping = true
//
// Every key is optional. Missing keys take the values from Default.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl"
	"github.com/sirupsen/logrus"

	"github.com/mjovanc/njord/internal/store"
)

// Config is the decoded configuration.
type Config struct {
	Driver        string `hcl:"driver"`
	DSN           string `hcl:"dsn"`
	LogLevel      string `hcl:"log_level"`
	StrictMapping bool   `hcl:"strict_mapping"`
}

// Default returns the configuration used when no file is given: an
// in-memory SQLite database logging at info.
func Default() *Config {
	return &Config{
		Driver:   store.DriverSQLite,
		DSN:      ":memory:",
		LogLevel: logrus.InfoLevel.String(),
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes HCL text over Default and validates the result.
func Parse(text string) (*Config, error) {
	decoded := &Config{}
	if err := hcl.Decode(decoded, text); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg := Default()
	cfg.Merge(decoded)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overwrites c with every non-empty field of other. StrictMapping is
// only ever switched on.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Driver != "" {
		c.Driver = other.Driver
	}
	if other.DSN != "" {
		c.DSN = other.DSN
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.StrictMapping {
		c.StrictMapping = true
	}
}

// Validate checks the driver name, DSN and log level.
func (c *Config) Validate() error {
	if !knownDriver(c.Driver) {
		return fmt.Errorf("invalid driver %q: must be one of %v", c.Driver, store.Drivers)
	}
	if c.DSN == "" {
		return fmt.Errorf("dsn is required for driver %q", c.Driver)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Store returns the backend connection settings.
func (c *Config) Store() store.Config {
	return store.Config{Driver: c.Driver, DSN: c.DSN}
}

func knownDriver(name string) bool {
	for _, d := range store.Drivers {
		if d == name {
			return true
		}
	}
	return false
}
