package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Storage drivers
const (
	DriverSQLite     = "sqlite"
	DriverMySQL      = "mysql"
	DriverGormSQLite = "gorm-sqlite"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Display DisplayConfig `toml:"display"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig selects the catalog backend. Path is used by the sqlite
// driver, DSN by the gorm drivers.
type StorageConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	DSN    string `toml:"dsn"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DisplayConfig contains terminal presentation settings.
type DisplayConfig struct {
	Theme string `toml:"theme"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the storage driver is known and has a location.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for driver %q", c.Storage.Driver)
		}
	case DriverMySQL, DriverGormSQLite:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// applyEnvOverrides applies INVESTIN_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("INVESTIN_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("INVESTIN_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if driver := os.Getenv("INVESTIN_STORAGE_DRIVER"); driver != "" {
		config.Storage.Driver = driver
	}
	if path := os.Getenv("INVESTIN_STORAGE_PATH"); path != "" {
		config.Storage.Path = path
	}
	if dsn := os.Getenv("INVESTIN_STORAGE_DSN"); dsn != "" {
		config.Storage.DSN = dsn
	}
	if level := os.Getenv("INVESTIN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("INVESTIN_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if theme := os.Getenv("INVESTIN_THEME"); theme != "" {
		config.Display.Theme = theme
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
// The db override goes to Path or DSN depending on the driver.
func ApplyFlagOverrides(config *Config, db, theme string, verbose bool) {
	if db != "" {
		if config.Storage.Driver == DriverSQLite {
			config.Storage.Path = db
		} else {
			config.Storage.DSN = db
		}
	}
	if theme != "" {
		config.Display.Theme = theme
	}
	if verbose {
		config.Logging.Level = "debug"
	}
}
