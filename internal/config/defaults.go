package config

import (
	"os"
	"path/filepath"
)

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   defaultDBPath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Display: DisplayConfig{
			Theme: "minimal",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".investin", "catalog.db")
	}
	return filepath.Join(home, ".investin", "catalog.db")
}
