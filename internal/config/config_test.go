package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("expected default driver sqlite, got %s", cfg.Storage.Driver)
	}
	if !strings.HasSuffix(cfg.Storage.Path, filepath.Join(".investin", "catalog.db")) {
		t.Errorf("unexpected default storage path %s", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if cfg.Display.Theme != "minimal" {
		t.Errorf("expected default theme minimal, got %s", cfg.Display.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles with no files should not error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "test.toml")

	content := `
[server]
port = 9090
host = "0.0.0.0"

[storage]
driver = "mysql"
dsn = "user:pass@tcp(localhost:3306)/catalog?parseTime=true"

[logging]
level = "debug"
format = "json"

[display]
theme = "gradient"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:9090" {
		t.Errorf("expected addr 0.0.0.0:9090, got %s", cfg.Server.Addr())
	}
	if cfg.Storage.Driver != DriverMySQL {
		t.Errorf("expected driver mysql, got %s", cfg.Storage.Driver)
	}
	if !strings.HasPrefix(cfg.Storage.DSN, "user:pass@") {
		t.Errorf("unexpected dsn %s", cfg.Storage.DSN)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Display.Theme != "gradient" {
		t.Errorf("expected theme gradient, got %s", cfg.Display.Theme)
	}
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	local := filepath.Join(dir, "local.toml")

	if err := os.WriteFile(base, []byte("[server]\nport = 7000\nhost = \"base\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("[server]\nport = 7001\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(base, local)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("expected port 7001 from later file, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "base" {
		t.Errorf("expected host from base file, got %s", cfg.Server.Host)
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromFiles(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INVESTIN_SERVER_PORT", "9999")
	t.Setenv("INVESTIN_SERVER_HOST", "example.internal")
	t.Setenv("INVESTIN_STORAGE_PATH", "/tmp/env.db")
	t.Setenv("INVESTIN_LOG_LEVEL", "warn")
	t.Setenv("INVESTIN_THEME", "motion")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "example.internal" {
		t.Errorf("expected host example.internal, got %s", cfg.Server.Host)
	}
	if cfg.Storage.Path != "/tmp/env.db" {
		t.Errorf("expected path /tmp/env.db, got %s", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Display.Theme != "motion" {
		t.Errorf("expected theme motion, got %s", cfg.Display.Theme)
	}
}

func TestEnvOverrides_InvalidPortIgnored(t *testing.T) {
	t.Setenv("INVESTIN_SERVER_PORT", "not-a-port")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port to survive, got %d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		storage StorageConfig
		wantErr bool
	}{
		{"sqlite with path", StorageConfig{Driver: DriverSQLite, Path: "a.db"}, false},
		{"sqlite without path", StorageConfig{Driver: DriverSQLite}, true},
		{"mysql with dsn", StorageConfig{Driver: DriverMySQL, DSN: "dsn"}, false},
		{"mysql without dsn", StorageConfig{Driver: DriverMySQL, Path: "a.db"}, true},
		{"gorm sqlite with dsn", StorageConfig{Driver: DriverGormSQLite, DSN: "a.db"}, false},
		{"unknown driver", StorageConfig{Driver: "postgres", DSN: "dsn"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Storage = tt.storage
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, "/tmp/flag.db", "gradient", true)

	if cfg.Storage.Path != "/tmp/flag.db" {
		t.Errorf("expected path override, got %s", cfg.Storage.Path)
	}
	if cfg.Display.Theme != "gradient" {
		t.Errorf("expected theme override, got %s", cfg.Display.Theme)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected verbose to force debug, got %s", cfg.Logging.Level)
	}

	cfg = NewDefaultConfig()
	cfg.Storage.Driver = DriverMySQL
	ApplyFlagOverrides(cfg, "user@tcp(db)/catalog", "", false)
	if cfg.Storage.DSN != "user@tcp(db)/catalog" {
		t.Errorf("expected dsn override for mysql, got %s", cfg.Storage.DSN)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected level untouched, got %s", cfg.Logging.Level)
	}
}
