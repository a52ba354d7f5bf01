package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pbaille/investin/internal/config"
	"github.com/pbaille/investin/internal/domain"
	"github.com/pbaille/investin/internal/store/gormstore"
)

// Backend is a catalog store with its read queries, seed writes and Close
type Backend interface {
	ListStartups(ctx context.Context) ([]domain.StartupWithSector, error)
	ListSectors(ctx context.Context) ([]domain.Sector, error)
	ListInvestors(ctx context.Context, startupID string) ([]domain.Investor, error)
	AddSector(ctx context.Context, c domain.Sector) (*domain.Sector, error)
	AddStartup(ctx context.Context, s domain.Startup) (*domain.Startup, error)
	AddInvestor(ctx context.Context, inv domain.Investor) (*domain.Investor, error)
	Close() error
}

// Open creates the backend selected by cfg.Driver
func Open(cfg config.StorageConfig, verbose bool) (Backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		return New(cfg.Path)
	case config.DriverMySQL:
		return gormstore.Open(gormstore.DialectMySQL, cfg.DSN, verbose)
	case config.DriverGormSQLite:
		return gormstore.Open(gormstore.DialectSQLite, cfg.DSN, verbose)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
