// Package catalog loads the startup catalog from a store, projects the
// filtered view, and tracks the selected startup's investor roster.
//
// Every read degrades instead of failing: a failed query is logged and
// its collection comes back empty, with the failure kept as a diagnostic.
package catalog

import (
	"context"
	"fmt"

	"github.com/pbaille/investin/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Reader is the read side of the backing store
type Reader interface {
	ListStartups(ctx context.Context) ([]domain.StartupWithSector, error)
	ListSectors(ctx context.Context) ([]domain.Sector, error)
	ListInvestors(ctx context.Context, startupID string) ([]domain.Investor, error)
}

// Read operation names carried by LoadError
const (
	OpListStartups  = "list startups"
	OpListSectors   = "list sectors"
	OpListInvestors = "list investors"
)

// LoadError reports a failed read against the store
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Catalog is one loading session's snapshot of startups and sectors.
// Diagnostics holds a *LoadError for each read that failed.
type Catalog struct {
	Startups    []domain.StartupWithSector `json:"startups"`
	Sectors     []domain.Sector            `json:"sectors"`
	Diagnostics []error                    `json:"-"`
}

// Loader runs the catalog reads against a store
type Loader struct {
	reader Reader
	logger *zap.Logger
}

// NewLoader creates a Loader; a nil logger discards diagnostics
func NewLoader(r Reader, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{reader: r, logger: logger}
}

// LoadCatalog reads startups and sectors concurrently and waits for both.
// A failed read leaves its collection empty; the call itself never fails.
func (l *Loader) LoadCatalog(ctx context.Context) Catalog {
	var (
		startups  []domain.StartupWithSector
		sectors   []domain.Sector
		startErr  error
		sectorErr error
	)

	// Each branch records its own failure and returns nil so that one
	// failed read never cancels the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		startups, startErr = l.reader.ListStartups(gctx)
		return nil
	})
	g.Go(func() error {
		sectors, sectorErr = l.reader.ListSectors(gctx)
		return nil
	})
	_ = g.Wait()

	cat := Catalog{
		Startups: []domain.StartupWithSector{},
		Sectors:  []domain.Sector{},
	}

	if startErr != nil {
		cat.Diagnostics = append(cat.Diagnostics, l.fail(OpListStartups, startErr))
	} else if startups != nil {
		cat.Startups = startups
	}

	if sectorErr != nil {
		cat.Diagnostics = append(cat.Diagnostics, l.fail(OpListSectors, sectorErr))
	} else if sectors != nil {
		cat.Sectors = sectors
	}

	l.logger.Debug("Catalog loaded",
		zap.Int("startups", len(cat.Startups)),
		zap.Int("sectors", len(cat.Sectors)),
		zap.Int("failures", len(cat.Diagnostics)))

	return cat
}

// LoadInvestors reads the roster of one startup. The roster is never nil;
// on failure it is empty and the returned error is a *LoadError diagnostic.
func (l *Loader) LoadInvestors(ctx context.Context, startupID string) ([]domain.Investor, error) {
	investors, err := l.reader.ListInvestors(ctx, startupID)
	if err != nil {
		return []domain.Investor{}, l.fail(OpListInvestors, err, zap.String("startup_id", startupID))
	}
	if investors == nil {
		investors = []domain.Investor{}
	}
	return investors, nil
}

func (l *Loader) fail(op string, err error, fields ...zap.Field) *LoadError {
	loadErr := &LoadError{Op: op, Err: err}
	l.logger.Error("Error loading data",
		append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)...)
	return loadErr
}
