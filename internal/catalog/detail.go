package catalog

import (
	"context"
	"sync"

	"github.com/pbaille/investin/internal/domain"
	"go.uber.org/zap"
)

// DetailState is the state of the detail view
type DetailState int

const (
	DetailClosed DetailState = iota
	DetailLoading
	DetailLoaded
)

func (s DetailState) String() string {
	switch s {
	case DetailClosed:
		return "closed"
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// RosterLoader fetches the investors of one startup
type RosterLoader interface {
	LoadInvestors(ctx context.Context, startupID string) ([]domain.Investor, error)
}

// DetailSnapshot is a copy of the detail view at one instant
type DetailSnapshot struct {
	State     DetailState
	Startup   *domain.StartupWithSector
	Investors []domain.Investor
}

// Detail tracks the selected startup and its lazily fetched roster.
//
// Fetches are never cancelled. Each one is tagged with the selection
// generation it was issued for, and a result whose tag no longer matches
// the current selection is dropped.
type Detail struct {
	loader RosterLoader
	logger *zap.Logger

	mu        sync.Mutex
	state     DetailState
	selected  *domain.StartupWithSector
	investors []domain.Investor
	gen       uint64
	settled   chan struct{}
}

// NewDetail creates a closed detail view
func NewDetail(loader RosterLoader, logger *zap.Logger) *Detail {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detail{loader: loader, logger: logger}
}

// Select opens the detail view on s and fetches its roster unless s is
// already selected. The returned channel closes once the fetch for this
// selection settles, whether its result was applied or discarded.
func (d *Detail) Select(ctx context.Context, s domain.StartupWithSector) <-chan struct{} {
	d.mu.Lock()
	if d.state != DetailClosed && d.selected != nil && d.selected.ID == s.ID {
		settled := d.settled
		d.mu.Unlock()
		return settled
	}

	d.gen++
	gen := d.gen
	d.state = DetailLoading
	d.selected = &s
	d.investors = nil
	settled := make(chan struct{})
	d.settled = settled
	d.mu.Unlock()

	d.logger.Debug("Loading investors", zap.String("startup_id", s.ID), zap.Uint64("gen", gen))

	go func() {
		defer close(settled)
		roster, _ := d.loader.LoadInvestors(ctx, s.ID)
		d.apply(gen, s.ID, roster)
	}()

	return settled
}

// Close deselects the startup and releases its roster
func (d *Detail) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.state = DetailClosed
	d.selected = nil
	d.investors = nil
	d.settled = nil
}

// Snapshot returns the current state, selection and roster
func (d *Detail) Snapshot() DetailSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := DetailSnapshot{State: d.state}
	if d.selected != nil {
		sel := *d.selected
		snap.Startup = &sel
	}
	if d.investors != nil {
		snap.Investors = make([]domain.Investor, len(d.investors))
		copy(snap.Investors, d.investors)
	}
	return snap
}

func (d *Detail) apply(gen uint64, startupID string, roster []domain.Investor) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen || d.state != DetailLoading {
		d.logger.Debug("Discarding stale roster", zap.String("startup_id", startupID), zap.Uint64("gen", gen))
		return
	}
	if roster == nil {
		roster = []domain.Investor{}
	}
	d.state = DetailLoaded
	d.investors = roster
}
