package catalog

import (
	"strings"
	"sync"

	"github.com/pbaille/investin/internal/domain"
)

// View holds the loaded catalog plus the current filter inputs. The
// visible list is never stored; Visible recomputes it on every call.
type View struct {
	mu     sync.RWMutex
	cat    Catalog
	sector domain.SectorFilter
	query  string
}

// NewView creates a view over a loaded catalog with no filter applied
func NewView(cat Catalog) *View {
	return &View{cat: cat, sector: domain.AllSectors}
}

// SetCatalog replaces the source collections
func (v *View) SetCatalog(cat Catalog) {
	v.mu.Lock()
	v.cat = cat
	v.mu.Unlock()
}

// SetSector selects a sector; an empty filter means all sectors
func (v *View) SetSector(filter domain.SectorFilter) {
	if filter == "" {
		filter = domain.AllSectors
	}
	v.mu.Lock()
	v.sector = filter
	v.mu.Unlock()
}

// SetQuery sets the free-text search term
func (v *View) SetQuery(query string) {
	v.mu.Lock()
	v.query = query
	v.mu.Unlock()
}

// Sector returns the current sector filter
func (v *View) Sector() domain.SectorFilter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sector
}

// Query returns the current search term
func (v *View) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// Sectors returns the loaded sectors in name order
func (v *View) Sectors() []domain.Sector {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cat.Sectors
}

// Visible returns the startups that pass the current filters
func (v *View) Visible() []domain.StartupWithSector {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return FilterStartups(v.cat.Startups, v.sector, v.query)
}

// Startup finds a loaded startup by ID, ignoring filters
func (v *View) Startup(id string) (domain.StartupWithSector, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, s := range v.cat.Startups {
		if s.ID == id {
			return s, true
		}
	}
	return domain.StartupWithSector{}, false
}

// Resolve finds a loaded startup by full ID or the first ID with the given prefix
func (v *View) Resolve(idOrPrefix string) (domain.StartupWithSector, bool) {
	if s, ok := v.Startup(idOrPrefix); ok {
		return s, true
	}
	if idOrPrefix == "" {
		return domain.StartupWithSector{}, false
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, s := range v.cat.Startups {
		if strings.HasPrefix(s.ID, idOrPrefix) {
			return s, true
		}
	}
	return domain.StartupWithSector{}, false
}
