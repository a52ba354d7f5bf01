package catalog

import (
	"strings"

	"github.com/pbaille/investin/internal/domain"
)

// FilterStartups returns the startups matching both the sector filter and
// the free-text query, in their original order. The sector check compares
// the raw sector reference, so unresolved sectors still match by ID.
func FilterStartups(all []domain.StartupWithSector, filter domain.SectorFilter, query string) []domain.StartupWithSector {
	needle := strings.ToLower(query)

	out := make([]domain.StartupWithSector, 0, len(all))
	for _, s := range all {
		if matchesSector(s, filter) && matchesQuery(s, needle) {
			out = append(out, s)
		}
	}
	return out
}

func matchesSector(s domain.StartupWithSector, filter domain.SectorFilter) bool {
	return filter == domain.AllSectors || s.InSector(string(filter))
}

// matchesQuery expects needle to be lower-cased already
func matchesQuery(s domain.StartupWithSector, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), needle) ||
		strings.Contains(strings.ToLower(s.Description), needle)
}
