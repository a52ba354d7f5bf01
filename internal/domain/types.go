package domain

import "time"

// AllSectors is the sector filter that matches every startup
const AllSectors SectorFilter = "all"

// SectorFilter is either AllSectors or a raw sector identifier
type SectorFilter string

// Sector represents a named industry category
type Sector struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Startup represents an investable opportunity
type Startup struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	SectorID      *string   `json:"sector_id"`
	LogoURL       string    `json:"logo_url"`
	ProfitMargin  float64   `json:"profit_margin"`
	FundingNeeded float64   `json:"funding_needed"`
	EquityOffered float64   `json:"equity_offered"`
	FoundedYear   int       `json:"founded_year"`
	Website       string    `json:"website"`
	CreatedAt     time.Time `json:"created_at"`
}

// StartupWithSector is a startup joined with its resolved sector.
// Sector is nil when the reference is null or does not resolve.
type StartupWithSector struct {
	Startup
	Sector *Sector `json:"sector"`
}

// Investor represents a declared interested party for one startup
type Investor struct {
	ID               string    `json:"id"`
	StartupID        string    `json:"startup_id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	InvestmentAmount *float64  `json:"investment_amount"`
	CreatedAt        time.Time `json:"created_at"`
}

// StartupWithDetails is a startup with its investor roster
type StartupWithDetails struct {
	StartupWithSector
	Investors []Investor `json:"investors"`
}

// InSector reports whether the startup's raw sector reference equals id
func (s Startup) InSector(id string) bool {
	return s.SectorID != nil && *s.SectorID == id
}
