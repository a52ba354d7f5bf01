// Package seed fills an empty store with a demo catalog.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/pbaille/investin/internal/domain"
	"go.uber.org/zap"
)

// Writer is the write side of a store used for seeding
type Writer interface {
	AddSector(ctx context.Context, c domain.Sector) (*domain.Sector, error)
	AddStartup(ctx context.Context, s domain.Startup) (*domain.Startup, error)
	AddInvestor(ctx context.Context, inv domain.Investor) (*domain.Investor, error)
}

// Result counts what Demo inserted
type Result struct {
	Sectors   int
	Startups  int
	Investors int
}

type demoStartup struct {
	startup   domain.Startup
	sector    string
	investors []domain.Investor
}

func amount(v float64) *float64 { return &v }

var demoSectors = []domain.Sector{
	{Name: "Hardware", Description: "Devices, robotics and physical products"},
	{Name: "Software", Description: "Applications, platforms and developer tools"},
	{Name: "Fintech", Description: "Payments, lending and financial infrastructure"},
	{Name: "Healthcare", Description: "Diagnostics, care delivery and biotech"},
}

var demoStartups = []demoStartup{
	{
		sector: "Hardware",
		startup: domain.Startup{
			Name: "Acme Robotics", Description: "Warehouse picking robots for mid-size retailers",
			ProfitMargin: 18.5, FundingNeeded: 2_500_000, EquityOffered: 12, FoundedYear: 2019,
			Website: "https://acme-robotics.example",
		},
		investors: []domain.Investor{
			{Name: "Northwind Ventures", Email: "deals@northwind.example", InvestmentAmount: amount(750_000)},
			{Name: "Ada Park", Phone: "+1 555 0142"},
		},
	},
	{
		sector: "Software",
		startup: domain.Startup{
			Name: "Zeta Cloud", Description: "Observability gadgets for serverless teams",
			ProfitMargin: 32, FundingNeeded: 4_000_000, EquityOffered: 8, FoundedYear: 2021,
			Website: "https://zeta.example",
		},
		investors: []domain.Investor{
			{Name: "Bluebird Capital", Email: "hello@bluebird.example", Phone: "+1 555 0199", InvestmentAmount: amount(1_200_000)},
		},
	},
	{
		sector: "Fintech",
		startup: domain.Startup{
			Name: "Ledgerly", Description: "Real-time reconciliation for small businesses",
			ProfitMargin: 24.2, FundingNeeded: 1_750_000, EquityOffered: 15, FoundedYear: 2020,
		},
	},
	{
		sector: "Healthcare",
		startup: domain.Startup{
			Name: "Pulse Diagnostics", Description: "At-home blood panels with same-day results",
			ProfitMargin: 11, FundingNeeded: 6_000_000, EquityOffered: 20, FoundedYear: 2018,
			Website: "https://pulse.example",
		},
		investors: []domain.Investor{
			{Name: "Grace Lee", Email: "grace@example.com", InvestmentAmount: amount(300_000)},
			{Name: "Harbor Angels", Email: "team@harbor.example"},
		},
	},
	{
		startup: domain.Startup{
			Name: "Stealth Co", ProfitMargin: 0, FundingNeeded: 500_000, EquityOffered: 5, FoundedYear: 2024,
		},
	},
}

// Demo inserts the demo sectors, startups and investors. Startups get
// creation times one hour apart so the catalog order is deterministic.
func Demo(ctx context.Context, w Writer, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var res Result
	sectorIDs := make(map[string]string, len(demoSectors))
	for _, c := range demoSectors {
		added, err := w.AddSector(ctx, c)
		if err != nil {
			return res, fmt.Errorf("seed sector %s: %w", c.Name, err)
		}
		sectorIDs[added.Name] = added.ID
		res.Sectors++
	}

	base := time.Now().UTC().Add(-time.Duration(len(demoStartups)) * time.Hour)
	for i, d := range demoStartups {
		st := d.startup
		st.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if d.sector != "" {
			id := sectorIDs[d.sector]
			st.SectorID = &id
		}

		added, err := w.AddStartup(ctx, st)
		if err != nil {
			return res, fmt.Errorf("seed startup %s: %w", st.Name, err)
		}
		res.Startups++

		for _, inv := range d.investors {
			inv.StartupID = added.ID
			if _, err := w.AddInvestor(ctx, inv); err != nil {
				return res, fmt.Errorf("seed investor %s: %w", inv.Name, err)
			}
			res.Investors++
		}
	}

	logger.Info("Seeded demo catalog",
		zap.Int("sectors", res.Sectors),
		zap.Int("startups", res.Startups),
		zap.Int("investors", res.Investors))

	return res, nil
}
