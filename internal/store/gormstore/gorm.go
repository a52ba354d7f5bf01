// Package gormstore serves the catalog from a hosted relational database
// through GORM. MySQL is the production dialect; the SQLite dialect backs
// tests and local runs.
package gormstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pbaille/investin/internal/domain"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported dialect names
const (
	DialectMySQL  = "mysql"
	DialectSQLite = "gorm-sqlite"
)

type sectorRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:255;uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time `gorm:"not null"`
}

func (sectorRow) TableName() string { return "sectors" }

type startupRow struct {
	ID            string `gorm:"primaryKey;size:36"`
	Name          string `gorm:"size:255;not null"`
	Description   string
	SectorID      *string    `gorm:"size:36;index"`
	Sector        *sectorRow `gorm:"foreignKey:SectorID;constraint:OnDelete:SET NULL"`
	LogoURL       string
	ProfitMargin  float64
	FundingNeeded float64
	EquityOffered float64
	FoundedYear   int
	Website       string
	CreatedAt     time.Time `gorm:"not null;index"`
}

func (startupRow) TableName() string { return "startups" }

type investorRow struct {
	ID               string `gorm:"primaryKey;size:36"`
	StartupID        string `gorm:"size:36;not null;index"`
	Name             string `gorm:"size:255;not null"`
	Phone            string `gorm:"size:50"`
	Email            string `gorm:"size:255"`
	InvestmentAmount *float64
	CreatedAt        time.Time `gorm:"not null"`
}

func (investorRow) TableName() string { return "investors" }

func (r *sectorRow) BeforeCreate(tx *gorm.DB) error {
	r.ID, r.CreatedAt = ensureIdentity(r.ID, r.CreatedAt)
	return nil
}

func (r *startupRow) BeforeCreate(tx *gorm.DB) error {
	r.ID, r.CreatedAt = ensureIdentity(r.ID, r.CreatedAt)
	return nil
}

func (r *investorRow) BeforeCreate(tx *gorm.DB) error {
	r.ID, r.CreatedAt = ensureIdentity(r.ID, r.CreatedAt)
	return nil
}

// ensureIdentity fills a missing ID and timestamp. Timestamps are stored
// in UTC so SQLite's text encoding orders them chronologically.
func ensureIdentity(id string, createdAt time.Time) (string, time.Time) {
	if id == "" {
		id = uuid.New().String()
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return id, createdAt.UTC()
}

// Store reads the catalog through a GORM connection
type Store struct {
	db *gorm.DB
}

// Open connects with the named dialect and migrates the catalog tables
func Open(dialect, dsn string, verbose bool) (*Store, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectMySQL:
		dialector = mysql.Open(dsn)
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&sectorRow{}, &startupRow{}, &investorRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	return sqlDB.Close()
}

// ListStartups returns every startup with its preloaded sector, newest first
func (s *Store) ListStartups(ctx context.Context) ([]domain.StartupWithSector, error) {
	var rows []startupRow
	err := s.db.WithContext(ctx).
		Preload("Sector").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}

	startups := make([]domain.StartupWithSector, 0, len(rows))
	for _, r := range rows {
		st := domain.StartupWithSector{Startup: r.toDomain()}
		if r.Sector != nil {
			sec := r.Sector.toDomain()
			st.Sector = &sec
		}
		startups = append(startups, st)
	}
	return startups, nil
}

// ListSectors returns all sectors ordered by name
func (s *Store) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	var rows []sectorRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}

	sectors := make([]domain.Sector, 0, len(rows))
	for _, r := range rows {
		sectors = append(sectors, r.toDomain())
	}
	return sectors, nil
}

// ListInvestors returns the investors of one startup in store order
func (s *Store) ListInvestors(ctx context.Context, startupID string) ([]domain.Investor, error) {
	var rows []investorRow
	err := s.db.WithContext(ctx).
		Where("startup_id = ?", startupID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list investors: %w", err)
	}

	investors := make([]domain.Investor, 0, len(rows))
	for _, r := range rows {
		investors = append(investors, domain.Investor{
			ID:               r.ID,
			StartupID:        r.StartupID,
			Name:             r.Name,
			Phone:            r.Phone,
			Email:            r.Email,
			InvestmentAmount: r.InvestmentAmount,
			CreatedAt:        r.CreatedAt,
		})
	}
	return investors, nil
}

// AddSector inserts a sector
func (s *Store) AddSector(ctx context.Context, c domain.Sector) (*domain.Sector, error) {
	row := sectorRow{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert sector: %w", err)
	}
	out := row.toDomain()
	return &out, nil
}

// AddStartup inserts a startup
func (s *Store) AddStartup(ctx context.Context, st domain.Startup) (*domain.Startup, error) {
	row := startupRow{
		ID:            st.ID,
		Name:          st.Name,
		Description:   st.Description,
		SectorID:      st.SectorID,
		LogoURL:       st.LogoURL,
		ProfitMargin:  st.ProfitMargin,
		FundingNeeded: st.FundingNeeded,
		EquityOffered: st.EquityOffered,
		FoundedYear:   st.FoundedYear,
		Website:       st.Website,
		CreatedAt:     st.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Omit("Sector").Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert startup: %w", err)
	}
	out := row.toDomain()
	return &out, nil
}

// AddInvestor inserts an investor
func (s *Store) AddInvestor(ctx context.Context, inv domain.Investor) (*domain.Investor, error) {
	row := investorRow{
		ID:               inv.ID,
		StartupID:        inv.StartupID,
		Name:             inv.Name,
		Phone:            inv.Phone,
		Email:            inv.Email,
		InvestmentAmount: inv.InvestmentAmount,
		CreatedAt:        inv.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert investor: %w", err)
	}
	inv.ID = row.ID
	inv.CreatedAt = row.CreatedAt
	return &inv, nil
}

func (r sectorRow) toDomain() domain.Sector {
	return domain.Sector{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func (r startupRow) toDomain() domain.Startup {
	return domain.Startup{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		SectorID:      r.SectorID,
		LogoURL:       r.LogoURL,
		ProfitMargin:  r.ProfitMargin,
		FundingNeeded: r.FundingNeeded,
		EquityOffered: r.EquityOffered,
		FoundedYear:   r.FoundedYear,
		Website:       r.Website,
		CreatedAt:     r.CreatedAt,
	}
}
