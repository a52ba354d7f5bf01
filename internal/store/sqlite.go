package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbaille/investin/internal/domain"
)

//go:embed schema.sql
var schema string

// Store handles database operations against an embedded SQLite catalog
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// ListStartups returns every startup left-joined to its sector, newest first
func (s *Store) ListStartups(ctx context.Context) ([]domain.StartupWithSector, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.description, s.sector_id, s.logo_url,
		       s.profit_margin, s.funding_needed, s.equity_offered,
		       s.founded_year, s.website, s.created_at,
		       c.id, c.name, c.description, c.created_at
		FROM startups s
		LEFT JOIN sectors c ON c.id = s.sector_id
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	defer rows.Close()

	startups := []domain.StartupWithSector{}
	for rows.Next() {
		var (
			st        domain.StartupWithSector
			secID     sql.NullString
			secName   sql.NullString
			secDesc   sql.NullString
			secCreate sql.NullTime
		)
		if err := rows.Scan(
			&st.ID, &st.Name, &st.Description, &st.SectorID, &st.LogoURL,
			&st.ProfitMargin, &st.FundingNeeded, &st.EquityOffered,
			&st.FoundedYear, &st.Website, &st.CreatedAt,
			&secID, &secName, &secDesc, &secCreate,
		); err != nil {
			return nil, fmt.Errorf("scan startup: %w", err)
		}
		if secID.Valid {
			st.Sector = &domain.Sector{
				ID:          secID.String,
				Name:        secName.String,
				Description: secDesc.String,
				CreatedAt:   secCreate.Time,
			}
		}
		startups = append(startups, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate startups: %w", err)
	}

	return startups, nil
}

// ListSectors returns all sectors ordered by name
func (s *Store) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, created_at FROM sectors ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()

	sectors := []domain.Sector{}
	for rows.Next() {
		var c domain.Sector
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		sectors = append(sectors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sectors: %w", err)
	}

	return sectors, nil
}

// ListInvestors returns the investors of one startup in store order
func (s *Store) ListInvestors(ctx context.Context, startupID string) ([]domain.Investor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, startup_id, name, phone, email, investment_amount, created_at
		FROM investors
		WHERE startup_id = ?
		ORDER BY rowid
	`, startupID)
	if err != nil {
		return nil, fmt.Errorf("list investors: %w", err)
	}
	defer rows.Close()

	investors := []domain.Investor{}
	for rows.Next() {
		var inv domain.Investor
		if err := rows.Scan(
			&inv.ID, &inv.StartupID, &inv.Name, &inv.Phone, &inv.Email,
			&inv.InvestmentAmount, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan investor: %w", err)
		}
		investors = append(investors, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate investors: %w", err)
	}

	return investors, nil
}

// AddSector inserts a sector, assigning an ID and timestamp when missing
func (s *Store) AddSector(ctx context.Context, c domain.Sector) (*domain.Sector, error) {
	fillIdentity(&c.ID, &c.CreatedAt)

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sectors (id, name, description, created_at) VALUES (?, ?, ?, ?)",
		c.ID, c.Name, c.Description, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert sector: %w", err)
	}

	return &c, nil
}

// AddStartup inserts a startup, assigning an ID and timestamp when missing
func (s *Store) AddStartup(ctx context.Context, st domain.Startup) (*domain.Startup, error) {
	fillIdentity(&st.ID, &st.CreatedAt)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO startups (id, name, description, sector_id, logo_url,
			profit_margin, funding_needed, equity_offered, founded_year,
			website, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.ID, st.Name, st.Description, st.SectorID, st.LogoURL,
		st.ProfitMargin, st.FundingNeeded, st.EquityOffered, st.FoundedYear,
		st.Website, st.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert startup: %w", err)
	}

	return &st, nil
}

// AddInvestor inserts an investor, assigning an ID and timestamp when missing
func (s *Store) AddInvestor(ctx context.Context, inv domain.Investor) (*domain.Investor, error) {
	fillIdentity(&inv.ID, &inv.CreatedAt)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO investors (id, startup_id, name, phone, email,
			investment_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.StartupID, inv.Name, inv.Phone, inv.Email,
		inv.InvestmentAmount, inv.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert investor: %w", err)
	}

	return &inv, nil
}

// fillIdentity assigns a fresh UUID and a UTC timestamp to unset fields.
// Timestamps are kept in UTC so their text form sorts chronologically.
func fillIdentity(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
	*createdAt = createdAt.UTC()
}
