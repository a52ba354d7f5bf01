package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/pbaille/investin/internal/catalog"
	"github.com/pbaille/investin/internal/domain"
	"github.com/pbaille/investin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv  *Server
	acme string
	zeta string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	hw, err := s.AddSector(ctx, domain.Sector{ID: "s1", Name: "Hardware"})
	require.NoError(t, err)
	sw, err := s.AddSector(ctx, domain.Sector{ID: "s2", Name: "Software"})
	require.NoError(t, err)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	acme, err := s.AddStartup(ctx, domain.Startup{ID: "1a2b3c", Name: "Acme", Description: "widgets", SectorID: &hw.ID, CreatedAt: base})
	require.NoError(t, err)
	zeta, err := s.AddStartup(ctx, domain.Startup{ID: "9z8y7x", Name: "Zeta", Description: "gadgets", SectorID: &sw.ID, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)

	amount := 500_000.0
	_, err = s.AddInvestor(ctx, domain.Investor{StartupID: acme.ID, Name: "Ada", InvestmentAmount: &amount})
	require.NoError(t, err)

	return fixture{
		srv:  New(catalog.NewLoader(s, nil), ":0", nil),
		acme: acme.ID,
		zeta: zeta.ID,
	}
}

func get(t *testing.T, h http.Handler, target string, out interface{}) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func startupIDs(list []domain.StartupWithSector) []string {
	out := []string{}
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, get(t, f.srv.Handler(), "/health", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListStartups_Filters(t *testing.T) {
	f := newFixture(t)
	h := f.srv.Handler()

	tests := []struct {
		target string
		want   []string
	}{
		{"/startups", []string{f.zeta, f.acme}},
		{"/startups?sector=all", []string{f.zeta, f.acme}},
		{"/startups?sector=s1", []string{f.acme}},
		{"/startups?q=GAD", []string{f.zeta}},
		{"/startups?sector=s1&q=gad", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			var resp ListStartupsResponse
			require.Equal(t, http.StatusOK, get(t, h, tt.target, &resp))
			assert.Equal(t, tt.want, startupIDs(resp.Startups))
			assert.Len(t, resp.Sectors, 2)
		})
	}
}

func TestListStartups_EchoesFilterState(t *testing.T) {
	f := newFixture(t)

	var resp ListStartupsResponse
	get(t, f.srv.Handler(), "/startups", &resp)
	assert.Equal(t, domain.AllSectors, resp.Sector)
	assert.Equal(t, "", resp.Query)

	get(t, f.srv.Handler(), "/startups?sector=s2&q=z", &resp)
	assert.Equal(t, domain.SectorFilter("s2"), resp.Sector)
	assert.Equal(t, "z", resp.Query)
}

func TestListSectors(t *testing.T) {
	f := newFixture(t)

	var resp struct {
		Sectors []domain.Sector `json:"sectors"`
	}
	require.Equal(t, http.StatusOK, get(t, f.srv.Handler(), "/sectors", &resp))
	require.Len(t, resp.Sectors, 2)
	assert.Equal(t, "Hardware", resp.Sectors[0].Name)
	assert.Equal(t, "Software", resp.Sectors[1].Name)
}

func TestGetStartup_WithInvestors(t *testing.T) {
	f := newFixture(t)

	var resp domain.StartupWithDetails
	require.Equal(t, http.StatusOK, get(t, f.srv.Handler(), "/startups/"+f.acme, &resp))
	assert.Equal(t, "Acme", resp.Name)
	require.NotNil(t, resp.Sector)
	assert.Equal(t, "Hardware", resp.Sector.Name)
	require.Len(t, resp.Investors, 1)
	assert.Equal(t, "Ada", resp.Investors[0].Name)
}

func TestGetStartup_PrefixAndEmptyRoster(t *testing.T) {
	f := newFixture(t)

	var resp domain.StartupWithDetails
	require.Equal(t, http.StatusOK, get(t, f.srv.Handler(), "/startups/9z8", &resp))
	assert.Equal(t, f.zeta, resp.ID)
	assert.NotNil(t, resp.Investors)
	assert.Empty(t, resp.Investors)
}

func TestGetStartup_NotFound(t *testing.T) {
	f := newFixture(t)

	var body map[string]string
	assert.Equal(t, http.StatusNotFound, get(t, f.srv.Handler(), "/startups/nope", &body))
	assert.Equal(t, "startup not found", body["error"])
}

type brokenReader struct{}

func (brokenReader) ListStartups(ctx context.Context) ([]domain.StartupWithSector, error) {
	return nil, errors.New("down")
}

func (brokenReader) ListSectors(ctx context.Context) ([]domain.Sector, error) {
	return nil, errors.New("down")
}

func (brokenReader) ListInvestors(ctx context.Context, id string) ([]domain.Investor, error) {
	return nil, errors.New("down")
}

func TestListStartups_StoreDownRendersEmpty(t *testing.T) {
	srv := New(catalog.NewLoader(brokenReader{}, nil), ":0", nil)

	var resp ListStartupsResponse
	assert.Equal(t, http.StatusOK, get(t, srv.Handler(), "/startups", &resp))
	assert.NotNil(t, resp.Startups)
	assert.Empty(t, resp.Startups)
	assert.Empty(t, resp.Sectors)
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/startups", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	srv := New(f.srv.loader, "127.0.0.1:0", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	assert.NoError(t, <-done)
}
