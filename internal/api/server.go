package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pbaille/investin/internal/catalog"
	"github.com/pbaille/investin/internal/domain"
	"go.uber.org/zap"
)

// Server handles HTTP requests for the catalog API
type Server struct {
	loader *catalog.Loader
	addr   string
	logger *zap.Logger
}

// New creates a new API server
func New(loader *catalog.Loader, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{loader: loader, addr: addr, logger: logger}
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Catalog
	mux.HandleFunc("GET /startups", s.listStartups)
	mux.HandleFunc("GET /startups/{id}", s.getStartup)
	mux.HandleFunc("GET /sectors", s.listSectors)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withLogging(s.logger, withCORS(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(logger *zap.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		logger.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListStartupsResponse is the filtered catalog view
type ListStartupsResponse struct {
	Startups []domain.StartupWithSector `json:"startups"`
	Sectors  []domain.Sector            `json:"sectors"`
	Sector   domain.SectorFilter        `json:"sector"`
	Query    string                     `json:"query"`
}

func (s *Server) listStartups(w http.ResponseWriter, r *http.Request) {
	view := catalog.NewView(s.loader.LoadCatalog(r.Context()))
	view.SetSector(domain.SectorFilter(r.URL.Query().Get("sector")))
	view.SetQuery(r.URL.Query().Get("q"))

	writeJSON(w, http.StatusOK, ListStartupsResponse{
		Startups: view.Visible(),
		Sectors:  view.Sectors(),
		Sector:   view.Sector(),
		Query:    view.Query(),
	})
}

func (s *Server) listSectors(w http.ResponseWriter, r *http.Request) {
	cat := s.loader.LoadCatalog(r.Context())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sectors": cat.Sectors,
	})
}

func (s *Server) getStartup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Support prefix matching
	view := catalog.NewView(s.loader.LoadCatalog(r.Context()))
	startup, ok := view.Resolve(id)
	if !ok {
		writeError(w, http.StatusNotFound, "startup not found")
		return
	}

	investors, _ := s.loader.LoadInvestors(r.Context(), startup.ID)

	writeJSON(w, http.StatusOK, domain.StartupWithDetails{
		StartupWithSector: startup,
		Investors:         investors,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
