package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/gravitrone/taxdesk/internal/api"
	"github.com/gravitrone/taxdesk/internal/logging"
)

// Server exposes a Store over the same routes as the hosted service.
type Server struct {
	store         *Store
	router        *chi.Mux
	logger        zerolog.Logger
	recordsPath   string
	countriesPath string

	mu     sync.Mutex
	faults map[string]int
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithPaths overrides the resource paths.
func WithPaths(recordsPath, countriesPath string) Option {
	return func(s *Server) {
		if recordsPath != "" {
			s.recordsPath = "/" + strings.Trim(recordsPath, "/")
		}
		if countriesPath != "" {
			s.countriesPath = "/" + strings.Trim(countriesPath, "/")
		}
	}
}

// NewServer builds the router for store.
func NewServer(store *Store, opts ...Option) *Server {
	s := &Server{
		store:         store,
		router:        chi.NewRouter(),
		logger:        logging.Nop,
		recordsPath:   api.DefaultRecordsPath,
		countriesPath: api.DefaultCountriesPath,
		faults:        map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get(s.recordsPath, s.handleListRecords)
	s.router.Put(s.recordsPath+"/{id}", s.handleUpdateRecord)
	s.router.Get(s.countriesPath, s.handleListCountries)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Fail makes every request to resource ("records" or "countries") answer
// with status until cleared with status 0.
func (s *Server) Fail(resource string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.faults, resource)
		return
	}
	s.faults[resource] = status
}

func (s *Server) fault(resource string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faults[resource]
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
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
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	if status := s.fault("records"); status != 0 {
		respondError(w, r, status, "records unavailable")
		return
	}
	respondJSON(w, http.StatusOK, s.store.Records())
}

func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	if status := s.fault("countries"); status != 0 {
		respondError(w, r, status, "countries unavailable")
		return
	}
	respondJSON(w, http.StatusOK, s.store.Countries())
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	if status := s.fault("records"); status != 0 {
		respondError(w, r, status, "records unavailable")
		return
	}

	var input api.UpdateRecordInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&input); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid body")
		return
	}

	rec, err := s.store.Update(chi.URLParam(r, "id"), input)
	if errors.Is(err, ErrRecordNotFound) {
		respondError(w, r, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	logging.FromContext(r.Context()).Warn().
		Int("status", status).
		Str("error", msg).
		Msg("request error")
	respondJSON(w, status, map[string]string{"error": msg})
}
