package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"portfoliohub/internal/hub"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "1.0.0"

// Server holds the HTTP server dependencies.
type Server struct {
	accounts  *hub.AccountService
	portfolio *hub.PortfolioService
	refdata   *hub.ReferenceDataService

	// correlationHeader overrides DefaultCorrelationHeader when set.
	correlationHeader string

	// omsPing, when set, is checked by the health endpoint (the Postgres OMS
	// variant exposes its pool ping here; the simulated OMS leaves it nil).
	omsPing func(context.Context) error
}

// NewServer creates a new API server over the three hub services.
func NewServer(accounts *hub.AccountService, portfolio *hub.PortfolioService, refdata *hub.ReferenceDataService) *Server {
	return &Server{accounts: accounts, portfolio: portfolio, refdata: refdata}
}

// WithCorrelationHeader sets the correlation id header name.
func (s *Server) WithCorrelationHeader(name string) *Server {
	s.correlationHeader = name
	return s
}

// WithOMSPing registers a health check for the OMS backend.
func (s *Server) WithOMSPing(ping func(context.Context) error) *Server {
	s.omsPing = ping
	return s
}

// Router returns the configured chi router.
func (s *Server) Router() http.Handler {
	corrHeader := s.correlationHeader
	if corrHeader == "" {
		corrHeader = DefaultCorrelationHeader
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(correlationMiddleware(corrHeader))
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", corrHeader},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes (read-only)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/clients/{clientId}/accounts", s.handleListAccounts)
		r.Get("/accounts/{accountId}/portfolio", s.handleGetPortfolio)
		r.Get("/reference/instruments/{symbol}", s.handleGetInstrument)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("correlation_id", correlationID(r.Context())).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// recoverer converts a panic into the generic internal-error problem detail,
// so every non-2xx response carries the error body. The cause is logged by
// writeProblem and withheld from the caller.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				writeProblem(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeProblem translates err into its problem-detail body and writes it.
// Provider and internal failures are logged with the cause; the body never
// carries it.
func writeProblem(w http.ResponseWriter, r *http.Request, err error) {
	problem := NewProblem(err, r.URL.Path, correlationID(r.Context()), time.Now().UTC())

	if problem.Status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("path", r.URL.Path).
			Str("correlation_id", problem.CorrelationID).
			Msg("request failed")
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	json.NewEncoder(w).Encode(problem)
}
