// Package server exposes dividend yields, tips and plan calculations over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fiplan/goal-tracker/internal/advisor"
	"github.com/fiplan/goal-tracker/internal/calculation"
	"github.com/fiplan/goal-tracker/internal/config"
	"github.com/fiplan/goal-tracker/internal/yield"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Passive Income Goal Tracker API"

// Searcher finds ticker symbols by company name.
type Searcher interface {
	Search(ctx context.Context, query string) ([]yield.SymbolMatch, error)
}

// Server holds the API's dependencies. Nil optional services make their
// endpoints answer 503.
type Server struct {
	Yields   *yield.Resolver
	Searcher Searcher
	Advisor  *advisor.Advisor
	Engine   *calculation.CalculationEngine
	Parser   *config.InputParser
	Logger   *log.Logger

	// Timeout bounds each request's handling time.
	Timeout time.Duration
	Now     func() time.Time
}

// New creates a server with a fresh engine and parser.
func New(yields *yield.Resolver, searcher Searcher, adv *advisor.Advisor, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Yields:   yields,
		Searcher: searcher,
		Advisor:  adv,
		Engine:   calculation.NewCalculationEngine(),
		Parser:   config.NewInputParser(),
		Logger:   logger,
		Timeout:  60 * time.Second,
		Now:      time.Now,
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.Timeout))
	r.Use(corsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/dividend-yield", s.handleDividendYield)
		r.Post("/batch-dividend-yields", s.handleBatchDividendYields)
		r.Get("/search", s.handleSearch)
		r.Post("/chat", s.handleChat)
		r.Post("/goals", s.handleGoals)
		r.Post("/projection", s.handleProjection)
		r.Post("/report", s.handleReport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not found", r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("Starting API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.Logger.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, error, message string) {
	writeJSON(w, status, ErrorResponse{Error: error, Message: message})
}
