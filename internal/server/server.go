// Package server exposes the analysis engine over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dragonro/DomainAnalyser/internal/analyzer"
	"github.com/dragonro/DomainAnalyser/internal/apperr"
	"github.com/dragonro/DomainAnalyser/internal/store"
)

const (
	defaultReportLimit = 20
	maxReportLimit     = 200
	shutdownTimeout    = 5 * time.Second
)

// DomainAnalyzer is the engine surface the API needs. *analyzer.Analyzer
// satisfies it.
type DomainAnalyzer interface {
	AnalyzeDomain(ctx context.Context, domain string, opts analyzer.Options) (*analyzer.DomainAnalysis, error)
	VerifyExists(ctx context.Context, domain string) (bool, error)
}

// ReportStore is the persistence surface the API needs. *store.Store
// satisfies it.
type ReportStore interface {
	SaveAnalysis(ctx context.Context, a *analyzer.DomainAnalysis, lookedUpAt time.Time) error
	RecentReports(ctx context.Context, limit int) ([]store.Report, error)
	ReportByDomain(ctx context.Context, domain string) (*store.Report, error)
}

// Server serves the JSON API.
type Server struct {
	analyzer DomainAnalyzer
	reports  ReportStore
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Server around the given engine and report store.
func New(a DomainAnalyzer, reports ReportStore, logger *slog.Logger) *Server {
	return &Server{
		analyzer: a,
		reports:  reports,
		logger:   logger,
		now:      time.Now,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/lookup", s.handleLookup)
	mux.HandleFunc("GET /api/domains/{domain}", s.handleAnalyze)
	mux.HandleFunc("GET /api/reports", s.handleRecentReports)
	mux.HandleFunc("GET /api/reports/{domain}", s.handleDomainReport)
	return mux
}

// ListenAndServe runs the API on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down api server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving api: %w", err)
	}
}

type lookupRequest struct {
	Domain string `json:"domain"`
}

type lookupResponse struct {
	Domain  string `json:"domain"`
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	domain := strings.ToLower(req.Domain)
	exists, err := s.analyzer.VerifyExists(r.Context(), domain)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	message := "domain does not exist"
	if exists {
		message = "domain exists"
	}
	s.writeJSON(w, http.StatusOK, lookupResponse{
		Domain:  domain,
		Exists:  exists,
		Message: message,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	domain := strings.ToLower(r.PathValue("domain"))
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := s.analyzer.AnalyzeDomain(r.Context(), domain, opts)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	if !analysis.Exists {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("domain %q could not be verified", domain))
		return
	}

	if err := s.reports.SaveAnalysis(r.Context(), analysis, s.now()); err != nil {
		s.logger.Error("failed to save report", "domain", domain, "error", err)
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleRecentReports(w http.ResponseWriter, r *http.Request) {
	limit := defaultReportLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxReportLimit {
			s.writeError(w, http.StatusBadRequest,
				fmt.Sprintf("limit must be an integer between 1 and %d", maxReportLimit))
			return
		}
		limit = parsed
	}

	reports, err := s.reports.RecentReports(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to fetch reports", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch reports")
		return
	}
	if reports == nil {
		reports = []store.Report{}
	}
	s.writeJSON(w, http.StatusOK, reports)
}

// handleDomainReport serves the latest stored report for a domain, running a
// fresh analysis when none exists yet.
func (s *Server) handleDomainReport(w http.ResponseWriter, r *http.Request) {
	domain := strings.ToLower(r.PathValue("domain"))

	report, err := s.reports.ReportByDomain(r.Context(), domain)
	if err == nil {
		s.writeJSON(w, http.StatusOK, report)
		return
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		s.logger.Error("failed to fetch report", "domain", domain, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to fetch report")
		return
	}

	analysis, err := s.analyzer.AnalyzeDomain(r.Context(), domain, analyzer.Options{IncludeSubdomains: true})
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	if !analysis.Exists {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("domain %q could not be verified", domain))
		return
	}

	lookedUpAt := s.now()
	if err := s.reports.SaveAnalysis(r.Context(), analysis, lookedUpAt); err != nil {
		s.logger.Error("failed to save report", "domain", domain, "error", err)
	}
	s.writeJSON(w, http.StatusOK, store.Report{LookedUpAt: lookedUpAt, Analysis: *analysis})
}

func optionsFromQuery(r *http.Request) (analyzer.Options, error) {
	query := r.URL.Query()
	opts := analyzer.Options{
		// Subdomain enumeration is on unless the caller opts out.
		IncludeSubdomains: true,
		WordlistPath:      query.Get("wordlist"),
	}

	if raw := query.Get("include_subdomains"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return analyzer.Options{}, fmt.Errorf("include_subdomains must be a boolean, got %q", raw)
		}
		opts.IncludeSubdomains = parsed
	}
	if raw := query.Get("max_concurrency"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return analyzer.Options{}, fmt.Errorf("max_concurrency must be an integer, got %q", raw)
		}
		opts.MaxConcurrency = parsed
	}
	return opts, nil
}

func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, http.StatusServiceUnavailable, "analysis cancelled")
	default:
		s.logger.Error("analysis failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
