// Package store persists analysis reports in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dragonro/DomainAnalyser/internal/analyzer"
	"github.com/dragonro/DomainAnalyser/internal/apperr"
)

const schema = `
CREATE TABLE IF NOT EXISTS domain_reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	domain TEXT NOT NULL,
	looked_up_at TEXT NOT NULL,
	domain_exists INTEGER NOT NULL,
	apex_records TEXT NOT NULL,
	providers TEXT NOT NULL,
	subdomains TEXT NOT NULL,
	networks TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_domain_reports_domain ON domain_reports(domain);
`

// Store is a SQLite-backed report archive. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens the database at path,
// and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening report database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising report schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Report is one stored analysis with its archive metadata.
type Report struct {
	ID         int64                   `json:"id"`
	LookedUpAt time.Time               `json:"looked_up_at"`
	Analysis   analyzer.DomainAnalysis `json:"analysis"`
}

// SaveAnalysis archives one analysis at the given lookup time.
func (s *Store) SaveAnalysis(ctx context.Context, a *analyzer.DomainAnalysis, lookedUpAt time.Time) error {
	apexRecords, err := json.Marshal(a.ApexRecords)
	if err != nil {
		return fmt.Errorf("encoding apex records: %w", err)
	}
	providers, err := json.Marshal(a.Providers)
	if err != nil {
		return fmt.Errorf("encoding providers: %w", err)
	}
	subdomains, err := json.Marshal(a.Subdomains)
	if err != nil {
		return fmt.Errorf("encoding subdomains: %w", err)
	}
	networks, err := json.Marshal(a.Networks)
	if err != nil {
		return fmt.Errorf("encoding networks: %w", err)
	}

	exists := 0
	if a.Exists {
		exists = 1
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO domain_reports (domain, looked_up_at, domain_exists, apex_records, providers, subdomains, networks)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Domain, lookedUpAt.UTC().Format(time.RFC3339), exists,
		string(apexRecords), string(providers), string(subdomains), string(networks),
	)
	if err != nil {
		return fmt.Errorf("saving report for %q: %w", a.Domain, err)
	}
	return nil
}

// RecentReports returns up to limit reports, most recent first.
func (s *Store) RecentReports(ctx context.Context, limit int) ([]Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, domain, looked_up_at, domain_exists, apex_records, providers, subdomains, networks
		FROM domain_reports
		ORDER BY looked_up_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading recent reports: %w", err)
	}
	return reports, nil
}

// ReportByDomain returns the most recent stored report for domain, or
// apperr.ErrNotFound when the domain has never been analysed.
func (s *Store) ReportByDomain(ctx context.Context, domain string) (*Report, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, domain, looked_up_at, domain_exists, apex_records, providers, subdomains, networks
		FROM domain_reports
		WHERE domain = ?
		ORDER BY looked_up_at DESC, id DESC
		LIMIT 1`, domain)
	if err != nil {
		return nil, fmt.Errorf("querying report for %q: %w", domain, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("reading report for %q: %w", domain, err)
		}
		return nil, fmt.Errorf("%w: no report for %q", apperr.ErrNotFound, domain)
	}
	return scanReport(rows)
}

func scanReport(rows *sql.Rows) (*Report, error) {
	var (
		report               Report
		lookedUpAt           string
		exists               int
		apexRecords          string
		providers            string
		subdomains, networks string
	)
	if err := rows.Scan(&report.ID, &report.Analysis.Domain, &lookedUpAt, &exists,
		&apexRecords, &providers, &subdomains, &networks); err != nil {
		return nil, fmt.Errorf("scanning report row: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, lookedUpAt)
	if err != nil {
		return nil, fmt.Errorf("parsing report timestamp %q: %w", lookedUpAt, err)
	}
	report.LookedUpAt = ts
	report.Analysis.Exists = exists != 0

	if err := errors.Join(
		json.Unmarshal([]byte(apexRecords), &report.Analysis.ApexRecords),
		json.Unmarshal([]byte(providers), &report.Analysis.Providers),
		json.Unmarshal([]byte(subdomains), &report.Analysis.Subdomains),
		json.Unmarshal([]byte(networks), &report.Analysis.Networks),
	); err != nil {
		return nil, fmt.Errorf("decoding stored report: %w", err)
	}
	return &report, nil
}
