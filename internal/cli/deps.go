package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"

	"github.com/dragonro/DomainAnalyser/internal/analyzer"
	"github.com/dragonro/DomainAnalyser/internal/appdir"
	"github.com/dragonro/DomainAnalyser/internal/asn"
	"github.com/dragonro/DomainAnalyser/internal/config"
	"github.com/dragonro/DomainAnalyser/internal/crtsh"
	"github.com/dragonro/DomainAnalyser/internal/patterns"
	"github.com/dragonro/DomainAnalyser/internal/ratelimit"
	"github.com/dragonro/DomainAnalyser/internal/resolver"
	"github.com/dragonro/DomainAnalyser/internal/store"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger *slog.Logger
	cfg    *config.Config
}

// buildDeps resolves config and logger for a subcommand invocation.
func buildDeps(cmd *cobra.Command, stderr io.Writer) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return &deps{cfg: cfg, logger: logger}, nil
}

// newResolver creates a DNS resolver configured with the nameserver and proxy
// from the resolved config.
func (d *deps) newResolver() (*resolver.Client, error) {
	r, err := resolver.New(d.cfg.Nameserver, d.cfg.Proxy, d.logger)
	if err != nil {
		return nil, fmt.Errorf("creating DNS resolver: %w", err)
	}
	return r, nil
}

// loadPatterns loads the provider fingerprint table, prepending any
// user-supplied override file from config.
func (d *deps) loadPatterns() (patterns.Table, error) {
	paths, err := patterns.DefaultPaths()
	if err != nil {
		return patterns.Table{}, fmt.Errorf("resolving pattern paths: %w", err)
	}
	if d.cfg.Patterns != "" {
		paths = append([]string{d.cfg.Patterns}, paths...)
	}
	table, err := patterns.Load(paths...)
	if err != nil {
		return patterns.Table{}, fmt.Errorf("loading provider patterns: %w", err)
	}
	return table, nil
}

// newAnalyzer assembles the analysis engine from the resolved config.
func (d *deps) newAnalyzer() (*analyzer.Analyzer, error) {
	r, err := d.newResolver()
	if err != nil {
		return nil, err
	}
	table, err := d.loadPatterns()
	if err != nil {
		return nil, err
	}
	limiter := ratelimit.New(d.cfg.RateLimit, 1)
	annotator, err := asn.New(d.cfg.MMDB, r, d.logger)
	if err != nil {
		return nil, fmt.Errorf("creating ASN annotator: %w", err)
	}
	return analyzer.New(r, table, limiter, annotator, d.logger), nil
}

// newCrtshClient creates the certificate transparency client.
func (d *deps) newCrtshClient() *crtsh.Client {
	client := req.C().
		SetTimeout(30 * time.Second).
		SetUserAgent("domainanalyser")
	if d.cfg.Proxy != "" {
		client.SetProxyURL(d.cfg.Proxy)
	}
	return crtsh.NewClient(client, d.logger)
}

// openStore opens the report database at the configured path, defaulting to
// the OS-appropriate data directory.
func (d *deps) openStore() (*store.Store, error) {
	path := d.cfg.Database
	if path == "" {
		dir, err := appdir.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data dir: %w", err)
		}
		path = filepath.Join(dir, "reports.db")
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report database: %w", err)
	}
	return st, nil
}

// analyzeOptions maps the resolved config to engine options.
func (d *deps) analyzeOptions(includeSubdomains bool, extra []string) analyzer.Options {
	return analyzer.Options{
		IncludeSubdomains: includeSubdomains,
		WordlistPath:      d.cfg.Wordlist,
		ExtraCandidates:   extra,
		MaxConcurrency:    d.cfg.MaxConcurrency,
	}
}
