// Package analyzer implements the DNS reconnaissance engine: domain existence
// verification, concurrent multi-record-type aggregation, wordlist-driven
// subdomain enumeration under a concurrency cap, and provider/network
// fingerprinting of the resolved records.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dragonro/DomainAnalyser/internal/apperr"
	"github.com/dragonro/DomainAnalyser/internal/patterns"
	"github.com/dragonro/DomainAnalyser/internal/ratelimit"
	"github.com/dragonro/DomainAnalyser/internal/validate"
	"github.com/dragonro/DomainAnalyser/internal/wordlist"
)

// Resolver issues a single DNS query for one (name, record type) pair.
// Implementations must return an empty list for every DNS-level failure and a
// non-nil error only for context cancellation. *resolver.Client satisfies
// this interface.
type Resolver interface {
	Resolve(ctx context.Context, name, recordType string) ([]string, error)
}

// ASNAnnotator enriches resolved IP addresses with origin-ASN descriptions.
// Optional; a nil annotator disables enrichment.
type ASNAnnotator interface {
	Annotate(ctx context.Context, ips []string) []string
}

// Concurrency bounds for subdomain enumeration.
const (
	DefaultMaxConcurrency = 20
	MaxConcurrencyLimit   = 100
)

// Analyzer ties the resolver, the provider pattern table, and the optional
// rate limiter and ASN annotator together. Safe for concurrent use; the
// pattern table is read-only after construction.
type Analyzer struct {
	resolver  Resolver
	table     patterns.Table
	limiter   *ratelimit.Limiter
	annotator ASNAnnotator
	logger    *slog.Logger
}

// New creates an Analyzer. limiter and annotator may be nil.
func New(resolver Resolver, table patterns.Table, limiter *ratelimit.Limiter, annotator ASNAnnotator, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		resolver:  resolver,
		table:     table,
		limiter:   limiter,
		annotator: annotator,
		logger:    logger,
	}
}

// Options control a single AnalyzeDomain run.
type Options struct {
	// IncludeSubdomains enables wordlist enumeration after the apex analysis.
	IncludeSubdomains bool
	// WordlistPath overrides the embedded candidate list. A missing file
	// yields an empty enumeration, not an error.
	WordlistPath string
	// ExtraCandidates are additional subdomain labels (e.g. from certificate
	// transparency) merged with the wordlist.
	ExtraCandidates []string
	// MaxConcurrency caps simultaneously in-flight subdomain probes.
	// Zero means DefaultMaxConcurrency; values outside [1,100] are rejected.
	MaxConcurrency int
}

// AnalyzeDomain is the sole entry point of the engine. It verifies the domain
// exists, aggregates and classifies the apex records, and optionally
// enumerates subdomains. DNS-level failures never surface as errors; the
// returned error is non-nil only for caller misuse or cancellation.
func (a *Analyzer) AnalyzeDomain(ctx context.Context, domain string, opts Options) (*DomainAnalysis, error) {
	if !validate.IsDomain(domain) {
		return nil, fmt.Errorf("%w: must be a valid domain name: %q", apperr.ErrInvalidInput, domain)
	}
	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency == 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	if maxConcurrency < 1 || maxConcurrency > MaxConcurrencyLimit {
		return nil, fmt.Errorf("%w: max concurrency must be between 1 and %d, got %d",
			apperr.ErrInvalidInput, MaxConcurrencyLimit, opts.MaxConcurrency)
	}

	exists, err := a.VerifyExists(ctx, domain)
	if err != nil {
		return nil, err
	}
	if !exists {
		// Not an error: callers decide how to surface a dead domain.
		// No further network calls are made.
		return newNonexistentAnalysis(domain), nil
	}

	records, err := a.GatherRecords(ctx, domain)
	if err != nil {
		return nil, err
	}

	analysis := &DomainAnalysis{
		Domain:      domain,
		Exists:      true,
		ApexRecords: records,
		Providers:   ClassifyProvider(records["MX"], records["TXT"]),
		Subdomains:  []SubdomainInsight{},
	}

	if a.annotator != nil {
		var ips []string
		ips = append(ips, records["A"]...)
		ips = append(ips, records["AAAA"]...)
		analysis.ASN = a.annotator.Annotate(ctx, ips)
	}
	analysis.Networks = a.DetectNetworks(records, analysis.ASN...)

	if opts.IncludeSubdomains {
		candidates, err := a.candidates(opts)
		if err != nil {
			return nil, err
		}
		insights, err := a.EnumerateSubdomains(ctx, domain, candidates, maxConcurrency)
		if err != nil {
			return nil, err
		}
		analysis.Subdomains = insights
	}

	return analysis, nil
}

// candidates assembles the subdomain candidate list: the configured wordlist
// (or the embedded default), merged with any extra labels, deduplicated with
// first-seen order preserved.
func (a *Analyzer) candidates(opts Options) ([]string, error) {
	var labels []string
	if opts.WordlistPath != "" {
		fromFile, err := wordlist.FromFile(opts.WordlistPath)
		if err != nil {
			return nil, fmt.Errorf("reading wordlist %q: %w", opts.WordlistPath, err)
		}
		labels = fromFile
	} else {
		labels = wordlist.Default()
	}

	if len(opts.ExtraCandidates) == 0 {
		return labels, nil
	}
	seen := make(map[string]struct{}, len(labels)+len(opts.ExtraCandidates))
	merged := make([]string, 0, len(labels)+len(opts.ExtraCandidates))
	for _, label := range append(labels, opts.ExtraCandidates...) {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		merged = append(merged, label)
	}
	return merged, nil
}
