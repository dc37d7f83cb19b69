package analyzer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// EnumerateSubdomains probes <candidate>.<domain> for every candidate label
// with at most maxConcurrency probes in flight, keeps the candidates that
// resolved any records, classifies them, and returns the insights sorted by
// fully-qualified name. Candidates that resolve nothing are silently
// discarded. The only error is cancellation; it aborts all outstanding
// probes together.
func (a *Analyzer) EnumerateSubdomains(ctx context.Context, domain string, candidates []string, maxConcurrency int) ([]SubdomainInsight, error) {
	if len(candidates) == 0 {
		return []SubdomainInsight{}, nil
	}

	var (
		mu       sync.Mutex
		insights []SubdomainInsight
	)

	// SetLimit is the admission gate: at most maxConcurrency probe
	// goroutines exist at any instant, each owning one aggregate query.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for _, candidate := range candidates {
		fqdn := candidate + "." + domain
		g.Go(func() error {
			if err := a.limiter.Wait(gctx); err != nil {
				return err
			}
			records, err := a.GatherRecords(gctx, fqdn)
			if err != nil {
				return err
			}
			if records.IsEmpty() {
				return nil
			}
			insight := SubdomainInsight{
				FQDN:      fqdn,
				Records:   records,
				Providers: ClassifyProvider(records["MX"], records["TXT"]),
				Networks:  a.DetectNetworks(records),
			}
			mu.Lock()
			insights = append(insights, insight)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic output independent of probe completion order.
	sortInsights(insights)
	if insights == nil {
		insights = []SubdomainInsight{}
	}
	return insights, nil
}
