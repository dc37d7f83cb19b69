package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GatherRecords queries all record types for name concurrently and collects
// the non-empty results. Per-type DNS failures are already absorbed by the
// resolver; the one error that propagates is cancellation of ctx. All
// per-type queries are awaited before returning — no early return on partial
// success.
func (a *Analyzer) GatherRecords(ctx context.Context, name string) (RecordSet, error) {
	results := make([][]string, len(RecordTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, recordType := range RecordTypes {
		g.Go(func() error {
			values, err := a.resolver.Resolve(gctx, name, recordType)
			if err != nil {
				return err
			}
			results[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := RecordSet{}
	for i, recordType := range RecordTypes {
		if len(results[i]) > 0 {
			records[recordType] = results[i]
		}
	}
	return records, nil
}
