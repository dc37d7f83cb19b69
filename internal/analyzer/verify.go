package analyzer

import (
	"context"
	"fmt"
	"sync"

	"github.com/dragonro/DomainAnalyser/internal/apperr"
	"github.com/dragonro/DomainAnalyser/internal/validate"
)

// existenceProbes are the record types raced to decide whether a domain is
// live. NS alone does not count: a delegated but empty zone is not "live".
var existenceProbes = []string{"SOA", "A", "MX"}

// VerifyExists reports whether name resolves at all: SOA, A, and MX are
// probed concurrently and the domain exists iff at least one answer is
// non-empty. Individual probe failures are tolerated; the verifier itself
// fails only when ctx is cancelled.
func (a *Analyzer) VerifyExists(ctx context.Context, name string) (bool, error) {
	if !validate.IsDomain(name) {
		return false, fmt.Errorf("%w: must be a valid domain name: %q", apperr.ErrInvalidInput, name)
	}
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		found bool
	)
	for _, probe := range existenceProbes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			values, err := a.resolver.Resolve(ctx, name, probe)
			if err != nil {
				// Cancellation; surfaced below via ctx.Err().
				return
			}
			if len(values) > 0 {
				mu.Lock()
				found = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	return found, nil
}
