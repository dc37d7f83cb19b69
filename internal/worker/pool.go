// Package worker runs domain analyses concurrently over a list of inputs.
package worker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dragonro/DomainAnalyser/internal/analyzer"
)

// Result pairs one input domain with its analysis or per-input error.
type Result struct {
	Input  string
	Output *analyzer.DomainAnalysis
	Err    error
}

// Pool fans AnalyzeDomain out over input domains with a bounded number of
// concurrent analyses.
type Pool struct {
	size   int
	logger *slog.Logger
}

// NewPool creates a pool running at most size analyses at once.
func NewPool(size int, logger *slog.Logger) *Pool {
	return &Pool{
		size:   size,
		logger: logger,
	}
}

// Run analyses every input and returns one Result per input, in input order.
// Per-input failures are recorded in the Result, not returned; the slice is
// always complete.
func (p *Pool) Run(ctx context.Context, a *analyzer.Analyzer, inputs []string, opts analyzer.Options) []Result {
	results := make([]Result, len(inputs))

	g := &errgroup.Group{}
	g.SetLimit(p.size)
	for i, input := range inputs {
		g.Go(func() error {
			p.logger.Debug("analysing domain", "domain", input)
			output, err := a.AnalyzeDomain(ctx, input, opts)
			results[i] = Result{Input: input, Output: output, Err: err}
			return nil
		})
	}
	// Goroutines never return errors; Wait is only a join point.
	_ = g.Wait()

	return results
}
