// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"io"
	"log/slog"
)

// MockResolver implements analyzer.Resolver for testing. ResolveFn receives
// every query; when nil all queries return no records.
type MockResolver struct {
	ResolveFn func(ctx context.Context, name, recordType string) ([]string, error)
}

// Resolve implements the analyzer.Resolver interface.
func (m *MockResolver) Resolve(ctx context.Context, name, recordType string) ([]string, error) {
	if m.ResolveFn != nil {
		return m.ResolveFn(ctx, name, recordType)
	}
	return nil, nil
}

// TableResolver returns a MockResolver backed by a static answer table keyed
// by "name TYPE" (e.g. "www.example.com A"). Context cancellation is honoured
// before the table is consulted.
func TableResolver(answers map[string][]string) *MockResolver {
	return &MockResolver{
		ResolveFn: func(ctx context.Context, name, recordType string) ([]string, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return answers[name+" "+recordType], nil
		},
	}
}

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
