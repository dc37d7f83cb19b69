package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonro/DomainAnalyser/internal/analyzer"
	"github.com/dragonro/DomainAnalyser/internal/patterns"
	"github.com/dragonro/DomainAnalyser/internal/testutil"
)

func newAnalyzer(r analyzer.Resolver, table patterns.Table) *analyzer.Analyzer {
	return analyzer.New(r, table, nil, nil, testutil.NopLogger())
}

func TestGatherRecords(t *testing.T) {
	resolver := testutil.TableResolver(map[string][]string{
		"example.com A":   {"1.2.3.4", "5.6.7.8"},
		"example.com MX":  {"10 aspmx.l.google.com"},
		"example.com TXT": {"v=spf1 -all"},
		// AAAA, NS, CNAME resolve nothing.
	})

	records, err := newAnalyzer(resolver, patterns.Table{}).GatherRecords(context.Background(), "example.com")
	require.NoError(t, err)

	assert.Equal(t, analyzer.RecordSet{
		"A":   {"1.2.3.4", "5.6.7.8"},
		"MX":  {"10 aspmx.l.google.com"},
		"TXT": {"v=spf1 -all"},
	}, records)

	// Keys are a subset of the aggregated record types; empty types are absent.
	for key := range records {
		assert.Contains(t, analyzer.RecordTypes, key)
		assert.NotEmpty(t, records[key])
	}
}

func TestGatherRecords_AllEmpty(t *testing.T) {
	records, err := newAnalyzer(&testutil.MockResolver{}, patterns.Table{}).GatherRecords(context.Background(), "empty.example")
	require.NoError(t, err)
	assert.True(t, records.IsEmpty())
}

func TestGatherRecords_CancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := &testutil.MockResolver{
		ResolveFn: func(ctx context.Context, _, _ string) ([]string, error) {
			return nil, ctx.Err()
		},
	}

	_, err := newAnalyzer(resolver, patterns.Table{}).GatherRecords(ctx, "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
