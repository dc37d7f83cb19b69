package asn_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonro/DomainAnalyser/internal/asn"
	"github.com/dragonro/DomainAnalyser/internal/testutil"
)

func newAnnotator(t *testing.T, answers map[string][]string) *asn.Annotator {
	t.Helper()
	a, err := asn.New("", testutil.TableResolver(answers), testutil.NopLogger())
	require.NoError(t, err)
	return a
}

func TestAnnotate_CymruWithDescription(t *testing.T) {
	a := newAnnotator(t, map[string][]string{
		"8.8.8.8.origin.asn.cymru.com TXT": {"15169 | 8.8.8.0/24 | US | arin | 1992-12-01"},
		"AS15169.asn.cymru.com TXT":        {"15169 | US | arin | 2000-03-30 | GOOGLE, US"},
	})

	got := a.Annotate(context.Background(), []string{"8.8.8.8"})
	assert.Equal(t, []string{"AS15169 GOOGLE, US"}, got)
}

func TestAnnotate_CymruWithoutDescription(t *testing.T) {
	a := newAnnotator(t, map[string][]string{
		"4.3.2.1.origin.asn.cymru.com TXT": {"64496 | 1.2.3.0/24 | US | arin | 2020-01-01"},
	})

	got := a.Annotate(context.Background(), []string{"1.2.3.4"})
	assert.Equal(t, []string{"AS64496"}, got)
}

func TestAnnotate_MultiOriginKeepsFirst(t *testing.T) {
	a := newAnnotator(t, map[string][]string{
		"4.3.2.1.origin.asn.cymru.com TXT": {"64496 64497 | 1.2.3.0/24 | US | arin | 2020-01-01"},
	})

	got := a.Annotate(context.Background(), []string{"1.2.3.4"})
	assert.Equal(t, []string{"AS64496"}, got)
}

func TestAnnotate_Deduplicates(t *testing.T) {
	a := newAnnotator(t, map[string][]string{
		"4.3.2.1.origin.asn.cymru.com TXT": {"64496 | 1.2.3.0/24 | US | arin | 2020-01-01"},
		"5.3.2.1.origin.asn.cymru.com TXT": {"64496 | 1.2.3.0/24 | US | arin | 2020-01-01"},
	})

	got := a.Annotate(context.Background(), []string{"1.2.3.4", "1.2.3.5"})
	assert.Equal(t, []string{"AS64496"}, got)
}

func TestAnnotate_LookupFailuresSkipped(t *testing.T) {
	a := newAnnotator(t, map[string][]string{})

	got := a.Annotate(context.Background(), []string{"1.2.3.4", "not-an-ip"})
	assert.Nil(t, got)
}

func TestNew_MissingDatabaseDegrades(t *testing.T) {
	a, err := asn.New("/nonexistent/GeoLite2-ASN.mmdb", testutil.TableResolver(nil), testutil.NopLogger())
	require.NoError(t, err, "missing mmdb falls back to Cymru DNS")
	require.NoError(t, a.Close())
}
