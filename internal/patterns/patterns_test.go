package patterns_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonro/DomainAnalyser/internal/patterns"
)

func TestParse_TitleCasedNames(t *testing.T) {
	table, err := patterns.Parse([]byte(`
google_cloud:
  ns: ['googledomains']
amazon_web_services:
  asn: ['amazon']
`))
	require.NoError(t, err)
	require.Len(t, table.Providers, 2)

	// Providers are ordered by key.
	assert.Equal(t, "Amazon Web Services", table.Providers[0].Name)
	assert.Equal(t, "Google Cloud", table.Providers[1].Name)
}

func TestParse_CaseInsensitiveSubstring(t *testing.T) {
	table, err := patterns.Parse([]byte("cloudflare:\n  ns: ['cloudflare\\.com']\n"))
	require.NoError(t, err)
	require.Len(t, table.Providers, 1)

	re := table.Providers[0].NS[0]
	assert.True(t, re.MatchString("ZARA.NS.CLOUDFLARE.COM"))
	assert.True(t, re.MatchString("prefix cloudflare.com suffix"))
	assert.False(t, re.MatchString("cloudflareXcom"))
}

func TestParse_InvalidPattern(t *testing.T) {
	_, err := patterns.Parse([]byte("bad:\n  mx: ['[unclosed']\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mx pattern")
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	table, err := patterns.Load()
	require.NoError(t, err)
	assert.False(t, table.IsEmpty())
}

func TestLoad_MissingOverrideFallsBack(t *testing.T) {
	table, err := patterns.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, table.IsEmpty(), "missing override degrades to embedded defaults")
}

func TestLoad_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("only_one:\n  ns: ['x']\n"), 0o600))

	table, err := patterns.Load(path)
	require.NoError(t, err)
	require.Len(t, table.Providers, 1)
	assert.Equal(t, "Only One", table.Providers[0].Name)
}

func TestLoad_None(t *testing.T) {
	table, err := patterns.Load("none")
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
}
