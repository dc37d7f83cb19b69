package wordlist_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonro/DomainAnalyser/internal/wordlist"
)

func TestRead(t *testing.T) {
	in := "www\n# comment\n\n  mail  \n\t\n#www\napi"
	candidates, err := wordlist.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"www", "mail", "api"}, candidates)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("www\nmail\n"), 0o600))

	candidates, err := wordlist.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"www", "mail"}, candidates)
}

func TestFromFile_Missing(t *testing.T) {
	candidates, err := wordlist.FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err, "missing wordlist is not an error")
	assert.Empty(t, candidates)
}

func TestDefault(t *testing.T) {
	candidates := wordlist.Default()
	assert.NotEmpty(t, candidates)
	assert.Contains(t, candidates, "www")
	for _, c := range candidates {
		assert.False(t, strings.HasPrefix(c, "#"), "comments must be filtered: %q", c)
	}
}
