// Package patterns loads the provider fingerprint table: a mapping from
// provider key to regular-expression lists for the ns, mx, spf, and asn
// categories. The table is read once at startup and is immutable afterwards.
package patterns

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dragonro/DomainAnalyser/internal/appdir"
)

//go:embed providers.yaml
var embeddedProviders []byte

// categoryPatterns is the on-disk shape of one provider entry.
type categoryPatterns struct {
	NS  []string `yaml:"ns"`
	MX  []string `yaml:"mx"`
	SPF []string `yaml:"spf"`
	ASN []string `yaml:"asn"`
}

// Provider holds the compiled patterns for one provider. Name is the
// display name derived from the provider key ("google_cloud" → "Google Cloud").
type Provider struct {
	Name string
	NS   []*regexp.Regexp
	MX   []*regexp.Regexp
	SPF  []*regexp.Regexp
	ASN  []*regexp.Regexp
}

// Table is the compiled provider fingerprint table. The zero value is the
// empty table, under which fingerprinting is a no-op.
type Table struct {
	Providers []Provider
}

// IsEmpty reports whether the table contains no providers.
func (t Table) IsEmpty() bool { return len(t.Providers) == 0 }

// Parse compiles a YAML provider table. Providers are ordered by key so the
// compiled table is deterministic regardless of map iteration order.
func Parse(data []byte) (Table, error) {
	var raw map[string]categoryPatterns
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Table{}, fmt.Errorf("parsing provider patterns: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var t Table
	for _, key := range keys {
		entry := raw[key]
		p := Provider{Name: titleCase(key)}
		var err error
		if p.NS, err = compileAll(key, "ns", entry.NS); err != nil {
			return Table{}, err
		}
		if p.MX, err = compileAll(key, "mx", entry.MX); err != nil {
			return Table{}, err
		}
		if p.SPF, err = compileAll(key, "spf", entry.SPF); err != nil {
			return Table{}, err
		}
		if p.ASN, err = compileAll(key, "asn", entry.ASN); err != nil {
			return Table{}, err
		}
		t.Providers = append(t.Providers, p)
	}
	return t, nil
}

// compileAll compiles exprs case-insensitively for substring search.
func compileAll(key, category string, exprs []string) ([]*regexp.Regexp, error) {
	var compiled []*regexp.Regexp
	for _, expr := range exprs {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("provider %q: invalid %s pattern %q: %w", key, category, expr, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// titleCase converts an underscore-separated provider key to a display name:
// each word starts with an upper-case letter, the rest is lower-cased.
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

// Load tries each path in order; the first file that exists is parsed. A
// configured path that does not exist degrades to the next candidate, and
// when no file is found the embedded defaults are used. Passing the reserved
// path "none" yields the empty table, disabling fingerprinting.
func Load(paths ...string) (Table, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if path == "none" {
			return Table{}, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Table{}, fmt.Errorf("reading provider patterns %q: %w", path, err)
		}
		return Parse(data)
	}
	return Parse(embeddedProviders)
}

// DefaultPaths returns the user override path consulted before the embedded
// defaults. Derives from appdir.ConfigDir().
func DefaultPaths() ([]string, error) {
	dir, err := appdir.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	return []string{filepath.Join(dir, "providers.yaml")}, nil
}
