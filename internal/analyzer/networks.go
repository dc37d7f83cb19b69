package analyzer

import (
	"regexp"
	"sort"
)

// DetectNetworks matches the record values against the provider pattern
// table and returns the sorted, deduplicated display names of every provider
// that matched. With an empty table this is a no-op. extra values (ASN
// annotations) join the non-NS/MX/TXT pool consulted by the asn category.
//
// Per provider the categories are tried in order: ns against NS values, mx
// against MX values, spf against TXT values, and asn against the first
// non-empty source of {other record values, NS values, MX values}. A
// provider contributes at most one name regardless of how many categories
// matched.
func (a *Analyzer) DetectNetworks(records RecordSet, extra ...string) []string {
	matches := []string{}
	if a.table.IsEmpty() {
		return matches
	}

	nsValues := records["NS"]
	mxValues := records["MX"]
	txtValues := records["TXT"]

	var other []string
	for recordType, values := range records {
		if recordType == "NS" || recordType == "MX" || recordType == "TXT" {
			continue
		}
		other = append(other, values...)
	}
	other = append(other, extra...)

	asnSource := other
	if len(asnSource) == 0 {
		asnSource = nsValues
	}
	if len(asnSource) == 0 {
		asnSource = mxValues
	}

	seen := map[string]struct{}{}
	for _, provider := range a.table.Providers {
		detected := matchAny(nsValues, provider.NS) ||
			matchAny(mxValues, provider.MX) ||
			matchAny(txtValues, provider.SPF) ||
			matchAny(asnSource, provider.ASN)
		if !detected {
			continue
		}
		if _, dup := seen[provider.Name]; dup {
			continue
		}
		seen[provider.Name] = struct{}{}
		matches = append(matches, provider.Name)
	}
	sort.Strings(matches)
	return matches
}

// matchAny reports whether any value matches any pattern. False when either
// side is empty.
func matchAny(values []string, res []*regexp.Regexp) bool {
	for _, value := range values {
		for _, re := range res {
			if re.MatchString(value) {
				return true
			}
		}
	}
	return false
}
