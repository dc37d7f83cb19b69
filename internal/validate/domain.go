// Package validate checks user-supplied analysis targets.
package validate

import "regexp"

// domainRegexp accepts dotted hostnames: letter/digit labels of up to 63
// characters with inner hyphens, ending in an alphabetic TLD of at least two
// characters. No trailing dot.
var domainRegexp = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsDomain reports whether s is usable as an analysis target.
func IsDomain(s string) bool {
	return domainRegexp.MatchString(s)
}
