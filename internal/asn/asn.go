// Package asn resolves origin-ASN descriptions for IP addresses. A local
// GeoLite2 ASN database is used when configured; otherwise lookups go through
// the Team Cymru DNS service. Annotations feed the network fingerprinter's
// asn pattern category.
package asn

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// cymruIPv4Template is the Team Cymru DNS suffix for IPv4 → ASN lookups.
const cymruIPv4Template = "%s.origin.asn.cymru.com"

// cymruIPv6Template is the Team Cymru DNS suffix for IPv6 → ASN lookups.
const cymruIPv6Template = "%s.origin6.asn.cymru.com"

// cymruASNTemplate is the Team Cymru DNS suffix for ASN → info lookups.
const cymruASNTemplate = "%s.asn.cymru.com"

// Resolver is the single-query DNS contract the Cymru path needs.
// *resolver.Client satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, name, recordType string) ([]string, error)
}

// Annotator maps IP addresses to "AS<number> <description>" strings.
type Annotator struct {
	db       *geoip2.Reader // nil when no local database is configured
	resolver Resolver
	logger   *slog.Logger
}

// New creates an Annotator. mmdbPath points to a GeoLite2-ASN database; an
// empty or missing path degrades to Team Cymru DNS lookups rather than
// failing.
func New(mmdbPath string, resolver Resolver, logger *slog.Logger) (*Annotator, error) {
	a := &Annotator{resolver: resolver, logger: logger}
	if mmdbPath == "" {
		return a, nil
	}
	if _, err := os.Stat(mmdbPath); os.IsNotExist(err) {
		logger.Debug("GeoLite2 ASN database not found, using Team Cymru DNS", "path", mmdbPath)
		return a, nil
	}
	db, err := geoip2.Open(mmdbPath)
	if err != nil {
		return nil, fmt.Errorf("opening GeoLite2 ASN database %q: %w", mmdbPath, err)
	}
	a.db = db
	return a, nil
}

// Close releases the local database, if any.
func (a *Annotator) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Annotate returns the sorted, deduplicated ASN descriptions for ips.
// Lookup failures skip the address; an all-failure run yields nil.
func (a *Annotator) Annotate(ctx context.Context, ips []string) []string {
	seen := make(map[string]struct{})
	var annotations []string
	for _, ip := range ips {
		desc := a.lookup(ctx, ip)
		if desc == "" {
			continue
		}
		if _, dup := seen[desc]; dup {
			continue
		}
		seen[desc] = struct{}{}
		annotations = append(annotations, desc)
	}
	sort.Strings(annotations)
	return annotations
}

func (a *Annotator) lookup(ctx context.Context, ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if a.db != nil {
		rec, err := a.db.ASN(parsed)
		if err != nil || rec.AutonomousSystemNumber == 0 {
			return ""
		}
		return strings.TrimSpace(fmt.Sprintf("AS%d %s", rec.AutonomousSystemNumber, rec.AutonomousSystemOrganization))
	}
	return a.lookupCymru(ctx, parsed)
}

// lookupCymru resolves the origin ASN via Team Cymru TXT records and, when
// possible, enriches it with the AS description.
// IP record: "13335 | 1.1.1.0/24 | AU | apnic | 2011-08-11"
// AS record: "13335 | US | arin | 2010-07-14 | CLOUDFLARENET, US"
func (a *Annotator) lookupCymru(ctx context.Context, ip net.IP) string {
	reversed, isV6 := reverseIP(ip)
	tmpl := cymruIPv4Template
	if isV6 {
		tmpl = cymruIPv6Template
	}

	txts, err := a.resolver.Resolve(ctx, fmt.Sprintf(tmpl, reversed), "TXT")
	if err != nil || len(txts) == 0 {
		return ""
	}
	fields := strings.Split(txts[0], "|")
	asn := "AS" + strings.TrimSpace(fields[0])
	// Multi-origin answers list ASNs space-separated; keep the first.
	if i := strings.IndexByte(asn[2:], ' '); i >= 0 {
		asn = asn[:2+i]
	}

	infos, err := a.resolver.Resolve(ctx, fmt.Sprintf(cymruASNTemplate, asn), "TXT")
	if err != nil || len(infos) == 0 {
		return asn
	}
	parts := strings.Split(infos[0], "|")
	if len(parts) >= 5 {
		if desc := strings.TrimSpace(parts[4]); desc != "" {
			return asn + " " + desc
		}
	}
	return asn
}

// reverseIP reverses an IP for Team Cymru DNS queries: octets for IPv4,
// nibbles for IPv6. Reports whether the address is IPv6.
func reverseIP(ip net.IP) (string, bool) {
	if v4 := ip.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.%d", v4[3], v4[2], v4[1], v4[0]), false
	}
	v6 := ip.To16()
	nibbles := make([]string, 0, 32)
	for _, b := range v6 {
		nibbles = append(nibbles, fmt.Sprintf("%x", b>>4), fmt.Sprintf("%x", b&0xf))
	}
	for i, j := 0, len(nibbles)-1; i < j; i, j = i+1, j-1 {
		nibbles[i], nibbles[j] = nibbles[j], nibbles[i]
	}
	return strings.Join(nibbles, "."), true
}
