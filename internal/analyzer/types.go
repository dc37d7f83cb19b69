package analyzer

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// RecordTypes are the record types aggregated per name, in display order.
var RecordTypes = []string{"A", "AAAA", "MX", "TXT", "NS", "CNAME"}

// RecordSet maps record-type tags to sorted, deduplicated value lists.
// A type is present as a key only when its list is non-empty. Never mutated
// after construction.
type RecordSet map[string][]string

// IsEmpty reports whether no record type resolved.
func (rs RecordSet) IsEmpty() bool { return len(rs) == 0 }

// ProviderBreakdown labels the email and productivity provider of a name,
// with the raw record values the labels were derived from. Evidence keys
// ("mx", "txt") are present only when the corresponding raw list is non-empty.
type ProviderBreakdown struct {
	Email        string              `json:"email"`
	Productivity string              `json:"productivity"`
	Evidence     map[string][]string `json:"evidence"`
}

// SubdomainInsight is the analysis of one discovered subdomain. Built only
// for candidates whose RecordSet is non-empty; immutable once built.
type SubdomainInsight struct {
	FQDN      string            `json:"fqdn"`
	Records   RecordSet         `json:"records"`
	Providers ProviderBreakdown `json:"providers"`
	Networks  []string          `json:"networks"`
}

// DomainAnalysis is the sole externally visible output of the engine.
// Constructed once per analysis and handed to the caller without further
// mutation.
type DomainAnalysis struct {
	Domain      string             `json:"domain"`
	Exists      bool               `json:"exists"`
	ApexRecords RecordSet          `json:"apex_records"`
	Providers   ProviderBreakdown  `json:"providers"`
	Networks    []string           `json:"networks"`
	ASN         []string           `json:"asn,omitempty"`
	Subdomains  []SubdomainInsight `json:"subdomains"`
}

// newNonexistentAnalysis is the fixed shape returned when existence
// verification fails: everything empty, labels unknown.
func newNonexistentAnalysis(domain string) *DomainAnalysis {
	return &DomainAnalysis{
		Domain:      domain,
		Exists:      false,
		ApexRecords: RecordSet{},
		Providers:   unknownProvider(),
		Networks:    []string{},
		Subdomains:  []SubdomainInsight{},
	}
}

// WritePlain renders the analysis one record per line for piping:
// "NAME TYPE VALUE", subdomains after the apex, detections last.
func (d *DomainAnalysis) WritePlain(w io.Writer) error {
	if !d.Exists {
		_, err := fmt.Fprintf(w, "%s NXDOMAIN\n", d.Domain)
		return err
	}
	if err := writeRecordSetPlain(w, d.Domain, d.ApexRecords); err != nil {
		return err
	}
	for _, sub := range d.Subdomains {
		if err := writeRecordSetPlain(w, sub.FQDN, sub.Records); err != nil {
			return err
		}
	}
	for _, name := range d.Networks {
		if _, err := fmt.Fprintf(w, "%s NETWORK %s\n", d.Domain, name); err != nil {
			return err
		}
	}
	return nil
}

func writeRecordSetPlain(w io.Writer, name string, rs RecordSet) error {
	for _, rt := range RecordTypes {
		for _, v := range rs[rt] {
			if _, err := fmt.Fprintf(w, "%s %s %s\n", name, rt, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteText renders a human-readable report.
func (d *DomainAnalysis) WriteText(w io.Writer) error {
	if !d.Exists {
		_, err := fmt.Fprintf(w, "%s: domain could not be verified\n", d.Domain)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", d.Domain); err != nil {
		return err
	}
	if err := writeRecordSetText(w, d.ApexRecords, "  "); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Provider: %s\n", d.Providers.Email); err != nil {
		return err
	}
	if len(d.Networks) > 0 {
		if _, err := fmt.Fprintf(w, "  Networks: %s\n", strings.Join(d.Networks, ", ")); err != nil {
			return err
		}
	}
	if len(d.ASN) > 0 {
		if _, err := fmt.Fprintf(w, "  ASN: %s\n", strings.Join(d.ASN, "; ")); err != nil {
			return err
		}
	}
	for _, sub := range d.Subdomains {
		if _, err := fmt.Fprintf(w, "\n%s\n", sub.FQDN); err != nil {
			return err
		}
		if err := writeRecordSetText(w, sub.Records, "  "); err != nil {
			return err
		}
		if len(sub.Networks) > 0 {
			if _, err := fmt.Fprintf(w, "  Networks: %s\n", strings.Join(sub.Networks, ", ")); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeRecordSetText(w io.Writer, rs RecordSet, indent string) error {
	for _, rt := range RecordTypes {
		values := rs[rt]
		if len(values) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%-5s %s\n", indent, rt, strings.Join(values, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// sortInsights orders insights by fully-qualified name.
func sortInsights(insights []SubdomainInsight) {
	sort.Slice(insights, func(i, j int) bool {
		return insights[i].FQDN < insights[j].FQDN
	})
}
