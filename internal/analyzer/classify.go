package analyzer

import "strings"

// Provider labels produced by ClassifyProvider.
const (
	LabelGoogle    = "Google Workspace"
	LabelMicrosoft = "Office 365"
	LabelBoth      = "Google Workspace + Office 365"
	LabelOther     = "Other / Unknown"
	LabelUnknown   = "Unknown"
)

// ClassifyProvider labels the email/productivity provider of a name from its
// MX values and TXT records using fixed case-insensitive substring rules.
// The evidence map carries the raw inputs under "mx" and "txt" regardless of
// which rule fired, each key present only when the raw list is non-empty.
func ClassifyProvider(mxHosts, txtRecords []string) ProviderBreakdown {
	usesGoogle := false
	usesMicrosoft := false

	for _, host := range mxHosts {
		h := strings.ToLower(host)
		if strings.Contains(h, "google") || strings.Contains(h, "aspmx") {
			usesGoogle = true
		}
		if strings.Contains(h, "outlook") || strings.Contains(h, "protection.outlook.com") {
			usesMicrosoft = true
		}
	}
	for _, txt := range txtRecords {
		t := strings.ToLower(txt)
		if strings.Contains(t, "google-site-verification") {
			usesGoogle = true
		}
		if strings.Contains(t, "spf.protection.outlook.com") {
			usesMicrosoft = true
		}
	}

	var label string
	switch {
	case usesGoogle && usesMicrosoft:
		label = LabelBoth
	case usesGoogle:
		label = LabelGoogle
	case usesMicrosoft:
		label = LabelMicrosoft
	default:
		label = LabelOther
	}

	evidence := map[string][]string{}
	if len(mxHosts) > 0 {
		evidence["mx"] = mxHosts
	}
	if len(txtRecords) > 0 {
		evidence["txt"] = txtRecords
	}

	// Email and productivity share one heuristic for now.
	return ProviderBreakdown{Email: label, Productivity: label, Evidence: evidence}
}

// unknownProvider is the breakdown attached to a domain that failed
// existence verification.
func unknownProvider() ProviderBreakdown {
	return ProviderBreakdown{
		Email:        LabelUnknown,
		Productivity: LabelUnknown,
		Evidence:     map[string][]string{},
	}
}
