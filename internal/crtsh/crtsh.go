// Package crtsh finds subdomain candidates in certificate transparency logs
// via the crt.sh JSON API. It is an optional passive source feeding the
// subdomain enumerator alongside the wordlist.
package crtsh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/imroc/req/v3"

	"github.com/dragonro/DomainAnalyser/internal/apperr"
	"github.com/dragonro/DomainAnalyser/internal/output"
	"github.com/dragonro/DomainAnalyser/internal/validate"
)

// baseURL is the crt.sh API endpoint; the `%.domain` wildcard form finds all
// subdomains.
const baseURL = "https://crt.sh/?q=%%.%s&output=json"

// entry represents a single record returned by the crt.sh JSON API.
type entry struct {
	CommonName string `json:"common_name"`
	NameValue  string `json:"name_value"`
}

// Client queries the crt.sh certificate transparency log API.
type Client struct {
	http   *req.Client
	logger *slog.Logger
}

// NewClient creates a crt.sh client with the given HTTP client and logger.
func NewClient(http *req.Client, logger *slog.Logger) *Client {
	return &Client{http: http, logger: logger}
}

// Subdomains returns the sorted, deduplicated subdomain FQDNs of domain seen
// in CT logs. Wildcards, the apex itself, and foreign names are filtered out.
// Cancellation mid-request returns the (empty) partial result without error,
// matching the engine's "passive sources degrade" posture.
func (c *Client) Subdomains(ctx context.Context, domain string) ([]string, error) {
	domain = output.StripANSI(domain)
	if !validate.IsDomain(domain) {
		return nil, fmt.Errorf("%w: must be a valid domain name: %q", apperr.ErrInvalidInput, domain)
	}

	url := fmt.Sprintf(baseURL, domain)
	var entries []entry
	resp, err := c.http.R().
		SetContext(ctx).
		SetSuccessResult(&entries).
		Get(url)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: crt.sh request error for %q: %w", apperr.ErrRequestFailed, domain, err)
	}
	if !resp.IsSuccessState() {
		body := resp.String()
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		return nil, fmt.Errorf("%w: crt.sh returned HTTP %d for %q: %q", apperr.ErrRequestFailed, resp.StatusCode, domain, body)
	}

	seen := make(map[string]struct{})
	var subdomains []string
	for _, e := range entries {
		for _, name := range []string{e.CommonName, e.NameValue} {
			for _, sub := range strings.Split(name, "\n") {
				sub = output.StripANSI(strings.TrimSpace(sub))
				if sub == "" || !c.isValidSubdomain(sub, domain) {
					continue
				}
				if _, dup := seen[sub]; dup {
					continue
				}
				seen[sub] = struct{}{}
				subdomains = append(subdomains, sub)
			}
		}
	}
	sort.Strings(subdomains)
	return subdomains, nil
}

func (c *Client) isValidSubdomain(sub, domain string) bool {
	if strings.HasPrefix(sub, "*") {
		c.logger.Debug("crt.sh: skipping wildcard", "sub", sub, "domain", domain)
		return false
	}
	if sub == domain {
		return false
	}
	if !strings.HasSuffix(sub, "."+domain) {
		c.logger.Debug("crt.sh: skipping foreign domain", "sub", sub, "domain", domain)
		return false
	}
	if !validate.IsDomain(sub) {
		c.logger.Debug("crt.sh: skipping invalid format", "sub", sub, "domain", domain)
		return false
	}
	return true
}

// Labels converts subdomain FQDNs of domain to bare candidate labels for the
// enumerator ("www.api.example.com" → "www.api").
func Labels(subdomains []string, domain string) []string {
	labels := make([]string, 0, len(subdomains))
	for _, sub := range subdomains {
		label := strings.TrimSuffix(sub, "."+domain)
		if label != "" && label != sub {
			labels = append(labels, label)
		}
	}
	return labels
}
