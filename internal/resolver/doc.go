// Package resolver issues single DNS queries against a configured recursive
// upstream. All DNS-level failures (NXDOMAIN, SERVFAIL, timeout, unreachable
// nameserver) collapse into an empty result; only context cancellation from
// the caller propagates as an error. When a SOCKS5 proxy is configured,
// queries are tunnelled over DNS-over-TCP to prevent DNS leaks.
package resolver
