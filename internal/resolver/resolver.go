package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/net/proxy"

	"github.com/dragonro/DomainAnalyser/internal/apperr"
	"github.com/dragonro/DomainAnalyser/internal/output"
)

// QueryTimeout bounds both the network exchange and the overall lifetime of a
// single query.
const QueryTimeout = 3 * time.Second

// fallbackUpstream is used when no nameserver is configured and
// /etc/resolv.conf cannot be read.
const fallbackUpstream = "8.8.8.8:53"

// qtypes maps record-type tags to DNS type codes. SOA is included for
// existence probing only and never appears in a RecordSet.
var qtypes = map[string]uint16{
	"A":     dns.TypeA,
	"AAAA":  dns.TypeAAAA,
	"MX":    dns.TypeMX,
	"TXT":   dns.TypeTXT,
	"NS":    dns.TypeNS,
	"CNAME": dns.TypeCNAME,
	"SOA":   dns.TypeSOA,
}

// Client issues single (name, record type) queries against one recursive
// upstream. It is stateless per exchange and safe for concurrent use.
type Client struct {
	upstream string
	client   *dns.Client
	dialer   proxy.ContextDialer // non-nil only when a SOCKS5 proxy is configured
	logger   *slog.Logger
}

// New creates a Client. nameserver is a "host" or "host:port" upstream; when
// empty the first /etc/resolv.conf server is used, falling back to a public
// resolver. proxyURL, when it is a socks5:// URL, tunnels all queries over
// DNS-over-TCP through the proxy.
func New(nameserver, proxyURL string, logger *slog.Logger) (*Client, error) {
	upstream := nameserver
	if upstream == "" {
		upstream = systemUpstream()
	}
	if _, _, err := net.SplitHostPort(upstream); err != nil {
		upstream = net.JoinHostPort(upstream, "53")
	}

	c := &Client{
		upstream: upstream,
		client:   &dns.Client{Timeout: QueryTimeout},
		logger:   logger,
	}

	if proxyURL != "" && strings.HasPrefix(proxyURL, "socks5://") {
		host := strings.TrimPrefix(proxyURL, "socks5://")
		d, err := proxy.SOCKS5("tcp", host, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("creating SOCKS5 dialer for DNS: %w", err)
		}
		ctxDialer, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("SOCKS5 dialer does not implement ContextDialer")
		}
		c.dialer = ctxDialer
		c.client.Net = "tcp"
	}

	return c, nil
}

// Upstream returns the upstream address queries are sent to.
func (c *Client) Upstream() string { return c.upstream }

// systemUpstream returns the first resolv.conf nameserver, or the public
// fallback when the file is unavailable (e.g. on Windows).
func systemUpstream() string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return fallbackUpstream
	}
	return net.JoinHostPort(conf.Servers[0], conf.Port)
}

// Resolve queries the upstream for one (name, record type) pair. The returned
// values are deduplicated, lexicographically sorted, and stripped of the
// trailing root dot. Every DNS-level failure yields (nil, nil); the only
// non-nil error is cancellation of the caller's context. Unknown record-type
// tags are caller misuse.
func (c *Client) Resolve(ctx context.Context, name, recordType string) ([]string, error) {
	qtype, ok := qtypes[recordType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown record type %q", apperr.ErrInvalidInput, recordType)
	}

	qctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	resp, err := c.exchange(qctx, msg)
	if err != nil {
		// The caller going away is the one failure that must propagate.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Debug("query failed", "name", name, "type", recordType, "error", err)
		return nil, nil
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var values []string
	for _, rr := range resp.Answer {
		if rr.Header().Rrtype != qtype {
			continue
		}
		v := output.StripANSI(strings.TrimSuffix(renderRR(rr), "."))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// exchange sends msg to the upstream, over the SOCKS5 tunnel when configured.
func (c *Client) exchange(ctx context.Context, msg *dns.Msg) (*dns.Msg, error) {
	if c.dialer == nil {
		resp, _, err := c.client.ExchangeContext(ctx, msg, c.upstream)
		return resp, err
	}
	conn, err := c.dialer.DialContext(ctx, "tcp", c.upstream)
	if err != nil {
		return nil, err
	}
	dnsConn := &dns.Conn{Conn: conn}
	defer dnsConn.Close()
	resp, _, err := c.client.ExchangeWithConnContext(ctx, msg, dnsConn)
	return resp, err
}

// renderRR extracts the value portion of a resource record in the shape the
// rest of the analyser expects: bare hostnames for NS/CNAME, "pref host" for
// MX, concatenated character strings for TXT, the primary nameserver for SOA,
// and the address text for A/AAAA.
func renderRR(rr dns.RR) string {
	switch v := rr.(type) {
	case *dns.A:
		return v.A.String()
	case *dns.AAAA:
		return v.AAAA.String()
	case *dns.MX:
		return fmt.Sprintf("%d %s", v.Preference, v.Mx)
	case *dns.TXT:
		return strings.Join(v.Txt, "")
	case *dns.NS:
		return v.Ns
	case *dns.CNAME:
		return v.Target
	case *dns.SOA:
		return v.Ns
	default:
		// Fallthrough for anything unexpected in the answer section.
		s := rr.String()
		if i := strings.LastIndex(s, "\t"); i >= 0 {
			return s[i+1:]
		}
		return s
	}
}

// IsCancellation reports whether err stems from context cancellation or
// deadline expiry rather than a DNS-level condition.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
