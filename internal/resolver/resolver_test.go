package resolver_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragonro/DomainAnalyser/internal/apperr"
	"github.com/dragonro/DomainAnalyser/internal/resolver"
	"github.com/dragonro/DomainAnalyser/internal/testutil"
)

// startServer runs a local DNS server with the given handler and returns its
// address. The server is shut down when the test ends.
func startServer(t *testing.T, handler dns.Handler) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &dns.Server{PacketConn: pc, Handler: handler}
	go srv.ActivateAndServe() //nolint:errcheck
	t.Cleanup(func() { srv.Shutdown() }) //nolint:errcheck

	return pc.LocalAddr().String()
}

func newClient(t *testing.T, addr string) *resolver.Client {
	t.Helper()
	c, err := resolver.New(addr, "", testutil.NopLogger())
	require.NoError(t, err)
	return c
}

func TestResolve_ARecords(t *testing.T) {
	addr := startServer(t, dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		// Out of order and duplicated on purpose.
		for _, ip := range []string{"93.184.216.34", "1.2.3.4", "93.184.216.34"} {
			rr := &dns.A{
				Hdr: dns.RR_Header{Name: r.Question[0].Name, Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 60},
				A:   net.ParseIP(ip),
			}
			m.Answer = append(m.Answer, rr)
		}
		w.WriteMsg(m) //nolint:errcheck
	}))

	values, err := newClient(t, addr).Resolve(context.Background(), "example.com", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.2.3.4", "93.184.216.34"}, values, "sorted and deduplicated")
}

func TestResolve_MXAndTXT(t *testing.T) {
	addr := startServer(t, dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		switch r.Question[0].Qtype {
		case dns.TypeMX:
			m.Answer = append(m.Answer, &dns.MX{
				Hdr:        dns.RR_Header{Name: r.Question[0].Name, Rrtype: dns.TypeMX, Class: dns.ClassINET, Ttl: 60},
				Preference: 10,
				Mx:         "aspmx.l.google.com.",
			})
		case dns.TypeTXT:
			m.Answer = append(m.Answer, &dns.TXT{
				Hdr: dns.RR_Header{Name: r.Question[0].Name, Rrtype: dns.TypeTXT, Class: dns.ClassINET, Ttl: 60},
				Txt: []string{"v=spf1 include:_spf.goo", "gle.com ~all"},
			})
		}
		w.WriteMsg(m) //nolint:errcheck
	}))

	c := newClient(t, addr)

	mx, err := c.Resolve(context.Background(), "example.com", "MX")
	require.NoError(t, err)
	assert.Equal(t, []string{"10 aspmx.l.google.com"}, mx, "preference kept, root dot stripped")

	txt, err := c.Resolve(context.Background(), "example.com", "TXT")
	require.NoError(t, err)
	assert.Equal(t, []string{"v=spf1 include:_spf.google.com ~all"}, txt, "character strings joined")
}

func TestResolve_NXDomain(t *testing.T) {
	addr := startServer(t, dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeNameError)
		w.WriteMsg(m) //nolint:errcheck
	}))

	values, err := newClient(t, addr).Resolve(context.Background(), "nope.invalid", "A")
	require.NoError(t, err, "NXDOMAIN is not an error")
	assert.Empty(t, values)
}

func TestResolve_ServFail(t *testing.T) {
	addr := startServer(t, dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetRcode(r, dns.RcodeServerFailure)
		w.WriteMsg(m) //nolint:errcheck
	}))

	values, err := newClient(t, addr).Resolve(context.Background(), "example.com", "A")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestResolve_UnreachableUpstream(t *testing.T) {
	// Reserved port with nothing listening: exchange fails at the network level.
	c := newClient(t, "127.0.0.1:1")

	values, err := c.Resolve(context.Background(), "example.com", "A")
	require.NoError(t, err, "unreachable nameserver is not an error")
	assert.Empty(t, values)
}

func TestResolve_CancellationPropagates(t *testing.T) {
	addr := startServer(t, dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		time.Sleep(2 * time.Second)
		m := new(dns.Msg)
		m.SetReply(r)
		w.WriteMsg(m) //nolint:errcheck
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := newClient(t, addr).Resolve(ctx, "example.com", "A")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_UnknownType(t *testing.T) {
	c := newClient(t, "127.0.0.1:53")
	_, err := c.Resolve(context.Background(), "example.com", "PTR")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestNew_DefaultPort(t *testing.T) {
	c, err := resolver.New("9.9.9.9", "", testutil.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, "9.9.9.9:53", c.Upstream())
}
