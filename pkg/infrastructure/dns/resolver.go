package dns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/WangYihang/Typosquat-Generator/pkg/domain/entity"
	"github.com/WangYihang/Typosquat-Generator/pkg/domain/service"
	"github.com/miekg/dns"
	"golang.org/x/time/rate"
)

var (
	// ErrNoRecords is returned when the answer section holds no record of the requested type
	ErrNoRecords = errors.New("no records found")
	// ErrNXDomain is returned when the name does not exist
	ErrNXDomain = errors.New("domain does not exist")
	// ErrServerFailure is returned for any other non-success rcode
	ErrServerFailure = errors.New("server failure")
	// ErrNoServers is returned when no DNS server is configured
	ErrNoServers = errors.New("no DNS servers configured")
)

// DefaultServers are used when neither flags nor /etc/resolv.conf provide servers
var DefaultServers = []string{
	"8.8.8.8:53",        // Google
	"8.8.4.4:53",        // Google
	"1.1.1.1:53",        // Cloudflare
	"1.0.0.1:53",        // Cloudflare
	"208.67.222.222:53", // OpenDNS
	"208.67.220.220:53", // OpenDNS
}

// QueryRecorder observes every DNS exchange
type QueryRecorder interface {
	ObserveQuery(query *entity.DNSQuery, duration time.Duration)
}

// Config holds DNS resolver configuration
type Config struct {
	Servers   []string
	Timeout   time.Duration
	RateLimit float64 // queries per second shared by all workers, 0 disables limiting
	Burst     int
	Recorder  QueryRecorder
	Logger    *slog.Logger
}

// Resolver implements service.Resolver on top of miekg/dns.
// Every lookup is a single exchange with a single server; servers are
// used round-robin across lookups.
type Resolver struct {
	servers   []string
	timeout   time.Duration
	udp       *dns.Client
	tcp       *dns.Client
	limiter   *rate.Limiter
	recorders []QueryRecorder
	logger    *slog.Logger
	rotation  int
	mu        sync.Mutex
}

// NewResolver creates a new DNS resolver
func NewResolver(config Config) *Resolver {
	servers := config.Servers
	if len(servers) == 0 {
		servers = SystemServers()
	}
	if len(servers) == 0 {
		servers = DefaultServers
	}

	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Resolver{
		servers: normalizeServers(servers),
		timeout: config.Timeout,
		udp:     &dns.Client{Net: "udp", Timeout: config.Timeout},
		tcp:     &dns.Client{Net: "tcp", Timeout: config.Timeout},
		limiter: limiter,
		logger:  logger,
	}
	if config.Recorder != nil {
		r.AddRecorder(config.Recorder)
	}
	return r
}

// AddRecorder registers another query observer. Call it before the first lookup.
func (r *Resolver) AddRecorder(recorder QueryRecorder) {
	r.recorders = append(r.recorders, recorder)
}

// SystemServers reads the nameservers from /etc/resolv.conf
func SystemServers() []string {
	config, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(config.Servers) == 0 {
		return nil
	}

	port := config.Port
	if port == "" {
		port = "53"
	}

	servers := make([]string, 0, len(config.Servers))
	for _, s := range config.Servers {
		servers = append(servers, net.JoinHostPort(s, port))
	}
	return servers
}

// normalizeServers appends the default port to bare addresses
func normalizeServers(servers []string) []string {
	normalized := make([]string, 0, len(servers))
	for _, server := range servers {
		if server == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, "53")
		}
		normalized = append(normalized, server)
	}
	return normalized
}

// Servers returns the servers in rotation order
func (r *Resolver) Servers() []string {
	return append([]string(nil), r.servers...)
}

func (r *Resolver) nextServer() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.servers) == 0 {
		return "", ErrNoServers
	}
	server := r.servers[r.rotation%len(r.servers)]
	r.rotation++
	return server, nil
}

// LookupMX implements service.Resolver
func (r *Resolver) LookupMX(ctx context.Context, domain string) ([]string, error) {
	resp, err := r.exchange(ctx, domain, dns.TypeMX)
	if err != nil {
		return nil, err
	}

	var hosts []string
	for _, answer := range resp.Answer {
		if mx, ok := answer.(*dns.MX); ok {
			hosts = append(hosts, mx.Mx)
		}
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: MX %s", ErrNoRecords, domain)
	}
	return hosts, nil
}

// Exists implements service.Resolver. A domain exists when it has an A,
// AAAA or NS record; NXDOMAIN stops the probe early.
func (r *Resolver) Exists(ctx context.Context, domain string) (bool, error) {
	var lastErr error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA, dns.TypeNS} {
		resp, err := r.exchange(ctx, domain, qtype)
		if errors.Is(err, ErrNXDomain) {
			return false, nil
		}
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			continue
		}

		for _, answer := range resp.Answer {
			if answer.Header().Rrtype == qtype {
				return true, nil
			}
		}
	}
	return false, lastErr
}

// exchange sends one query to the next server in rotation. A truncated UDP
// answer is re-read over TCP from the same server.
func (r *Resolver) exchange(ctx context.Context, domain string, qtype uint16) (*dns.Msg, error) {
	server, err := r.nextServer()
	if err != nil {
		return nil, err
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true
	msg.SetEdns0(4096, false)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	resp, rtt, err := r.udp.ExchangeContext(ctx, msg, server)
	if err == nil && resp != nil && resp.Truncated {
		resp, rtt, err = r.tcp.ExchangeContext(ctx, msg, server)
	}

	query := &entity.DNSQuery{
		Domain: domain,
		Type:   dns.TypeToString[qtype],
		Server: server,
		RTTMs:  rtt.Milliseconds(),
	}

	if err == nil && resp != nil {
		query.Rcode = dns.RcodeToString[resp.Rcode]
		for _, answer := range resp.Answer {
			query.Answers = append(query.Answers, answer.String())
		}
		err = rcodeError(resp.Rcode, domain)
	} else if err == nil {
		err = fmt.Errorf("%w: empty response from %s", ErrServerFailure, server)
	}
	if err != nil {
		query.Error = err.Error()
	}

	r.observe(query, time.Since(start))

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (r *Resolver) observe(query *entity.DNSQuery, duration time.Duration) {
	for _, recorder := range r.recorders {
		recorder.ObserveQuery(query, duration)
	}
	r.logger.Debug("dns query",
		slog.String("domain", query.Domain),
		slog.String("type", query.Type),
		slog.String("server", query.Server),
		slog.String("rcode", query.Rcode),
		slog.Int("answers", len(query.Answers)),
		slog.Int64("rtt_ms", query.RTTMs),
		slog.String("error", query.Error),
	)
}

func rcodeError(rcode int, domain string) error {
	switch rcode {
	case dns.RcodeSuccess:
		return nil
	case dns.RcodeNameError:
		return fmt.Errorf("%w: %s", ErrNXDomain, domain)
	default:
		return fmt.Errorf("%w: %s: %s", ErrServerFailure, domain, dns.RcodeToString[rcode])
	}
}

var _ service.Resolver = (*Resolver)(nil)
