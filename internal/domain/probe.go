package domain

import (
	"context"
	"net"
	"time"
)

// Prober checks whether a hypothesized host is alive.
type Prober interface {
	Probe(ctx context.Context, host string) bool
}

// TCPProber accepts a host if a TCP connect to port 80 succeeds within the
// timeout. Cheap liveness signal, no HTTP round trip.
type TCPProber struct {
	timeout time.Duration
	dialer  *net.Dialer
}

// NewTCPProber builds a prober with the given connect timeout. Zero uses
// a 2 second default.
func NewTCPProber(timeout time.Duration) *TCPProber {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &TCPProber{timeout: timeout, dialer: &net.Dialer{Timeout: timeout}}
}

func (p *TCPProber) Probe(ctx context.Context, host string) bool {
	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	conn, err := p.dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(host, "80"))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
