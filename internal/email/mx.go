package email

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// MX lookup outcomes the validator scores differently. The standard
// resolver conflates these cases, so the interface makes them explicit.
var (
	// ErrNoAnswer means the domain exists but publishes no MX records;
	// it may still accept mail via an A record.
	ErrNoAnswer = errors.New("mx: no answer")
	// ErrNoDomain means the domain does not resolve at all.
	ErrNoDomain = errors.New("mx: no such domain")
)

// MXResolver looks up mail-exchange records for a domain.
type MXResolver interface {
	LookupMX(ctx context.Context, domain string) (int, error)
}

// NetMXResolver implements MXResolver on the system resolver.
type NetMXResolver struct {
	resolver *net.Resolver
}

// NewNetMXResolver returns a resolver backed by net.DefaultResolver.
func NewNetMXResolver() *NetMXResolver {
	return &NetMXResolver{resolver: net.DefaultResolver}
}

// LookupMX returns the MX record count, or one of the sentinel errors.
// Go's resolver reports both NXDOMAIN and an empty answer as not-found;
// a host lookup disambiguates the two.
func (r *NetMXResolver) LookupMX(ctx context.Context, domain string) (int, error) {
	records, err := r.resolver.LookupMX(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			if _, hostErr := r.resolver.LookupHost(ctx, domain); hostErr == nil {
				return 0, ErrNoAnswer
			}
			return 0, ErrNoDomain
		}
		return 0, fmt.Errorf("mx lookup %s: %w", domain, err)
	}
	if len(records) == 0 {
		return 0, ErrNoAnswer
	}
	return len(records), nil
}
