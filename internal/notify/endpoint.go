// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

// MaxEndpointLength bounds the configured notification URL.
const MaxEndpointLength = 2048

const resolveTimeout = 5 * time.Second

// Reasons an endpoint is refused. Match them with errors.Is.
var (
	ErrEndpointTooLong    = errors.New("URL is too long")
	ErrEndpointMalformed  = errors.New("URL is malformed")
	ErrEndpointScheme     = errors.New("URL must use http or https")
	ErrEndpointNoHost     = errors.New("URL has no host")
	ErrEndpointUnresolved = errors.New("host does not resolve")
	ErrEndpointPrivate    = errors.New("host is not a public address")
)

// EndpointError reports why a notification URL was refused.
type EndpointError struct {
	URL    string
	Host   string
	Addr   netip.Addr
	Reason error
}

func (e *EndpointError) Error() string {
	switch {
	case e.Addr.IsValid() && e.Host != e.Addr.String():
		return fmt.Sprintf("notify endpoint %s: %v (%s resolves to %s)", e.URL, e.Reason, e.Host, e.Addr)
	case e.Host != "":
		return fmt.Sprintf("notify endpoint %s: %v (%s)", e.URL, e.Reason, e.Host)
	default:
		return fmt.Sprintf("notify endpoint %s: %v", e.URL, e.Reason)
	}
}

func (e *EndpointError) Unwrap() error { return e.Reason }

// Resolver looks up the addresses of a host. *net.Resolver satisfies it.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// reservedPrefixes are the ranges netip's classifiers do not cover.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),       // "this" network
	netip.MustParsePrefix("100.64.0.0/10"),   // carrier-grade NAT
	netip.MustParsePrefix("192.0.0.0/24"),    // IETF protocol assignments
	netip.MustParsePrefix("192.0.2.0/24"),    // documentation
	netip.MustParsePrefix("198.18.0.0/15"),   // benchmarking
	netip.MustParsePrefix("198.51.100.0/24"), // documentation
	netip.MustParsePrefix("203.0.113.0/24"),  // documentation
	netip.MustParsePrefix("240.0.0.0/4"),     // reserved
}

// publicAddr reports whether a lead notification may be sent to addr.
func publicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsValid() || addr.IsUnspecified() || addr.IsLoopback() || addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() || addr.IsMulticast() {
		return false
	}
	for _, p := range reservedPrefixes {
		if p.Contains(addr) {
			return false
		}
	}
	return true
}

// ValidateEndpoint checks that rawURL is an http(s) URL whose host resolves
// only to public addresses. A nil resolver uses net.DefaultResolver. Errors
// are *EndpointError.
func ValidateEndpoint(ctx context.Context, rawURL string, resolver Resolver) error {
	fail := func(host string, addr netip.Addr, reason error) error {
		return &EndpointError{URL: rawURL, Host: host, Addr: addr, Reason: reason}
	}

	if len(rawURL) > MaxEndpointLength {
		return &EndpointError{URL: rawURL[:64] + "...", Reason: ErrEndpointTooLong}
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fail("", netip.Addr{}, ErrEndpointMalformed)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fail("", netip.Addr{}, ErrEndpointScheme)
	}
	host := u.Hostname()
	if host == "" {
		return fail("", netip.Addr{}, ErrEndpointNoHost)
	}
	lower := strings.ToLower(host)
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") {
		return fail(host, netip.Addr{}, ErrEndpointPrivate)
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if !publicAddr(addr) {
			return fail(host, addr, ErrEndpointPrivate)
		}
		return nil
	}

	addrs, err := lookup(ctx, resolver, host)
	if err != nil || len(addrs) == 0 {
		return fail(host, netip.Addr{}, ErrEndpointUnresolved)
	}
	for _, addr := range addrs {
		if !publicAddr(addr) {
			return fail(host, addr, ErrEndpointPrivate)
		}
	}
	return nil
}

func lookup(ctx context.Context, resolver Resolver, host string) ([]netip.Addr, error) {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()
	return resolver.LookupNetIP(ctx, "ip", host)
}

// guardedDial resolves the target itself and connects to the first public
// address, so a DNS answer that changes after validation cannot reach an
// internal host.
func guardedDial(dialer *net.Dialer, resolver Resolver) func(ctx context.Context, network, address string) (net.Conn, error) {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(address)
		if err != nil {
			return nil, fmt.Errorf("dial %q: %w", address, err)
		}

		addrs, err := lookup(ctx, resolver, host)
		if err != nil {
			return nil, fmt.Errorf("dial %q: %w", host, err)
		}
		for _, addr := range addrs {
			if !publicAddr(addr) {
				return nil, &EndpointError{URL: address, Host: host, Addr: addr, Reason: ErrEndpointPrivate}
			}
		}

		var lastErr error = ErrEndpointUnresolved
		for _, addr := range addrs {
			conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(addr.Unmap().String(), port))
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		return nil, fmt.Errorf("dial %q: %w", host, lastErr)
	}
}
