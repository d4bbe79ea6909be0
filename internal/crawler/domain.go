package crawler

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeBaseURL canonicalizes a raw input string into a scheme+host
// base URL. Inputs without an http/https prefix get https prepended;
// any path, query or fragment is stripped.
//
// There is no error path: malformed hosts surface later as a fetch
// failure, not a normalization failure.
func NormalizeBaseURL(raw string) string {
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	return u.Scheme + "://" + u.Host
}

// RegistrableDomain reduces a host to its registrable domain: the
// domain plus public suffix pair (e.g. "shop.example.com" and
// "www.example.com" both reduce to "example.com").
//
// Hosts without a recognizable public suffix (IP addresses, localhost,
// test servers) fall back to the bare host, so exact-host comparison
// still applies for them.
func RegistrableDomain(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}

// IsInternal decides whether a URL belongs to the crawl's site.
// A URL with no host component (a relative link) is always internal;
// otherwise its registrable domain must equal baseDomain exactly.
// No subdomain wildcarding is involved: both sides are already reduced
// to registrable domains, so "example.co.uk" never equals "example.com".
func IsInternal(link, baseDomain string) bool {
	if link == "" {
		return false
	}

	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	if u.Host == "" {
		return true
	}

	return RegistrableDomain(u.Host) == baseDomain
}
