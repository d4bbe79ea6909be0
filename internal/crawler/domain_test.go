package crawler

import "testing"

// TestNormalizeBaseURL tests seed URL canonicalization.
func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare domain gets https", in: "example.com", want: "https://example.com"},
		{name: "path and query are stripped", in: "http://x.com/path?q=1", want: "http://x.com"},
		{name: "https preserved", in: "https://www.example.com/about", want: "https://www.example.com"},
		{name: "port preserved", in: "http://127.0.0.1:8080/index.html", want: "http://127.0.0.1:8080"},
		{name: "www prefix without scheme", in: "www.example.com", want: "https://www.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeBaseURL(tt.in); got != tt.want {
				t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestRegistrableDomain tests public-suffix-aware domain extraction.
func TestRegistrableDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "bare domain", host: "example.com", want: "example.com"},
		{name: "www subdomain", host: "www.example.com", want: "example.com"},
		{name: "deep subdomain", host: "shop.fr.example.com", want: "example.com"},
		{name: "multi-label public suffix", host: "www.example.co.uk", want: "example.co.uk"},
		{name: "uppercase host", host: "WWW.EXAMPLE.COM", want: "example.com"},
		{name: "host with port", host: "example.com:8443", want: "example.com"},
		{name: "ip address falls back to host", host: "127.0.0.1:8080", want: "127.0.0.1"},
		{name: "localhost falls back to host", host: "localhost", want: "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RegistrableDomain(tt.host); got != tt.want {
				t.Errorf("RegistrableDomain(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

// TestIsInternal tests the internal/external boundary for a crawl
// rooted at example.com.
func TestIsInternal(t *testing.T) {
	t.Parallel()

	const baseDomain = "example.com"

	tests := []struct {
		name string
		link string
		want bool
	}{
		{name: "subdomain is internal", link: "https://shop.example.com/a", want: true},
		{name: "www is internal", link: "https://www.example.com", want: true},
		{name: "relative path is internal", link: "/relative/path", want: true},
		{name: "different suffix is external", link: "https://example.co.uk", want: false},
		{name: "other domain is external", link: "https://other.com/example.com", want: false},
		{name: "empty link is not internal", link: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsInternal(tt.link, baseDomain); got != tt.want {
				t.Errorf("IsInternal(%q, %q) = %v, want %v", tt.link, baseDomain, got, tt.want)
			}
		})
	}
}
