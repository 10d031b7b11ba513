// Package http provides the HTTP-based implementations of
// localdocs.Fetcher and localdocs.SitemapService.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/jubalm/localdocs"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// MaxContentLength caps downloaded documents at 50 MiB.
const MaxContentLength = 50 * 1024 * 1024

// userAgent identifies the tool to servers.
const userAgent = "Mozilla/5.0 (localdocs/1.0; Documentation Downloader)"

// allowedContentTypes are the media types accepted for document content.
var allowedContentTypes = map[string]bool{
	"text/plain":             true,
	"text/markdown":          true,
	"text/html":              true,
	"text/x-markdown":        true,
	"application/json":       true,
	"application/xml":        true,
	"text/xml":               true,
	"application/xhtml+xml":  true,
	"application/rss+xml":    true,
	"text/css":               true,
	"application/javascript": true,
	"text/javascript":        true,
}

// Ensure Fetcher implements localdocs.Fetcher at compile time.
var _ localdocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves document content from URLs. Only http and https
// schemes are accepted, responses are size-capped, content types outside
// the allow list are rejected, and the default client refuses to connect
// to private or loopback addresses.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	maxSize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxSize overrides the response size cap.
func WithMaxSize(n int64) Option {
	return func(f *Fetcher) {
		f.maxSize = n
	}
}

// WithClient substitutes the HTTP client, primarily for tests. A
// substituted client skips the private-address guard of the default one.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		maxSize: MaxContentLength,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout:   f.timeout,
			Transport: newGuardedTransport(),
		}
	}

	return f
}

// errBlockedAddress marks dials refused by the private-address guard.
var errBlockedAddress = errors.New("address is not publicly routable")

// newGuardedTransport returns a transport whose dialer refuses loopback,
// private, and link-local destinations. The check runs on the resolved
// address of every connection attempt, redirects included.
func newGuardedTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout: 30 * time.Second,
		Control: blockPrivateAddresses,
	}
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
	}
}

func blockPrivateAddresses(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("unexpected dial address %q: %w", address, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("unexpected dial address %q", address)
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
		return fmt.Errorf("%s: %w", ip, errBlockedAddress)
	}
	return nil
}

// ValidateURL rejects non-absolute URLs and disallowed schemes before any
// network traffic happens.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return localdocs.Errorf(localdocs.EINVALID, "invalid URL %q", rawURL)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return localdocs.Errorf(localdocs.EINVALID, "URL scheme %q not allowed (use http or https)", u.Scheme)
	}
	if u.Host == "" {
		return localdocs.Errorf(localdocs.EINVALID, "invalid URL %q: missing host", rawURL)
	}
	return nil
}

// Fetch retrieves the content from the given URL and returns the body and
// its media type.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, errBlockedAddress) {
			return "", "", localdocs.Errorf(localdocs.EINVALID, "fetch %s: %s", rawURL, err)
		}
		return "", "", localdocs.Errorf(localdocs.EUNAVAILABLE, "fetch %s: %s", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", localdocs.Errorf(localdocs.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	mediaType := ""
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err = mime.ParseMediaType(ct)
		if err != nil {
			return "", "", localdocs.Errorf(localdocs.EINVALID, "unparseable content type %q for %s", ct, rawURL)
		}
		if !allowedContentTypes[mediaType] {
			return "", "", localdocs.Errorf(localdocs.EINVALID, "content type %q not allowed for %s", mediaType, rawURL)
		}
	}

	// Read one byte past the cap to distinguish at-limit from over-limit.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", rawURL, err)
	}
	if int64(len(body)) > f.maxSize {
		return "", "", localdocs.Errorf(localdocs.EINVALID, "content too large for %s (limit %d bytes)", rawURL, f.maxSize)
	}

	return string(body), mediaType, nil
}
