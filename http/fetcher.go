// Package http provides an HTTP-based implementation of harvest.Fetcher
// for fetching static pages.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/harvest"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies requests as a desktop browser. Some
// directory sites reject the Go default user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Fetcher)(nil)

// FetchConfig holds everything a Fetcher sends or routes through.
// Nothing is read from process-wide state: environment proxy variables
// are ignored.
type FetchConfig struct {
	// UserAgent is sent on every request. Empty sends no User-Agent
	// override.
	UserAgent string

	// Headers are extra request headers.
	Headers map[string]string

	// ProxyURL routes requests through an HTTP proxy. A bare "host:port"
	// is treated as "http://host:port".
	ProxyURL string

	// Timeout bounds the whole request including reading the body.
	// Defaults to DefaultFetchTimeout when zero.
	Timeout time.Duration
}

// DefaultFetchConfig returns the configuration used when no overrides apply.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultFetchTimeout,
	}
}

// Fetcher retrieves page text using plain HTTP GET requests.
// Bodies are decoded to UTF-8 based on the Content-Type header or the
// page's meta charset.
type Fetcher struct {
	client *http.Client
	config FetchConfig
}

// NewFetcher creates a new HTTP-based Fetcher.
// Returns EINVALID if the proxy URL cannot be parsed.
func NewFetcher(config FetchConfig) (*Fetcher, error) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultFetchTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	if config.ProxyURL != "" {
		proxy, err := ParseProxyURL(config.ProxyURL)
		if err != nil {
			return nil, err
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &Fetcher{
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		config: config,
	}, nil
}

// Fetch retrieves the page at url. Any transport failure or a status
// outside 2xx fails with ENETWORK.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", harvest.WrapError(harvest.ENETWORK, err, "invalid request for %s", url)
	}
	if f.config.UserAgent != "" {
		req.Header.Set("User-Agent", f.config.UserAgent)
	}
	for k, v := range f.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", harvest.WrapError(harvest.ENETWORK, err, "GET %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", harvest.Errorf(harvest.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", harvest.WrapError(harvest.ENETWORK, err, "decode body of %s", url)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", harvest.WrapError(harvest.ENETWORK, err, "read body of %s", url)
	}

	return string(body), nil
}

// Close releases resources. Idle connections are closed.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
