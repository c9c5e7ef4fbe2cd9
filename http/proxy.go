package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/harvest"
)

// DefaultProxyCheckURL echoes the caller's IP address as JSON.
const DefaultProxyCheckURL = "https://httpbin.org/ip"

// DefaultProxyCheckTimeout bounds a proxy check.
const DefaultProxyCheckTimeout = 5 * time.Second

// ParseProxyURL parses a proxy address. A value without a scheme, such as
// "3.70.191.255:8090", is treated as an http:// proxy.
// Returns EINVALID if the address has no host.
func ParseProxyURL(s string) (*url.URL, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid proxy %q: %v", s, err)
	}
	if u.Host == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid proxy %q: missing host", s)
	}
	return u, nil
}
