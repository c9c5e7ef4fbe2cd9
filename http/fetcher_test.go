package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	harvesthttp "github.com/fwojciec/harvest/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"
)

func newFetcher(t *testing.T, config harvesthttp.FetchConfig) *harvesthttp.Fetcher {
	t.Helper()
	fetcher, err := harvesthttp.NewFetcher(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fetcher.Close() })
	return fetcher
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>王小明</body></html>"))
		}))
		defer server.Close()

		fetcher := newFetcher(t, harvesthttp.DefaultFetchConfig())

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>王小明</body></html>", html)
	})

	t.Run("sends configured user agent and headers", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotLang string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotLang = r.Header.Get("Accept-Language")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		config := harvesthttp.DefaultFetchConfig()
		config.Headers = map[string]string{"Accept-Language": "zh-TW"}
		fetcher := newFetcher(t, config)

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, harvesthttp.DefaultUserAgent, gotUA)
		assert.Equal(t, "zh-TW", gotLang)
	})

	t.Run("decodes big5 pages declared in content type", func(t *testing.T) {
		t.Parallel()

		body, err := traditionalchinese.Big5.NewEncoder().String("<p>王小明 電話：02-12345678 分機 123</p>")
		require.NoError(t, err)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=big5")
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		fetcher := newFetcher(t, harvesthttp.DefaultFetchConfig())

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>王小明 電話：02-12345678 分機 123</p>", html)
	})

	t.Run("decodes big5 pages declared in meta charset", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><meta charset="big5"></head><body>李大華</body></html>`
		body, err := traditionalchinese.Big5.NewEncoder().String(page)
		require.NoError(t, err)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(body))
		}))
		defer server.Close()

		fetcher := newFetcher(t, harvesthttp.DefaultFetchConfig())

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, page, html)
	})

	t.Run("respects custom timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := newFetcher(t, harvesthttp.FetchConfig{Timeout: 10 * time.Millisecond})

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, harvest.ENETWORK, harvest.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := newFetcher(t, harvesthttp.DefaultFetchConfig())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns ENETWORK for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := newFetcher(t, harvesthttp.FetchConfig{Timeout: 100 * time.Millisecond})

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, harvest.ENETWORK, harvest.ErrorCode(err))
	})

	t.Run("returns ENETWORK for malformed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := newFetcher(t, harvesthttp.DefaultFetchConfig())

		_, err := fetcher.Fetch(context.Background(), "://missing-scheme")
		require.Error(t, err)
		assert.Equal(t, harvest.ENETWORK, harvest.ErrorCode(err))
	})

	t.Run("returns ENETWORK for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := newFetcher(t, harvesthttp.DefaultFetchConfig())

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, harvest.ENETWORK, harvest.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("accepts other 2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("queued"))
		}))
		defer server.Close()

		fetcher := newFetcher(t, harvesthttp.DefaultFetchConfig())

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "queued", html)
	})

	t.Run("routes requests through configured proxy", func(t *testing.T) {
		t.Parallel()

		proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("via proxy " + r.URL.String()))
		}))
		defer proxy.Close()

		config := harvesthttp.DefaultFetchConfig()
		config.ProxyURL = proxy.URL
		fetcher := newFetcher(t, config)

		html, err := fetcher.Fetch(context.Background(), "http://contacts.example/ip")
		require.NoError(t, err)
		assert.Equal(t, "via proxy http://contacts.example/ip", html)
	})
}

func TestNewFetcher(t *testing.T) {
	t.Parallel()

	t.Run("returns EINVALID for proxy without host", func(t *testing.T) {
		t.Parallel()

		_, err := harvesthttp.NewFetcher(harvesthttp.FetchConfig{ProxyURL: "http://"})
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func TestParseProxyURL(t *testing.T) {
	t.Parallel()

	t.Run("adds http scheme to bare host and port", func(t *testing.T) {
		t.Parallel()

		u, err := harvesthttp.ParseProxyURL("3.70.191.255:8090")
		require.NoError(t, err)
		assert.Equal(t, "http://3.70.191.255:8090", u.String())
	})

	t.Run("keeps explicit scheme", func(t *testing.T) {
		t.Parallel()

		u, err := harvesthttp.ParseProxyURL("socks5://127.0.0.1:1080")
		require.NoError(t, err)
		assert.Equal(t, "socks5", u.Scheme)
		assert.Equal(t, "127.0.0.1:1080", u.Host)
	})

	t.Run("returns EINVALID for empty address", func(t *testing.T) {
		t.Parallel()

		_, err := harvesthttp.ParseProxyURL("")
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

// Compile-time verification that Fetcher implements harvest.Fetcher
var _ harvest.Fetcher = (*harvesthttp.Fetcher)(nil)
