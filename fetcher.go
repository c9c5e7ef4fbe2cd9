package harvest

import "context"

// Fetcher retrieves raw page text from URLs.
type Fetcher interface {
	// Fetch returns the page body decoded to UTF-8. A transport failure or
	// a non-success status fails with ENETWORK.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
