package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   harvest.Fetcher
	Extractor harvest.Extractor
	Contacts  harvest.ContactService
	Layout    harvest.TableLayout

	// NewProxyFetcher returns a fetcher routed through proxy.
	NewProxyFetcher func(proxy string, timeout time.Duration) (harvest.Fetcher, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log each operation to stderr"`
	Shape   string `short:"s" enum:"${shapes}" default:"${default_shape}" env:"HARVEST_SHAPE" help:"Markup shape of the source page (${enum})"`
	Policy  string `env:"HARVEST_POLICY" help:"Duplicate policy: triple or email (default depends on shape)"`

	Scrape ScrapeCmd `cmd:"" help:"Extract contacts from a page, store and print them"`
	List   ListCmd   `cmd:"" help:"Print stored contacts"`
	Proxy  ProxyCmd  `cmd:"" help:"Check that an HTTP proxy works"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL              string        `arg:"" optional:"" help:"Page URL"`
	NoSave           bool              `help:"Print contacts without storing them"`
	Proxy            string            `env:"HARVEST_PROXY" help:"HTTP proxy as host:port or URL"`
	Timeout          time.Duration     `default:"${fetch_timeout}" help:"HTTP request timeout"`
	Headers          map[string]string `name:"header" short:"H" help:"Extra request header as KEY=VALUE (repeatable)"`
	SecondaryPattern string            `help:"Regex for the secondary field on plain pages; first group is used"`
	NameSelector     string            `default:"${name_selector}" help:"CSS selector for names on attribute pages"`
	BlockPattern     string            `help:"Regex matching one contact on block pages, with name, secondary and email groups"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Email  string `help:"Only show contacts with this email"`
	Limit  int    `short:"n" help:"Maximum number of contacts to show"`
	Offset int    `help:"Number of contacts to skip"`
}

// ProxyCmd is the "proxy" subcommand.
type ProxyCmd struct {
	Proxy    string        `arg:"" help:"Proxy address as host:port or URL"`
	CheckURL string        `default:"${check_url}" help:"URL fetched through the proxy"`
	Timeout  time.Duration `default:"${check_timeout}" help:"Check timeout"`
}
