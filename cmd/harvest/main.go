package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/goquery"
	harvesthttp "github.com/fwojciec/harvest/http"
	harvestregexp "github.com/fwojciec/harvest/regexp"
	harvestslog "github.com/fwojciec/harvest/slog"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(). When empty, HARVEST_DB is
	// used, or else one file per uniqueness policy under ~/.harvest.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ContactService harvest.ContactService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: os.Getenv("HARVEST_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	extractors := newExtractors(&cli.Scrape, deps)
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Description("Extract contact records from staff directory pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		Vars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	// Global flags may precede the command, so take it from the parse.
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(cli.Verbose, stderr)
	deps.Logger = logger

	shape := harvest.SourceShape(cli.Shape)
	prof, err := profileFor(shape)
	if err != nil {
		return err
	}
	deps.Layout = prof.Layout

	if cmd == "proxy" {
		deps.NewProxyFetcher = func(proxy string, timeout time.Duration) (harvest.Fetcher, error) {
			config := harvesthttp.DefaultFetchConfig()
			config.ProxyURL = proxy
			config.Timeout = timeout
			fetcher, err := harvesthttp.NewFetcher(config)
			if err != nil {
				return nil, err
			}
			return harvestslog.NewLoggingFetcher(fetcher, logger), nil
		}
		return kongCtx.Run(deps)
	}

	policy, err := prof.resolvePolicy(cli.Policy)
	if err != nil {
		return err
	}

	if m.DBPath == "" {
		m.DBPath = defaultDBPath(policy)
	}
	m.DB = sqlite.NewDB(m.DBPath, sqlite.WithPolicy(policy))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HARVEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ContactService = sqlite.NewContactService(m.DB)
	deps.Contacts = harvestslog.NewLoggingContactService(m.ContactService, logger)

	if cmd == "scrape" {
		config := harvesthttp.DefaultFetchConfig()
		config.ProxyURL = cli.Scrape.Proxy
		config.Timeout = cli.Scrape.Timeout
		config.Headers = cli.Scrape.Headers
		fetcher, err := harvesthttp.NewFetcher(config)
		if err != nil {
			return fmt.Errorf("failed to create fetcher: %w", err)
		}
		defer fetcher.Close()
		deps.Fetcher = harvestslog.NewLoggingFetcher(fetcher, logger)

		deps.Extractor, err = extractors.Get(shape)
		if err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// newExtractors registers a builder for every source shape. Builders read
// the scrape flags and logger from cmd and deps when the shape is selected.
func newExtractors(cmd *ScrapeCmd, deps *Dependencies) *harvest.Extractors {
	registry := harvest.NewExtractors()

	registry.Register(harvest.ShapePlain, func() (harvest.Extractor, error) {
		pattern := cmd.SecondaryPattern
		if pattern == "" {
			pattern = harvestregexp.PhoneExtensionPattern
		}
		e, err := harvestregexp.NewPlainExtractor(pattern)
		if err != nil {
			return nil, err
		}
		return harvestslog.NewLoggingExtractor(e, harvest.ShapePlain, deps.Logger), nil
	})

	registry.Register(harvest.ShapeAttribute, func() (harvest.Extractor, error) {
		e, err := goquery.NewAttributeExtractor(goquery.WithNameSelector(cmd.NameSelector))
		if err != nil {
			return nil, err
		}
		return harvestslog.NewLoggingExtractor(e, harvest.ShapeAttribute, deps.Logger), nil
	})

	registry.Register(harvest.ShapeBlock, func() (harvest.Extractor, error) {
		pattern := cmd.BlockPattern
		if pattern == "" {
			pattern = harvestregexp.DefaultBlockPattern
		}
		e, err := harvestregexp.NewBlockExtractor(pattern)
		if err != nil {
			return nil, err
		}
		return harvestslog.NewLoggingExtractor(e, harvest.ShapeBlock, deps.Logger), nil
	})

	return registry
}

// Vars returns the variables interpolated into the CLI struct tags.
func Vars() kong.Vars {
	var shapes []string
	for _, s := range newExtractors(&ScrapeCmd{}, &Dependencies{}).Shapes() {
		shapes = append(shapes, string(s))
	}
	return kong.Vars{
		"shapes":        strings.Join(shapes, ","),
		"default_shape": string(harvest.ShapePlain),
		"fetch_timeout": harvesthttp.DefaultFetchTimeout.String(),
		"name_selector": goquery.DefaultNameSelector,
		"check_url":     harvesthttp.DefaultProxyCheckURL,
		"check_timeout": harvesthttp.DefaultProxyCheckTimeout.String(),
	}
}

// newLogger returns a text logger on stderr tagged with a run id, or a
// logger that discards everything when verbose is off.
func newLogger(verbose bool, stderr io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, nil)).With("run", uuid.NewString())
}

// defaultDBPath returns a database file per uniqueness policy, since a
// database keeps the policy it was created with.
func defaultDBPath(policy harvest.UniquePolicy) string {
	name := "harvest-" + string(policy) + ".db"
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	dir := filepath.Join(home, ".harvest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, name)
}
