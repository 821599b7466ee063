package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikinews"
	"github.com/fwojciec/wikinews/extract"
	"github.com/fwojciec/wikinews/fs"
	"github.com/fwojciec/wikinews/html"
	wikihttp "github.com/fwojciec/wikinews/http"
	wikislog "github.com/fwojciec/wikinews/slog"
	"github.com/fwojciec/wikinews/sqlite"
	"github.com/fwojciec/wikinews/wikitext"
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
	// SQLite database, when the sqlite driver is selected.
	DB *sqlite.DB

	// Snapshot storage. When set before Run, no store is opened.
	SnapshotService wikinews.SnapshotService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	parser, err := kong.New(cli,
		kong.Name("wikinews"),
		kong.Description("Extract and maintain daily current events snapshots"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wikinews --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := cli.config()
	if err != nil {
		return err
	}
	deps.Config = cfg

	level := cfg.LogLevel()
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := m.openStore(cfg); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WIKINEWS_DB or --db to use a different store path\n")
		return err
	}
	defer m.Close()

	var source wikinews.PageSource = wikihttp.NewPageSource(
		wikihttp.WithAPIURL(cfg.Source.APIURL),
		wikihttp.WithUserAgent(cfg.Source.UserAgent),
		wikihttp.WithTimeout(cfg.Source.Timeout),
		wikihttp.WithRate(cfg.Source.Rate),
	)
	snapshots := m.SnapshotService
	var segmenter wikinews.Segmenter = html.NewSegmenter()
	if cli.Verbose {
		source = wikislog.NewLoggingPageSource(source, deps.Logger)
		snapshots = wikislog.NewLoggingSnapshotService(snapshots, deps.Logger)
		segmenter = wikislog.NewLoggingSegmenter(segmenter, deps.Logger)
	}

	deps.Snapshots = snapshots
	deps.Extractor = &extract.Extractor{
		Source:    source,
		Segmenter: segmenter,
		Parser:    wikitext.NewParser(),
		Snapshots: snapshots,
		Logger:    deps.Logger,
	}

	return kongCtx.Run(deps)
}

// openStore opens the snapshot store selected by cfg.
func (m *Main) openStore(cfg *Config) error {
	if m.SnapshotService != nil {
		return nil
	}
	path := cfg.StorePath()
	switch cfg.Store.Driver {
	case DriverFS:
		m.SnapshotService = fs.NewSnapshotService(path)
	default:
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		m.SnapshotService = sqlite.NewSnapshotService(m.DB)
	}
	return nil
}
