package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/wikinews"
	"github.com/fwojciec/wikinews/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *Config
	Logger    *slog.Logger
	Snapshots wikinews.SnapshotService
	Extractor *extract.Extractor

	// NewExporter creates the exporter used by the export command.
	// Nil writes markdown files with fs.NewExporter.
	NewExporter func(dir, name, template string) wikinews.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigFile string `name:"config" short:"C" type:"path" help:"YAML configuration file"`
	DB         string `name:"db" env:"WIKINEWS_DB" help:"Snapshot store path (database file or directory)"`
	API        string `name:"api" env:"WIKINEWS_API" help:"MediaWiki api.php endpoint"`
	Store      string `help:"Store driver: sqlite or fs"`
	Verbose    bool   `short:"v" help:"Log every service call"`

	Fetch   FetchCmd   `cmd:"" help:"Extract day snapshots from the current events portal"`
	List    ListCmd    `cmd:"" help:"List stored snapshots"`
	Show    ShowCmd    `cmd:"" help:"Print the stories of a snapshot"`
	Tree    TreeCmd    `cmd:"" help:"Print the category tree of a snapshot"`
	URLs    URLsCmd    `cmd:"" name:"urls" help:"Print every story URL of a snapshot"`
	Dedupe  DedupeCmd  `cmd:"" help:"Remove stories already present in another snapshot"`
	Combine CombineCmd `cmd:"" help:"Merge another snapshot into a snapshot"`
	Export  ExportCmd  `cmd:"" help:"Write snapshots as markdown files"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a snapshot"`
}

// config loads the configuration file, if any, and applies flag overrides.
func (c *CLI) config() (*Config, error) {
	cfg := DefaultConfig()
	if c.ConfigFile != "" {
		var err error
		if cfg, err = LoadConfig(c.ConfigFile); err != nil {
			return nil, err
		}
	}
	if c.DB != "" {
		cfg.Store.Path = c.DB
	}
	if c.Store != "" {
		cfg.Store.Driver = c.Store
	}
	if c.API != "" {
		cfg.Source.APIURL = c.API
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Page       string   `help:"Portal page to extract (default from config)"`
	Date       []string `short:"d" help:"Extract the archive page for a date, YYYY-MM-DD (repeatable)"`
	Merge      bool     `default:"true" negatable:"" help:"Keep stored stories missing from the fresh extraction"`
	DedupeDays int      `name:"dedupe-days" help:"Drop stories already stored for the preceding N days"`
	FPRate     float64  `name:"dedupe-fp-rate" help:"Match prior URLs with a Bloom filter at this false positive rate (0 matches exactly)"`
	DryRun     bool     `name:"dry-run" short:"n" help:"Extract without saving"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Date   string `arg:"" help:"Snapshot date (YYYY-MM-DD)"`
	Format string `short:"f" help:"Story template with {text}, {source}, {url} and {date} placeholders"`
}

// TreeCmd is the "tree" subcommand.
type TreeCmd struct {
	Date  string `arg:"" help:"Snapshot date (YYYY-MM-DD)"`
	Width int    `short:"w" default:"100" help:"Truncate lines to this many columns (0 disables)"`
}

// URLsCmd is the "urls" subcommand.
type URLsCmd struct {
	Date string `arg:"" help:"Snapshot date (YYYY-MM-DD)"`
}

// DedupeCmd is the "dedupe" subcommand.
type DedupeCmd struct {
	Date     string `arg:"" help:"Snapshot date to clean (YYYY-MM-DD)"`
	Against  string `required:"" help:"Reference snapshot date (YYYY-MM-DD)"`
	Anywhere bool   `help:"Match URLs anywhere in the tree instead of at the same category path"`
	DryRun   bool   `name:"dry-run" short:"n" help:"Report without saving"`
}

// CombineCmd is the "combine" subcommand.
type CombineCmd struct {
	Date string `arg:"" help:"Snapshot date to merge into (YYYY-MM-DD)"`
	With string `required:"" help:"Snapshot date to merge from (YYYY-MM-DD)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir    string `arg:"" type:"path" help:"Directory to export into"`
	Name   string `default:"wikinews" help:"Name of the exported subdirectory"`
	From   string `help:"First date to export (YYYY-MM-DD)"`
	To     string `help:"Last date to export (YYYY-MM-DD)"`
	Format string `short:"f" help:"Story template with {text}, {source}, {url} and {date} placeholders"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Date  string `arg:"" help:"Snapshot date (YYYY-MM-DD)"`
	Force bool   `help:"Confirm deletion"`
}

// findSnapshot parses a date argument and loads its snapshot, reporting
// failures on stderr.
func findSnapshot(deps *Dependencies, arg string) (*wikinews.Snapshot, error) {
	date, err := parseDate(deps, arg)
	if err != nil {
		return nil, err
	}

	snap, err := deps.Snapshots.FindSnapshotByDate(deps.Ctx, date)
	if wikinews.ErrorCode(err) == wikinews.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: no snapshot for %s. Use 'wikinews list' to see stored dates.\n", arg)
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikinews.ErrorMessage(err))
		return nil, err
	}
	return snap, nil
}

func parseDate(deps *Dependencies, arg string) (time.Time, error) {
	date, err := wikinews.ParseDay(arg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikinews.ErrorMessage(err))
		return time.Time{}, err
	}
	return date, nil
}

// optionalDate parses arg unless it is empty.
func optionalDate(deps *Dependencies, arg string) (*time.Time, error) {
	if arg == "" {
		return nil, nil
	}
	date, err := parseDate(deps, arg)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// unescapeTemplate turns the \n and \t sequences typed on a command line
// into the characters they name.
func unescapeTemplate(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(s)
}
