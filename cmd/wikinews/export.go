package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/wikinews"
	"github.com/fwojciec/wikinews/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	var filter wikinews.SnapshotFilter
	var err error
	if filter.From, err = optionalDate(deps, c.From); err != nil {
		return err
	}
	if filter.To, err = optionalDate(deps, c.To); err != nil {
		return err
	}

	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikinews.ErrorMessage(err))
		return err
	}

	format := c.Format
	if format == "" {
		format = deps.Config.Format
	}
	newExporter := deps.NewExporter
	if newExporter == nil {
		newExporter = markdownExporter
	}
	exporter := newExporter(c.Dir, c.Name, unescapeTemplate(format))

	for _, snap := range snaps {
		if err := exporter.Export(deps.Ctx, snap); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error: exporting %s: %s\n", snap.Key(), wikinews.ErrorMessage(err))
			return err
		}
	}
	if err := exporter.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d snapshots to %s\n", len(snaps), filepath.Join(c.Dir, c.Name))
	return nil
}

func markdownExporter(dir, name, template string) wikinews.Exporter {
	return fs.NewExporter(dir, name, fs.WithTemplate(template))
}
