package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/wikinews"
	"github.com/fwojciec/wikinews/bloom"
	"github.com/fwojciec/wikinews/extract"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	if c.FPRate < 0 || c.FPRate >= 1 {
		fmt.Fprintf(deps.Stderr, "error: --dedupe-fp-rate must be in [0, 1)\n")
		return wikinews.Errorf(wikinews.EINVALID, "invalid false positive rate %g", c.FPRate)
	}

	dates := make([]time.Time, 0, len(c.Date))
	for _, arg := range c.Date {
		date, err := parseDate(deps, arg)
		if err != nil {
			return err
		}
		dates = append(dates, date)
	}

	ex := *deps.Extractor
	ex.Merge = c.Merge
	ex.DedupeDays = c.DedupeDays
	ex.DryRun = c.DryRun
	if c.FPRate > 0 {
		ex.NewIndex = bloom.Index(c.FPRate)
	}

	var result *extract.Result
	var err error
	if len(dates) > 0 {
		result, err = ex.RunDates(deps.Ctx, dates)
	} else {
		page := c.Page
		if page == "" {
			page = deps.Config.Source.Page
		}
		result, err = ex.Run(deps.Ctx, page)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikinews.ErrorMessage(err))
		return err
	}

	for _, snap := range result.Snapshots {
		fmt.Fprintf(deps.Stdout, "%s  %d stories\n", snap.Key(), snap.Count())
	}

	verb := "Stored"
	if c.DryRun {
		verb = "Extracted"
	}
	fmt.Fprintf(deps.Stdout, "%s %d snapshots (%d duplicates removed, %d empty days skipped)\n",
		verb, len(result.Snapshots), result.Removed, result.Skipped)
	return nil
}
