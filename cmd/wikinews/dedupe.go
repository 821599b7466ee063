package main

import (
	"fmt"

	"github.com/fwojciec/wikinews"
)

// Run executes the dedupe command.
func (c *DedupeCmd) Run(deps *Dependencies) error {
	snap, err := findSnapshot(deps, c.Date)
	if err != nil {
		return err
	}
	ref, err := findSnapshot(deps, c.Against)
	if err != nil {
		return err
	}

	var removed int
	if c.Anywhere {
		removed = snap.RemoveURLs(wikinews.NewURLMap(ref.URLs()...))
	} else {
		removed = snap.RemoveDuplicates(ref)
	}

	if !c.DryRun && removed > 0 {
		if err := deps.Snapshots.SaveSnapshot(deps.Ctx, snap); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wikinews.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Removed %d stories from %s (%d remaining)\n", removed, snap.Key(), snap.Count())
	return nil
}
