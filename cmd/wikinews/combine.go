package main

import (
	"fmt"

	"github.com/fwojciec/wikinews"
)

// Run executes the combine command.
func (c *CombineCmd) Run(deps *Dependencies) error {
	snap, err := findSnapshot(deps, c.Date)
	if err != nil {
		return err
	}
	other, err := findSnapshot(deps, c.With)
	if err != nil {
		return err
	}

	before := snap.Count()
	snap.Combine(other)

	if err := deps.Snapshots.SaveSnapshot(deps.Ctx, snap); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikinews.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Combined %s into %s: %d stories added (%d total)\n",
		other.Key(), snap.Key(), snap.Count()-before, snap.Count())
	return nil
}
