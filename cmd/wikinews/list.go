package main

import (
	"fmt"

	"github.com/fwojciec/wikinews"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, wikinews.SnapshotFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikinews.ErrorMessage(err))
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'wikinews fetch' to extract some.")
		return nil
	}

	for _, snap := range snaps {
		fmt.Fprintf(deps.Stdout, "%s  %d categories  %d stories\n", snap.Key(), snap.Root.Len(), snap.Count())
	}

	return nil
}
