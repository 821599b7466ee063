package main

import (
	"fmt"

	"github.com/fwojciec/wikinews"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return wikinews.Errorf(wikinews.EINVALID, "use --force to confirm deletion")
	}

	date, err := parseDate(deps, c.Date)
	if err != nil {
		return err
	}

	if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, date); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wikinews.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted snapshot %s\n", date.Format(wikinews.DateLayout))
	return nil
}
