package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/wikinews"
	"github.com/mattn/go-runewidth"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	snap, err := findSnapshot(deps, c.Date)
	if err != nil {
		return err
	}

	format := c.Format
	if format == "" {
		format = deps.Config.Format
	}

	fmt.Fprint(deps.Stdout, snap.Format(unescapeTemplate(format)))
	return nil
}

// Run executes the urls command.
func (c *URLsCmd) Run(deps *Dependencies) error {
	snap, err := findSnapshot(deps, c.Date)
	if err != nil {
		return err
	}

	for _, u := range snap.URLs() {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}

// Run executes the tree command.
func (c *TreeCmd) Run(deps *Dependencies) error {
	snap, err := findSnapshot(deps, c.Date)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, snap.Key())
	c.writeCategory(deps, snap.Root, 1)
	return nil
}

func (c *TreeCmd) writeCategory(deps *Dependencies, cat *wikinews.Category, depth int) {
	indent := strings.Repeat("  ", depth)
	for key, node := range cat.All() {
		switch node := node.(type) {
		case *wikinews.Category:
			c.writeLine(deps, indent+key)
			c.writeCategory(deps, node, depth+1)
		case *wikinews.Story:
			line := indent + "- " + node.Text
			if node.Source != "" {
				line += " (" + node.Source + ")"
			}
			c.writeLine(deps, line)
		}
	}
}

func (c *TreeCmd) writeLine(deps *Dependencies, line string) {
	if c.Width > 0 {
		line = runewidth.Truncate(line, c.Width, "…")
	}
	fmt.Fprintln(deps.Stdout, line)
}
