package wikinews_test

import (
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/wikinews"
)

var testDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

// addStory places a story under the category path, creating categories
// as needed.
func addStory(snap *wikinews.Snapshot, url, text string, path ...string) *wikinews.Story {
	c := snap.Root
	for _, name := range path {
		next := c.Category(name)
		if next == nil {
			next = wikinews.NewCategory()
			c.Set(name, next)
		}
		c = next
	}
	st := &wikinews.Story{Text: text, URL: url, Source: "Reuters", Date: snap.Date}
	c.Set(url, st)
	return st
}

// paths lists every story as "Category/Sub/url", sorted.
func paths(snap *wikinews.Snapshot) []string {
	var out []string
	var walk func(c *wikinews.Category, prefix []string)
	walk = func(c *wikinews.Category, prefix []string) {
		for key, n := range c.All() {
			switch n := n.(type) {
			case *wikinews.Category:
				walk(n, append(slices.Clone(prefix), key))
			case *wikinews.Story:
				out = append(out, strings.Join(append(slices.Clone(prefix), n.URL), "/"))
			}
		}
	}
	walk(snap.Root, nil)
	slices.Sort(out)
	return out
}
