// Package wikitext parses a day's digest block into a tree of stories.
//
// The grammar is the subset of MediaWiki markup the current events digest
// uses: '''Header''' lines open a top-level category, bullet lines ("*",
// "**", ...) declare subcategories or stories, and stories end with a
// citation of the form [url (Source)].
package wikitext

import (
	"strings"

	"github.com/fwojciec/wikinews"
)

const (
	headerMarker   = "'''"
	bulletChar     = '*'
	storyDelimiter = ")]"
)

// Ensure Parser implements wikinews.Parser at compile time.
var _ wikinews.Parser = (*Parser)(nil)

// Parser builds day snapshots from digest blocks.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts block into a snapshot. Malformed lines degrade to literal
// text; parsing never fails.
func (p *Parser) Parse(block *wikinews.RawBlock) *wikinews.Snapshot {
	snap := wikinews.NewSnapshot(block.Date)

	var chain chain
	for line := range strings.Lines(block.Text) {
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, headerMarker):
			name := strings.TrimSpace(strings.Trim(line, "'"))
			cat := wikinews.NewCategory()
			snap.Root.Set(name, cat)
			chain.reset(name, cat)
		case strings.HasPrefix(line, string(bulletChar)):
			p.parseBullet(snap, &chain, line)
		}
	}
	return snap
}

func (p *Parser) parseBullet(snap *wikinews.Snapshot, c *chain, line string) {
	depth := 0
	for depth < len(line) && line[depth] == bulletChar {
		depth++
	}
	rest := strings.TrimSpace(line[depth:])

	if isStory(rest) {
		story := ParseStory(rest)
		story.Date = snap.Date
		story.Raw = line
		c.current(snap.Root).Set(story.URL, story)
		return
	}

	name, ok := linkListName(rest)
	if !ok {
		name = ParseLabel(rest)
	}
	if name == "" {
		return
	}
	c.truncate(depth)
	parent := c.current(snap.Root)
	cat := parent.Category(name)
	if cat == nil {
		cat = wikinews.NewCategory()
		parent.Set(name, cat)
	}
	c.push(name, cat)
}

// chain is the stack of open categories while parsing one block.
type chain struct {
	names []string
	cats  []*wikinews.Category
}

func (c *chain) reset(name string, cat *wikinews.Category) {
	c.names = append(c.names[:0], name)
	c.cats = append(c.cats[:0], cat)
}

func (c *chain) truncate(n int) {
	if n < len(c.names) {
		c.names = c.names[:n]
		c.cats = c.cats[:n]
	}
}

func (c *chain) push(name string, cat *wikinews.Category) {
	c.names = append(c.names, name)
	c.cats = append(c.cats, cat)
}

// current returns the innermost open category, or root if none is open.
func (c *chain) current(root *wikinews.Category) *wikinews.Category {
	if len(c.cats) == 0 {
		return root
	}
	return c.cats[len(c.cats)-1]
}
