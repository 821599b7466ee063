package wikitext

import (
	"strings"

	"github.com/fwojciec/wikinews"
)

const (
	citationOpen   = '['
	sourceOpen     = " ("
	italicsQuote   = '\''
	citationSuffix = "]"
)

// isStory reports whether a bullet's text is a citation-bearing story
// rather than a subcategory declaration.
func isStory(s string) bool {
	return strings.HasSuffix(s, storyDelimiter) && !isLinkList(s)
}

// ParseStory extracts a story from a line ending in a citation. Links in
// the headline are replaced by their display names; the first single
// bracket starts the citation "[url (Source)]". Anything after the
// citation is discarded. A line without a citation yields a story with
// an empty URL and source.
func ParseStory(line string) *wikinews.Story {
	story := &wikinews.Story{}
	var text strings.Builder

	for i := 0; i < len(line); {
		rest := line[i:]
		if name, n := ScanLink(rest); n > 0 {
			text.WriteString(name)
			i += n
			continue
		}
		if strings.HasPrefix(rest, linkOpen) {
			// Unterminated link, copied through.
			text.WriteString(linkOpen)
			i += len(linkOpen)
			continue
		}
		if rest[0] == citationOpen {
			story.URL, story.Source = parseCitation(rest[1:])
			break
		}
		text.WriteByte(rest[0])
		i++
	}

	story.Text = strings.TrimSpace(text.String())
	return story
}

// parseCitation splits the body of "[url (Source)]" into the URL and the
// source with italics quotes removed.
func parseCitation(s string) (url, source string) {
	i := strings.Index(s, sourceOpen)
	if i < 0 {
		url, _, _ = strings.Cut(s, citationSuffix)
		return url, ""
	}
	url = s[:i]

	var b strings.Builder
	depth := 0
	for _, r := range s[i+len(sourceOpen):] {
		switch r {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return url, b.String()
			}
			depth--
		case italicsQuote:
			continue
		}
		b.WriteRune(r)
	}
	return url, b.String()
}
