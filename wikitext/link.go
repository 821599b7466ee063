package wikitext

import "strings"

const (
	linkOpen  = "[["
	linkClose = "]]"
	linkPipe  = '|'
)

// reservedNamespaces prefix links that carry page metadata rather than
// visible text.
var reservedNamespaces = []string{"category:", "file:", "image:"}

// ScanLink resolves the [[...]] link at the start of s to its display
// name and returns the number of bytes consumed. The display name is the
// text after the last pipe inside the brackets. Links into a reserved
// namespace resolve to "". If s does not start with a terminated link,
// ScanLink returns "", 0.
func ScanLink(s string) (name string, n int) {
	if !strings.HasPrefix(s, linkOpen) {
		return "", 0
	}
	end := strings.Index(s[len(linkOpen):], linkClose)
	if end < 0 {
		return "", 0
	}
	inner := s[len(linkOpen) : len(linkOpen)+end]
	n = len(linkOpen) + end + len(linkClose)

	if i := strings.LastIndexByte(inner, linkPipe); i >= 0 {
		inner = inner[i+1:]
	}
	if isReserved(inner) {
		return "", n
	}
	return inner, n
}

func isReserved(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, ns := range reservedNamespaces {
		if strings.HasPrefix(lower, ns) {
			return true
		}
	}
	return false
}

// ParseLabel renders a subcategory label: literal text is kept and every
// link is replaced by its display name.
func ParseLabel(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if name, n := ScanLink(s[i:]); n > 0 {
			b.WriteString(name)
			i += n
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return strings.TrimSpace(b.String())
}

// isLinkList reports whether s holds only links separated by commas and
// whitespace, e.g. "[[Sports]], [[Olympics]]".
func isLinkList(s string) bool {
	_, ok := linkListName(s)
	return ok
}

// linkListName returns the display name of the first visible link in a
// comma-separated link list. The links after it are further tags for the
// same category. ok is false if s is not a link list.
func linkListName(s string) (name string, ok bool) {
	links := 0
	for i := 0; i < len(s); {
		if link, n := ScanLink(s[i:]); n > 0 {
			links++
			if name == "" {
				name = strings.TrimSpace(link)
			}
			i += n
			continue
		}
		switch s[i] {
		case ',', ' ', '\t':
			i++
		default:
			return "", false
		}
	}
	return name, links > 0
}
