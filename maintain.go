package wikinews

import "iter"

// Count returns the number of stories in the snapshot.
func (s *Snapshot) Count() int {
	var n int
	for range s.Stories() {
		n++
	}
	return n
}

// URLs returns every story URL in depth-first insertion order. URLs that
// appear under several categories are returned once per occurrence.
func (s *Snapshot) URLs() []string {
	var urls []string
	for st := range s.Stories() {
		urls = append(urls, st.URL)
	}
	return urls
}

// RemoveDuplicates removes every story whose URL also appears at the same
// category path in reference, prunes empty categories, and returns the
// number of stories removed. A story with the same URL at a different path
// is kept.
func (s *Snapshot) RemoveDuplicates(reference *Snapshot) int {
	var n int
	if s.Root != nil && reference != nil && reference.Root != nil {
		n = removeMatching(s.Root, reference.Root)
	}
	s.Prune()
	return n
}

func removeMatching(c, ref *Category) int {
	var n int
	for key, node := range c.All() {
		other, ok := ref.Get(key)
		if !ok {
			continue
		}
		switch node := node.(type) {
		case *Story:
			if o, ok := other.(*Story); ok && o.URL == node.URL {
				c.Delete(key)
				n++
			}
		case *Category:
			if o, ok := other.(*Category); ok {
				n += removeMatching(node, o)
			}
		}
	}
	return n
}

// RemoveURLs removes every story whose URL is in set, wherever it sits in
// the tree, prunes empty categories, and returns the number of stories
// removed.
func (s *Snapshot) RemoveURLs(set URLSet) int {
	var n int
	if s.Root != nil && set != nil {
		n = removeURLs(s.Root, set)
	}
	s.Prune()
	return n
}

func removeURLs(c *Category, set URLSet) int {
	var n int
	for key, node := range c.All() {
		switch node := node.(type) {
		case *Story:
			if set.Contains(node.URL) {
				c.Delete(key)
				n++
			}
		case *Category:
			n += removeURLs(node, set)
		}
	}
	return n
}

// Prune removes categories without children. Removal cascades upward, so a
// category whose only children were empty categories is removed too. The
// root itself is kept. Returns the number of categories removed.
func (s *Snapshot) Prune() int {
	if s.Root == nil {
		return 0
	}
	return prune(s.Root)
}

func prune(c *Category) int {
	var n int
	for key, node := range c.All() {
		child, ok := node.(*Category)
		if !ok {
			continue
		}
		n += prune(child)
		if child.Len() == 0 {
			c.Delete(key)
			n++
		}
	}
	return n
}

// Combine copies into s every entry of other that s lacks at the same
// category path. Entries already present in s are never overwritten.
// Copied entries are deep copies; the two trees never share nodes.
// Empty categories are pruned afterwards.
func (s *Snapshot) Combine(other *Snapshot) {
	if s.Root == nil {
		s.Root = NewCategory()
	}
	if other != nil && other.Root != nil {
		combine(s.Root, other.Root)
	}
	s.Prune()
}

func combine(c, other *Category) {
	for key, node := range other.All() {
		existing, ok := c.Get(key)
		if !ok {
			c.Set(key, cloneNode(node))
			continue
		}
		dst, ok := existing.(*Category)
		if !ok {
			continue
		}
		if src, ok := node.(*Category); ok {
			combine(dst, src)
		}
	}
}

// Stories iterates depth-first over every story in the snapshot.
func (s *Snapshot) Stories() iter.Seq[*Story] {
	if s.Root == nil {
		return func(func(*Story) bool) {}
	}
	return s.Root.Stories()
}

// URLSet reports membership of story URLs.
type URLSet interface {
	Contains(url string) bool
}

// URLIndex is a URLSet that URLs can be added to.
type URLIndex interface {
	URLSet
	Add(urls ...string)
}

// Ensure URLMap implements URLIndex at compile time.
var _ URLIndex = URLMap(nil)

// URLMap is an exact, map-backed URLIndex.
type URLMap map[string]struct{}

// NewURLMap returns a set holding urls.
func NewURLMap(urls ...string) URLMap {
	m := make(URLMap, len(urls))
	m.Add(urls...)
	return m
}

// Add inserts urls into the set.
func (m URLMap) Add(urls ...string) {
	for _, u := range urls {
		m[u] = struct{}{}
	}
}

// Contains reports whether url is in the set.
func (m URLMap) Contains(url string) bool {
	_, ok := m[url]
	return ok
}
