package wikinews

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"time"
)

// Node is an entry in a snapshot tree: either a *Category or a *Story.
type Node interface {
	node()
}

func (*Category) node() {}
func (*Story) node()    {}

// Story is a single news item. Within its category it is keyed by URL.
type Story struct {
	Text   string    `json:"text"`
	URL    string    `json:"url"`
	Source string    `json:"source"`
	Date   time.Time `json:"date"`

	// Raw is the original digest line, kept for diagnostics.
	Raw string `json:"raw,omitempty"`
}

// Category is an ordered mapping of names to child nodes.
// Insertion order is preserved. The zero value is ready to use.
type Category struct {
	keys     []string
	children map[string]Node
}

// NewCategory returns an empty category.
func NewCategory() *Category {
	return &Category{children: make(map[string]Node)}
}

// Len returns the number of direct children.
func (c *Category) Len() int {
	return len(c.keys)
}

// Keys returns the child keys in insertion order.
func (c *Category) Keys() []string {
	return slices.Clone(c.keys)
}

// Get returns the child stored under key.
func (c *Category) Get(key string) (Node, bool) {
	n, ok := c.children[key]
	return n, ok
}

// Category returns the child category stored under key, or nil if key is
// missing or holds a story.
func (c *Category) Category(key string) *Category {
	child, _ := c.children[key].(*Category)
	return child
}

// Set stores n under key. Overwriting an existing key keeps its position.
func (c *Category) Set(key string, n Node) {
	if c.children == nil {
		c.children = make(map[string]Node)
	}
	if _, ok := c.children[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.children[key] = n
}

// Delete removes key and reports whether it was present.
func (c *Category) Delete(key string) bool {
	if _, ok := c.children[key]; !ok {
		return false
	}
	delete(c.children, key)
	if i := slices.Index(c.keys, key); i >= 0 {
		c.keys = slices.Delete(c.keys, i, i+1)
	}
	return true
}

// All iterates over the direct children in insertion order.
// Children may be deleted while iterating.
func (c *Category) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, key := range slices.Clone(c.keys) {
			n, ok := c.children[key]
			if !ok {
				continue
			}
			if !yield(key, n) {
				return
			}
		}
	}
}

// Stories iterates depth-first over every story below c.
func (c *Category) Stories() iter.Seq[*Story] {
	return func(yield func(*Story) bool) {
		c.walkStories(yield)
	}
}

func (c *Category) walkStories(yield func(*Story) bool) bool {
	for _, n := range c.All() {
		switch n := n.(type) {
		case *Story:
			if !yield(n) {
				return false
			}
		case *Category:
			if !n.walkStories(yield) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of c.
func (c *Category) Clone() *Category {
	out := NewCategory()
	for key, n := range c.All() {
		out.Set(key, cloneNode(n))
	}
	return out
}

func cloneNode(n Node) Node {
	switch n := n.(type) {
	case *Category:
		return n.Clone()
	case *Story:
		cp := *n
		return &cp
	}
	return n
}

// entryJSON is the serialized form of one category child.
type entryJSON struct {
	Key      string    `json:"key"`
	Category *Category `json:"category,omitempty"`
	Story    *Story    `json:"story,omitempty"`
}

// MarshalJSON encodes the category as an ordered list of entries.
func (c *Category) MarshalJSON() ([]byte, error) {
	entries := make([]entryJSON, 0, c.Len())
	for key, n := range c.All() {
		e := entryJSON{Key: key}
		switch n := n.(type) {
		case *Category:
			e.Category = n
		case *Story:
			e.Story = n
		}
		entries = append(entries, e)
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes an ordered list of entries.
func (c *Category) UnmarshalJSON(data []byte) error {
	var entries []entryJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*c = Category{children: make(map[string]Node, len(entries))}
	for i, e := range entries {
		switch {
		case e.Story != nil:
			c.Set(e.Key, e.Story)
		case e.Category != nil:
			c.Set(e.Key, e.Category)
		default:
			return fmt.Errorf("entry %d (%q): neither category nor story", i, e.Key)
		}
	}
	return nil
}
