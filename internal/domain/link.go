package domain

import (
	"fmt"
	"maps"
)

// Link represents an undirected connection between two node labels
type Link struct {
	a        string
	b        string
	metadata map[string]any
}

// NewLink creates a link between a and b. The metadata map is copied, so
// later changes by the caller do not leak into the link.
func NewLink(a, b string, metadata map[string]any) (Link, error) {
	if a == b {
		return Link{}, fmt.Errorf("%w: %q", ErrSelfLoop, a)
	}

	link := Link{a: a, b: b}
	if len(metadata) > 0 {
		link.metadata = maps.Clone(metadata)
	}
	return link, nil
}

// A returns the first endpoint label, in declaration order
func (l Link) A() string {
	return l.a
}

// B returns the second endpoint label, in declaration order
func (l Link) B() string {
	return l.b
}

// Endpoints returns both endpoint labels
func (l Link) Endpoints() (string, string) {
	return l.a, l.b
}

// Metadata returns a copy of the per-link attributes, or nil if there are none
func (l Link) Metadata() map[string]any {
	if len(l.metadata) == 0 {
		return nil
	}
	return maps.Clone(l.metadata)
}

// GetMetadata gets a single metadata value
func (l Link) GetMetadata(key string) (any, bool) {
	val, ok := l.metadata[key]
	return val, ok
}

// Involves checks if this link touches the given node label
func (l Link) Involves(label string) bool {
	return l.a == label || l.b == label
}

// OtherEnd returns the label on the other end of this link
func (l Link) OtherEnd(label string) string {
	if l.a == label {
		return l.b
	}
	return l.a
}

// Connects reports whether the link joins x and y, in either direction
func (l Link) Connects(x, y string) bool {
	return (l.a == x && l.b == y) || (l.a == y && l.b == x)
}

// String returns "a<->b"
func (l Link) String() string {
	return l.a + "<->" + l.b
}
