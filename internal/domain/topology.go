package domain

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Topology is the frozen snapshot of a Graph. It exposes ordered nodes and
// links plus O(1) lookup by label, and offers no way to modify them.
type Topology struct {
	name  string
	nodes []Node
	index map[string]int
	links []Link
}

func newTopology(name string, nodes []Node, links []Link) *Topology {
	t := &Topology{
		name:  name,
		nodes: slices.Clone(nodes),
		index: make(map[string]int, len(nodes)),
		links: slices.Clone(links),
	}
	for i, n := range t.nodes {
		t.index[n.label] = i
	}
	return t
}

// Name returns the topology name
func (t *Topology) Name() string {
	return t.name
}

// Nodes returns the nodes in insertion order
func (t *Topology) Nodes() []Node {
	return slices.Clone(t.nodes)
}

// Links returns the links in insertion order
func (t *Topology) Links() []Link {
	return slices.Clone(t.links)
}

// Node looks up a node by label
func (t *Topology) Node(label string) (Node, bool) {
	i, ok := t.index[label]
	if !ok {
		return Node{}, false
	}
	return t.nodes[i], true
}

// NodeCount returns the number of nodes
func (t *Topology) NodeCount() int {
	return len(t.nodes)
}

// LinkCount returns the number of links
func (t *Topology) LinkCount() int {
	return len(t.links)
}

// Hosts returns the host nodes in insertion order
func (t *Topology) Hosts() []Node {
	return t.filter(NodeKindHost)
}

// Switches returns the switch nodes in insertion order
func (t *Topology) Switches() []Node {
	return t.filter(NodeKindSwitch)
}

func (t *Topology) filter(kind NodeKind) []Node {
	var out []Node
	for _, n := range t.nodes {
		if n.kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// LinksOf returns every link touching label, in insertion order
func (t *Topology) LinksOf(label string) []Link {
	var out []Link
	for _, l := range t.links {
		if l.Involves(label) {
			out = append(out, l)
		}
	}
	return out
}

// Fingerprint returns a hex digest of the topology content (nodes, links,
// attributes and order). The name is not part of the digest. Metadata values
// are compared by their JSON encoding, so 10 and 10.0 are equal while "10"
// is not.
func (t *Topology) Fingerprint() string {
	h, _ := blake2b.New256(nil) // only fails for oversized keys
	for _, n := range t.nodes {
		io.WriteString(h, "n")
		writeField(h, string(n.kind))
		writeField(h, n.label)
		writeField(h, n.ip)
		writeField(h, n.protocol)
	}
	for _, l := range t.links {
		io.WriteString(h, "l")
		writeField(h, l.a)
		writeField(h, l.b)
		writeField(h, encodeMetadata(l.metadata))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeField writes s length-prefixed so adjacent fields cannot run together
func writeField(w io.Writer, s string) {
	fmt.Fprintf(w, "%d:%s", len(s), s)
}

// encodeMetadata renders metadata as JSON with sorted keys. Values JSON
// cannot encode fall back to their Go syntax representation.
func encodeMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}
	data, err := json.Marshal(metadata)
	if err == nil {
		return string(data)
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%q=%#v;", k, metadata[k])
	}
	return b.String()
}
