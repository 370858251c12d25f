package domain

import "fmt"

// Graph is the mutable builder for one topology. Nodes and links are kept in
// insertion order. Once frozen, the graph rejects every change.
type Graph struct {
	name   string
	nodes  []Node
	index  map[string]int
	links  []Link
	frozen *Topology
}

// NewGraph creates an empty graph
func NewGraph(name string) *Graph {
	return &Graph{
		name:  name,
		nodes: make([]Node, 0),
		index: make(map[string]int),
		links: make([]Link, 0),
	}
}

// Name returns the topology name the graph was created with
func (g *Graph) Name() string {
	return g.name
}

// AddNode inserts a node. The graph is unchanged when an error is returned.
func (g *Graph) AddNode(node Node) error {
	if g.frozen != nil {
		return fmt.Errorf("add node %q: %w", node.label, ErrGraphFrozen)
	}
	if node.label == "" {
		return ErrEmptyLabel
	}
	if _, exists := g.index[node.label]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateLabel, node.label)
	}

	g.index[node.label] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return nil
}

// AddLink inserts a link. Both endpoints must already be present.
// Self-loops are rejected before anything else is checked.
func (g *Graph) AddLink(link Link) error {
	if link.a == link.b {
		return fmt.Errorf("%w: %q", ErrSelfLoop, link.a)
	}
	if g.frozen != nil {
		return fmt.Errorf("add link %s: %w", link, ErrGraphFrozen)
	}
	for _, label := range [...]string{link.a, link.b} {
		if _, exists := g.index[label]; !exists {
			return fmt.Errorf("%w: %q in link %s", ErrUnknownEndpoint, label, link)
		}
	}

	g.links = append(g.links, link)
	return nil
}

// AddHost adds a host node
func (g *Graph) AddHost(label, ip string) error {
	return g.AddNode(NewHost(label, ip))
}

// AddSwitch adds a switch node
func (g *Graph) AddSwitch(label, protocol string) error {
	return g.AddNode(NewSwitch(label, protocol))
}

// Connect links two existing nodes
func (g *Graph) Connect(a, b string) error {
	return g.ConnectWith(a, b, nil)
}

// ConnectWith links two existing nodes with per-link metadata
func (g *Graph) ConnectWith(a, b string, metadata map[string]any) error {
	link, err := NewLink(a, b, metadata)
	if err != nil {
		return err
	}
	return g.AddLink(link)
}

// Freeze returns the read-only snapshot of the graph. Calling it again
// returns the same snapshot.
func (g *Graph) Freeze() *Topology {
	if g.frozen == nil {
		g.frozen = newTopology(g.name, g.nodes, g.links)
	}
	return g.frozen
}

// Frozen reports whether Freeze has been called
func (g *Graph) Frozen() bool {
	return g.frozen != nil
}

// Nodes returns the nodes in insertion order
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Links returns the links in insertion order
func (g *Graph) Links() []Link {
	return append([]Link(nil), g.links...)
}

// Node looks up a node by label
func (g *Graph) Node(label string) (Node, bool) {
	i, ok := g.index[label]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Len returns the number of nodes and links added so far
func (g *Graph) Len() (nodes, links int) {
	return len(g.nodes), len(g.links)
}
