// Package analysis answers structural questions about a frozen topology:
// connected components, hop paths between nodes and link degree.
//
// Connectivity is reported, never enforced. A topology with isolated nodes
// is still valid.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/topo"

	"topocat/internal/domain"
)

// ErrNoPath is returned when two nodes are in different components
var ErrNoPath = errors.New("no path")

// Graph is an undirected multigraph view of a topology. Node IDs follow the
// topology's insertion order.
type Graph struct {
	topo   *domain.Topology
	graph  *multi.UndirectedGraph
	ids    map[string]int64
	labels []string
}

// Summary holds the headline numbers of a topology
type Summary struct {
	Name       string `json:"name"`
	Nodes      int    `json:"nodes"`
	Hosts      int    `json:"hosts"`
	Switches   int    `json:"switches"`
	Links      int    `json:"links"`
	Components int    `json:"components"`
	MaxDegree  int    `json:"max_degree"`
}

// New builds the analysis view of t
func New(t *domain.Topology) *Graph {
	g := &Graph{
		topo:   t,
		graph:  multi.NewUndirectedGraph(),
		ids:    make(map[string]int64, t.NodeCount()),
		labels: make([]string, 0, t.NodeCount()),
	}

	for i, n := range t.Nodes() {
		id := int64(i)
		g.ids[n.Label()] = id
		g.labels = append(g.labels, n.Label())
		g.graph.AddNode(multi.Node(id))
	}
	for _, l := range t.Links() {
		from := g.graph.Node(g.ids[l.A()])
		to := g.graph.Node(g.ids[l.B()])
		g.graph.SetLine(g.graph.NewLine(from, to))
	}

	return g
}

// Components returns the connected components. Each component lists its
// labels in insertion order, and components are ordered by their first node.
func (g *Graph) Components() [][]string {
	raw := topo.ConnectedComponents(g.graph)

	out := make([][]string, 0, len(raw))
	for _, comp := range raw {
		ids := make([]int64, len(comp))
		for i, n := range comp {
			ids[i] = n.ID()
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		labels := make([]string, len(ids))
		for i, id := range ids {
			labels[i] = g.labels[id]
		}
		out = append(out, labels)
	}

	sort.Slice(out, func(i, j int) bool {
		return g.ids[out[i][0]] < g.ids[out[j][0]]
	})
	return out
}

// Connected reports whether every node can reach every other node
func (g *Graph) Connected() bool {
	return len(g.Components()) <= 1
}

// Path returns the fewest-hop path from one label to another, both ends
// included
func (g *Graph) Path(from, to string) ([]string, error) {
	fromID, ok := g.ids[from]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEndpoint, from)
	}
	toID, ok := g.ids[to]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownEndpoint, to)
	}

	shortest := path.DijkstraFrom(g.graph.Node(fromID), g.graph)
	nodes, weight := shortest.To(toID)
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return nil, fmt.Errorf("%w from %q to %q", ErrNoPath, from, to)
	}

	return g.toLabels(nodes), nil
}

// Degree counts the links touching label. Parallel links count separately.
func (g *Graph) Degree(label string) int {
	return len(g.topo.LinksOf(label))
}

// Neighbors returns the distinct nodes adjacent to label in insertion order
func (g *Graph) Neighbors(label string) []string {
	id, ok := g.ids[label]
	if !ok {
		return nil
	}

	var ids []int64
	it := g.graph.From(id)
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]string, len(ids))
	for i, nid := range ids {
		out[i] = g.labels[nid]
	}
	return out
}

// Summarize collects the headline numbers
func (g *Graph) Summarize() Summary {
	s := Summary{
		Name:       g.topo.Name(),
		Nodes:      g.topo.NodeCount(),
		Hosts:      len(g.topo.Hosts()),
		Switches:   len(g.topo.Switches()),
		Links:      g.topo.LinkCount(),
		Components: len(g.Components()),
	}
	for _, label := range g.labels {
		if d := g.Degree(label); d > s.MaxDegree {
			s.MaxDegree = d
		}
	}
	return s
}

func (g *Graph) toLabels(nodes []graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = g.labels[n.ID()]
	}
	return out
}
