package codec

import (
	"fmt"

	"topocat/internal/domain"
)

// Document is the serialized form of a topology. JSON and YAML share the
// same field names.
type Document struct {
	Name  string         `json:"name" yaml:"name"`
	Nodes []NodeDocument `json:"nodes" yaml:"nodes"`
	Links []LinkDocument `json:"links" yaml:"links"`
}

// NodeDocument is one node entry
type NodeDocument struct {
	Label    string `json:"label" yaml:"label"`
	Kind     string `json:"kind" yaml:"kind"`
	IP       string `json:"ip,omitempty" yaml:"ip,omitempty"`
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
}

// LinkDocument is one link entry
type LinkDocument struct {
	A        string         `json:"a" yaml:"a"`
	B        string         `json:"b" yaml:"b"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NewDocument converts a frozen topology to its document form
func NewDocument(topo *domain.Topology) *Document {
	doc := &Document{
		Name:  topo.Name(),
		Nodes: make([]NodeDocument, 0, topo.NodeCount()),
		Links: make([]LinkDocument, 0, topo.LinkCount()),
	}

	for _, n := range topo.Nodes() {
		nd := NodeDocument{Label: n.Label(), Kind: string(n.Kind())}
		nd.IP, _ = n.IP()
		nd.Protocol, _ = n.Protocol()
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, l := range topo.Links() {
		doc.Links = append(doc.Links, LinkDocument{A: l.A(), B: l.B(), Metadata: l.Metadata()})
	}

	return doc
}

// Graph builds the document into a fresh graph. Every builder rule applies,
// so a document with a dangling or duplicate entry is rejected.
func (d *Document) Graph() (*domain.Graph, error) {
	g := domain.NewGraph(d.Name)

	for i, nd := range d.Nodes {
		var err error
		switch domain.NodeKind(nd.Kind) {
		case domain.NodeKindHost:
			if nd.Protocol != "" {
				return nil, fmt.Errorf("node %d (%s): protocol is only valid on switches", i, nd.Label)
			}
			err = g.AddHost(nd.Label, nd.IP)
		case domain.NodeKindSwitch:
			if nd.IP != "" {
				return nil, fmt.Errorf("node %d (%s): ip is only valid on hosts", i, nd.Label)
			}
			err = g.AddSwitch(nd.Label, nd.Protocol)
		default:
			return nil, fmt.Errorf("node %d (%s): unknown kind %q", i, nd.Label, nd.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}

	for i, ld := range d.Links {
		if err := g.ConnectWith(ld.A, ld.B, ld.Metadata); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
	}

	return g, nil
}
