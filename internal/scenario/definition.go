package scenario

import (
	"fmt"

	"topocat/internal/catalog"
	"topocat/internal/domain"
)

// Host declares a host and its optional address
type Host struct {
	Label string
	IP    string
}

// Definition is the declarative shape of one topology. Hosts are added
// before switches and links are added last, each in slice order.
type Definition struct {
	Name     string
	Hosts    []Host
	Switches []string
	Links    [][2]string
}

// Build assembles the definition into a fresh graph. Every switch is tagged
// with the OpenFlow 1.3 protocol.
func (d Definition) Build() (*domain.Graph, error) {
	g := domain.NewGraph(d.Name)

	for _, h := range d.Hosts {
		if err := g.AddHost(h.Label, h.IP); err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
	}
	for _, s := range d.Switches {
		if err := g.AddSwitch(s, domain.ProtocolOpenFlow13); err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
	}
	for _, l := range d.Links {
		if err := g.Connect(l[0], l[1]); err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
	}

	return g, nil
}

// Constructor adapts the definition to a catalog constructor
func (d Definition) Constructor() catalog.Constructor {
	return d.Build
}

func hosts(labels ...string) []Host {
	out := make([]Host, len(labels))
	for i, l := range labels {
		out[i] = Host{Label: l}
	}
	return out
}

func newCatalog(name string, defs ...Definition) *catalog.Catalog {
	c := catalog.New(name)
	for _, d := range defs {
		c.MustRegister(d.Name, d.Constructor())
	}
	return c
}

// Catalogs returns every built-in catalog
func Catalogs() []*catalog.Catalog {
	return []*catalog.Catalog{Balancer(), NAT()}
}
