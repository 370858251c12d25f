package scenario

import "topocat/internal/catalog"

// NATCatalog is the name of the NAT catalog
const NATCatalog = "nat"

// NAT4 puts three local hosts behind a NAT switch (s2). On the global side
// s4 reaches h2 directly and h1, h3 through sg3 and sg5.
var NAT4 = Definition{
	Name: "nat4",
	Hosts: []Host{
		{Label: "l1", IP: "10.0.0.1"},
		{Label: "l2", IP: "10.0.0.2"},
		{Label: "l3", IP: "10.0.0.3"},
		{Label: "h1", IP: "10.0.0.10"},
		{Label: "h2", IP: "10.0.0.11"},
		{Label: "h3", IP: "10.0.0.12"},
	},
	Switches: []string{"s1", "s2", "s4", "sg3", "sg5"},
	Links: [][2]string{
		{"l1", "s1"},
		{"l2", "s1"},
		{"l3", "s1"},
		{"s1", "s2"},
		{"s2", "s4"},
		{"s4", "sg3"},
		{"s4", "sg5"},
		{"s4", "h2"},
		{"sg3", "h1"},
		{"sg5", "h3"},
	},
}

// NAT's own copies of the small topologies. They match the balancer
// shapes but are separate definitions, so either catalog can change its
// version without touching the other.
var (
	NATSimplestTopo = Definition{
		Name:     "simplest_topo",
		Hosts:    hosts("b1", "b2", "h3"),
		Switches: []string{"s1"},
		Links: [][2]string{
			{"b1", "s1"},
			{"b2", "s1"},
			{"s1", "h3"},
		},
	}

	NATSimpleTopo = Definition{
		Name:     "simple_topo",
		Hosts:    hosts("b1", "b2", "h3"),
		Switches: []string{"s1", "s2"},
		Links: [][2]string{
			{"b1", "s1"},
			{"b2", "s1"},
			{"s1", "s2"},
			{"s2", "h3"},
		},
	}
)

// NAT returns a new NAT catalog
func NAT() *catalog.Catalog {
	return newCatalog(NATCatalog, NAT4, NATSimplestTopo, NATSimpleTopo)
}
