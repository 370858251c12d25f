package scenario

import "topocat/internal/catalog"

// BalancerCatalog is the name of the load-balancing catalog
const BalancerCatalog = "balancer"

// Topo31 has three balanced hosts behind s5 and a diamond of four switches
// in front of the served hosts.
var Topo31 = Definition{
	Name:     "topo31",
	Hosts:    hosts("b1", "b2", "b3", "h4", "h5", "h6", "h7"),
	Switches: []string{"s1", "s2", "s3", "s4", "s5"},
	Links: [][2]string{
		{"b1", "s5"},
		{"b2", "s5"},
		{"b3", "s5"},
		{"s5", "s1"},
		{"s1", "s3"},
		{"s1", "s4"},
		{"s3", "s2"},
		{"s4", "s2"},
		{"s3", "h6"},
		{"s4", "h7"},
		{"s2", "h4"},
		{"s1", "h5"},
	},
}

// SimplestTopo: b1, b2 -- s1 -- h3
var SimplestTopo = Definition{
	Name:     "simplest_topo",
	Hosts:    hosts("b1", "b2", "h3"),
	Switches: []string{"s1"},
	Links: [][2]string{
		{"b1", "s1"},
		{"b2", "s1"},
		{"s1", "h3"},
	},
}

// SimpleTopo: b1, b2 -- s1 -- s2 -- h3
var SimpleTopo = Definition{
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

// TestTopo: four hosts on one switch
var TestTopo = Definition{
	Name:     "test_topo",
	Hosts:    hosts("h1", "h2", "h3", "h4"),
	Switches: []string{"s1"},
	Links: [][2]string{
		{"h1", "s1"},
		{"h2", "s1"},
		{"h3", "s1"},
		{"h4", "s1"},
	},
}

// Balancer returns a new load-balancing catalog
func Balancer() *catalog.Catalog {
	return newCatalog(BalancerCatalog, Topo31, TestTopo, SimplestTopo, SimpleTopo)
}
