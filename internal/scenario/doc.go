// Package scenario holds the built-in test topologies and the catalogs that
// expose them.
//
// Each topology is a Definition: a plain table of hosts, switches and links.
// Build turns a Definition into a graph through the domain builder, so the
// tables are checked by the same rules as any other topology.
//
// Two catalogs ship with the binary:
//
//	balancer  topo31, test_topo, simplest_topo, simple_topo
//	nat       nat4, simplest_topo, simple_topo
//
// Both register simplest_topo and simple_topo. The names are unique per
// catalog, so the two catalogs carry their own definitions for them.
package scenario
