// Package domain defines the topology model used to describe emulated networks.
//
// This package contains the value types and the builder that every topology
// definition goes through, whether it is compiled in, loaded from a file or
// read back from the snapshot store.
//
// # Core Types
//
// Node is a Host or a Switch. Hosts may declare an IP address, switches may
// declare a controller-protocol version tag. Both are opaque strings.
//
// Link is an undirected connection between two node labels. Parallel links
// between the same pair are allowed, self-loops are not.
//
// Graph is the mutable builder. Nodes must be added before the links that
// reference them, and insertion order is kept for deterministic output.
//
// Topology is the frozen, read-only snapshot produced by Graph.Freeze. It is
// what an emulation engine consumes.
//
// # Errors
//
// Every invariant violation is reported with a sentinel error (ErrDuplicateLabel,
// ErrSelfLoop, ErrUnknownEndpoint, ErrGraphFrozen, ErrEmptyLabel) wrapped with
// the offending label, so callers match with errors.Is.
//
// # Design Principles
//
// - Immutable values outside the builder
// - No database or external dependencies beyond hashing
// - A topology either builds completely or is rejected
package domain
