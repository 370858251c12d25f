// Package repository defines the storage interface for topology snapshots.
//
// A snapshot is a frozen topology written to disk together with the catalog
// it came from and its content fingerprint. Snapshots let an operator see
// when a file-backed topology changed and rebuild an earlier version.
//
// # SQLite Implementation
//
// The sqlite subpackage stores snapshots in three tables:
//
//   - snapshots: one row per stored topology
//   - snapshot_nodes: nodes in insertion order
//   - snapshot_links: links in insertion order, metadata as JSON
//
// The schema is migrated on open. Reads go back through the domain builder,
// so a damaged row is reported as a build error rather than returned.
package repository
