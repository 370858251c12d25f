// Package service implements the catalog layer shared by the CLI and the
// HTTP API.
//
// CatalogService holds an ordered set of catalogs. The built-in catalogs are
// added once at startup; a file-backed catalog can be swapped for a freshly
// loaded one with Replace while requests are being served. Each catalog
// instance stays read-only; only the set changes.
//
// # Event System
//
// Catalog changes and stored snapshots are published on an EventBus. The
// server forwards them to connected clients via Server-Sent Events.
package service
