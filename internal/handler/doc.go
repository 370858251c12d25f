// Package handler implements the read-only HTTP API for topology catalogs.
//
// An emulation engine fetches a topology by catalog and name, gets back a
// JSON or YAML document, and builds the emulated network from it.
//
// # Routes
//
//	GET /healthz
//	GET /api/catalogs
//	GET /api/catalogs/{catalog}
//	GET /api/catalogs/{catalog}/topologies/{name}?format=json|yaml
//	GET /api/catalogs/{catalog}/topologies/{name}/summary
//	GET /api/catalogs/{catalog}/topologies/{name}/path?from=A&to=B
//	GET /api/events
//
// # Response Format
//
// Error responses return JSON with {error, details} structure. An unknown
// catalog or topology is 404; a topology whose constructor fails is 422.
package handler
