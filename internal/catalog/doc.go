// Package catalog maps topology names to the constructors that build them.
//
// A Catalog is populated once, typically from a compiled-in table or from a
// directory of topology documents, and is read-only afterwards. Every Get
// runs the constructor again and freezes its result, so two callers never
// share a builder.
//
// # Errors
//
//   - ErrDuplicateTopologyName: a name is registered twice. The first
//     registration stays active.
//   - ErrUnknownTopologyName: Get was asked for a name that is not bound.
//
// Constructor failures are wrapped with the topology name and returned as is.
// No partially built topology is ever handed out.
//
// # Concurrency
//
// Get, List, Has and Len are safe for concurrent use. Verify builds every
// entry on a bounded worker pool and reports every failure at once.
package catalog
