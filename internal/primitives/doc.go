// Package primitives provides the foundational, zero-dependency data structures
// for the URL router: the parsed Location value, the URLChange sum, and the
// history-entry kind.
//
// This package uses ONLY the Go standard library. No external dependencies are
// permitted in the data tier to achieve:
// - Minimal binary size
// - Deterministic builds
// - Trivially portable value semantics
//
// Core invariants:
// - Immutability (Location and URLChange are values; Apply never mutates its base)
// - Equality by content (path segments, unordered query pairs, fragment; never
//   by raw string encoding)
// - Totality (Parse and Apply accept any input and always produce a Location)
package primitives
