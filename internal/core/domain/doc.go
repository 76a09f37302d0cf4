// Package domain defines the core entities for ideaforge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: an in-memory, line-addressable text
//   - DuplicateGroup: lines that share a fingerprint or are near-identical
//   - RelatedGroup: concepts that co-occur inside one context window
//   - IdeaRecord: a parsed, scored idea note
//   - Recommendation: a reconciliation decision over idea versions
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
