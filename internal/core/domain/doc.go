// Package domain defines the core business entities for Shelfwise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - BookRecord: A book as described by the remote catalog
//   - SavedBookSet: The live membership set of a user's saved books
//   - Review: A per-book, per-user review, plus its feed types
//   - UserProfile: Editable profile data for the signed-in user
//   - SearchState: One applied result of the debounced search stream
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
