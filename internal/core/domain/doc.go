// Package domain defines the core entities of the geosearch engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Location: A place resolved by a lookup provider
//   - SearchQuery: Transient search text and its origin
//   - Outcome: The tagged result of one search session
//   - Config: The control options, immutable per control instance
//   - RenderInstruction: A presentation change emitted by the engine
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
