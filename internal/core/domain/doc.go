// Package domain defines the core business entities for the Bitbucket
// integration.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Config: The persisted integration configuration owned by the host
//   - BasicAuth / OAuth2Auth: The two credential variants
//   - Workspace: A workspace returned by the Bitbucket listing API
//   - Account: A normalised syncable account discovered via validation
//   - SetupState: The derived state of the configuration wizard
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
