// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them. Most of them model the host platform's collaborator
// contracts: the config channel, the validation contract, the install gate
// and the HTTP transport.
//
// # Required Interfaces
//
//   - ConfigChannel: Read/write access to the host-owned configuration
//   - Validator: Exchanges credentials for a raw account list
//   - InstallGate: Enables the host's install action
//   - HTTPClient: Transport-level GET contract used by the API client
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TokenRefresher: OAuth token refresh on 401. Without it, an expired
//     token surfaces as a credential error instead of being refreshed.
//   - StateStore: Local sync-state watermark and account cache.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
