// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ProviderConfig: The lookup provider, either direct or URL based
//   - MapWidget: Viewport, marker layers and the map event emitter
//   - Presenter: Applies render instructions to the screen
//   - Scheduler: Runs engine work on the single event loop
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ResultTransport: Only needed by URL providers.
//   - TokenSource: Defaults to UUID tokens inside the transport adapter.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
