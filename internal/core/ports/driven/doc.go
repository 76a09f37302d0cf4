// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - IdeaStore: the idea database (in-memory, insertion ordered)
//   - DocumentLoader: reads a Document from a location
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SnapshotStore: persists the idea database between runs (JSON or SQLite).
//     Without it the database lives only for one invocation.
//   - DocumentWatcher: streams change events for a watched file.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
