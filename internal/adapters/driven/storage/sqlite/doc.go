// Package sqlite stores idea snapshots in a SQLite database.
//
// It uses modernc.org/sqlite, a pure Go driver, so the binary needs no CGO.
//
// # Schema
//
// The schema is managed through versioned migrations in migrations/. Each
// migration is a pair of NNN_name.up.sql and NNN_name.down.sql files; applied
// versions are recorded in schema_migrations.
//
// # Ordering
//
// Ideas are stored with their snapshot position so Load returns them in the
// order they were saved.
package sqlite
