// Package sqlite provides a SQLite-backed implementation of the
// DocumentStore port for offline use.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Documents live
// in a single table keyed by (collection, id) with the fields stored as
// a JSON blob; time values are serialised as RFC 3339 strings.
//
// Collection subscriptions are fanned out in process: every mutation
// re-reads the affected collection under the store lock and delivers a
// complete ordered snapshot to each open subscription, in mutation
// order. Snapshots therefore have the same delivery semantics as the
// memory store, with durability across restarts.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.shelfwise/data/library.db
package sqlite
