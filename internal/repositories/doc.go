// Package repositories implements the storage port for reading list entries.
//
// [Store] is the contract the application layer depends on. It is split into [BookStore] and [VideoStore]
// so a caller can be handed a single kind, and extended with Close for lifecycle management.
//
// Key Implementations:
//   - [SQLiteStore] : relational backend (tables book and video), mattn/go-sqlite3 or modernc.org/sqlite
//   - [BoltStore] : key/value backend with one bucket per kind and a title index
//   - [MemoryStore] : slice-backed stub for fast deterministic tests
//
// Every operation returns an error wrapping one of the shared sentinels, so callers can distinguish
// [shared.ErrStoreClosed], [shared.ErrDuplicateTitle], [shared.ErrNotFound] and [shared.ErrStorage]
// with errors.Is. Backend faults are logged where they happen and never panic.
//
// Ids are assigned by the backend, start at 1, and are never reused after a delete.
// SQLite and BoltDB reject a duplicate title within a kind; the memory store does not.
package repositories
