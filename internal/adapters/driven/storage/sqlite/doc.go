// Package sqlite provides the SQLite-backed implementation of the
// DocumentStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Documents, their text
// chunks and extracted images live in a single database file; deleting a
// document cascades to its chunks and images through foreign keys.
//
// # Embeddings
//
// Chunk embeddings are stored as little-endian float32 BLOBs. A NULL
// embedding column marks a chunk whose embedding generation failed, which
// keeps the chunk reachable by keyword retrieval.
//
// # Schema
//
// The database schema is managed through versioned migrations embedded from
// the migrations/ directory.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
