// Package store provides durable key-value storage for the client session.
//
// It contains concrete implementations of domain.Storage. The session layer
// writes exactly two keys, "token" and "user", and expects them to survive a
// restart. All implementations are safe for concurrent use.
//
// The package includes:
//   - FileStore: a JSON document under the lingo home directory, written
//     atomically with mode 0600 and optionally sealed with a passphrase
//   - SQLiteStore: a kv table in a SQLite database
//   - MemoryStore: process-local storage for tests and throwaway runs
package store
