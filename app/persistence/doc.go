// Package persistence provides the durable key/value storage behind the worker roster.
// The roster keeps its whole state as one string value under a fixed key, so the stores
// here are plain string-keyed maps: SQLite with WAL mode for real runs and an in-memory
// map for tests and ephemeral sessions.
package persistence
