// Package store provides SQLite-backed storage for conformance runs.
//
// Runs are append-only. Each run has its probe observations stored
// alongside it.
//
// Ordering uses a logical seq assigned on insert, never timestamps, so
// listings are deterministic:
//
//	ORDER BY seq ASC, id COLLATE BINARY ASC
package store
