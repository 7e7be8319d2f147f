// Package store provides SQLite-backed history of dispatched queries.
//
// Each run of query.Engine.Run may be recorded as a row in queries plus
// one row per match in matches:
//   - id: UUIDv7 run identifier (time-sortable, see IDGenerator)
//   - seq: logical sequence number from Clock, never a wall-clock timestamp
//   - query_key: content-addressed identity of the request (QueryKey)
//
// # Deterministic Ordering
//
// Listing queries uses ORDER BY seq. Matches are returned in ordinal order,
// which is the order the scan yielded them.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
