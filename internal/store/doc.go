// Package store provides SQLite-backed durable storage for the solver.
//
// The store holds two tables:
//   - judgments: canonical key -> raw feasibility judgment text
//   - solve_runs: one row per finished solve call (run history)
//
// # Judgment Semantics
//
// The judgments table mirrors the in-memory cache exactly. Saving replaces
// the whole table inside one transaction, so a reader never observes a
// half-written cache. Concurrent writers are not coordinated: last writer
// wins.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Run ordering uses the seq column (logical clock), never timestamps.
//
// Databases carry user_version; Open refuses one stamped by a newer build.
package store
