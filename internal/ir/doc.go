// Package ir provides the shared value types of the 24-point solver.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - A Multiset is semantically unordered; the canonical Key is its only
//     externally meaningful form
//   - All JSON tags use snake_case
//   - Logical clocks (seq) only, never wall-clock timestamps
package ir
