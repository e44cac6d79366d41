// Package engine implements the breadth-first 24-point search.
//
// The engine owns traversal, deduplication and memoization; the oracle
// owns judgment. A Solver is built once with an oracle and a loaded cache,
// then Solve is called per puzzle.
//
// ARCHITECTURE:
//
// Single-Threaded Search Loop:
// Each Solve call runs one FIFO loop with at most one outstanding oracle
// call. The frontier queue and visited set are created per call and never
// shared, so independent Solve calls never cross-contaminate.
//
// Search Flow:
//  1. Pop the front node and compute its canonical key
//  2. Skip the node if the key was already visited in this call
//  3. Small states (<= threshold numbers) get a feasibility judgment,
//     cache first, oracle on a miss (every fetched judgment is cached)
//  4. Feasible: flush the cache and return the path
//     Infeasible: prune
//     Ambiguous: fall through to expansion
//  5. Expand: ask the oracle for moves, parse them, enqueue children
//  6. Frontier empty: flush the cache and report no solution
//
// Oracle failures abort the search without flushing the cache.
//
// The engine returns the first success in FIFO order; it does not search
// for the shortest operation sequence.
package engine
