// Package harness runs solver scenarios against a scripted oracle.
//
// A scenario pins the oracle's replies for every state the search can
// reach, so a run is fully deterministic: the same scenario always yields
// the same trace, the same oracle call counts and the same outcome.
//
// # Scenario Format
//
//	name: success_4468
//	description: "Solves 4 4 6 8 through the 4 * 6 branch"
//	numbers: [4, 4, 6, 8]
//	run_id: run-001          # optional, default test-run-default
//	threshold: 3             # optional feasibility threshold
//	cache:                   # optional pre-seeded judgments
//	  "6,8,8": IMPOSSIBLE
//	oracle:
//	  propose:
//	    "4,4,6,8": |
//	      1. 4 * 6 = 24 (left: 4 8 24)
//	  evaluate:
//	    "4,8,24": "BINGO"
//	  fail:
//	    evaluate: ["1,1,1"]
//	expect:
//	  success: true
//	  steps: ["4 * 6"]
//	  final: [4, 8, 24]
//	  reason_contains: BINGO
//	  evaluate_calls: 1
//	assertions:
//	  - type: trace_order
//	    kinds: [visit, propose, visit, evaluate, success]
//	  - type: cache_entry
//	    key: "4,8,24"
//	    judgment: BINGO
//
// Keys under cache and oracle must be canonical (ascending, comma-joined).
// Omitting cache models a first run with no cache store on disk.
//
// # Assertion Types
//
//   - trace_contains: an event of the given kind (and key, verdict) occurred
//   - trace_order: the given kinds occur in order, gaps allowed
//   - trace_count: an event of the given kind (and key) occurred N times
//   - cache_entry: the persisted cache holds key, judgment containing text
//
// # Golden Traces
//
// RenderTrace turns a run into canonical JSON lines (header, one line per
// trace event, outcome). RunWithGolden compares them against
// testdata/golden/<name>.golden using goldie.
package harness
