// Package oracle is the boundary to the generative model that proposes
// moves and judges feasibility.
//
// The search engine consumes the two-operation Oracle interface and never
// sees transport, model or prompt details. Replies are free text; the
// conventions for reading them live here:
//
//   - ProposeMoves replies carry lines of the form
//     "N. EXPR = RESULT (left: R1 R2 ...)"
//   - EvaluateFeasibility replies carry the marker "BINGO" (definitely
//     feasible), "IMPOSSIBLE" (definitely infeasible), or neither; Classify
//     turns them into an ir.Verdict
//
// Implementations: OpenAI (live chat-completions client), Script (fixture
// replay keyed by canonical key) and Func (ad-hoc adapters for tests).
package oracle
