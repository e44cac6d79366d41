package harness

import (
	"github.com/roach88/twentyfour/internal/engine"
	"github.com/roach88/twentyfour/internal/ir"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// RunID is the fixed run ID the solver used.
	RunID string `json:"run_id"`

	// Solve is the solver's result; nil when Solve returned an error.
	Solve *ir.Result `json:"solve,omitempty"`

	// SolveError is the solver's error text, if any.
	SolveError string `json:"solve_error,omitempty"`

	// Trace contains every search step in order.
	Trace []engine.TraceEvent `json:"trace"`

	// Persisted is the cache content the backend holds after the run.
	Persisted map[string]string `json:"persisted,omitempty"`

	// ProposeCalls and EvaluateCalls count oracle calls.
	ProposeCalls  int `json:"propose_calls"`
	EvaluateCalls int `json:"evaluate_calls"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []engine.TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
