package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/twentyfour/internal/cache"
	"github.com/roach88/twentyfour/internal/engine"
	"github.com/roach88/twentyfour/internal/ir"
	"github.com/roach88/twentyfour/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory cache backend with a fixed
// run ID, so results are reproducible.
//
// Execution flow:
// 1. Seed the memory backend from scenario.Cache and load the cache
// 2. Solve scenario.Numbers against the scripted oracle, recording the trace
// 3. Check the expect clause
// 4. Evaluate assertions against the trace and the persisted cache
func Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	ctx := context.Background()

	backend := cache.NewMemoryBackend(scenario.Cache)
	c := cache.New(backend)
	c.Load(ctx)

	script := scenario.Oracle
	calls := testutil.NewCountingOracle(&script)
	runIDs := testutil.NewFixedRunIDGenerator(scenario.RunID)
	tracer := &engine.TraceRecorder{}

	opts := []engine.Option{
		engine.WithRunIDGenerator(runIDs),
		engine.WithTracer(tracer),
	}
	if scenario.Threshold > 0 {
		opts = append(opts, engine.WithFeasibilityThreshold(scenario.Threshold))
	}
	solver := engine.New(calls, c, opts...)

	result := NewResult()
	result.RunID = runIDs.Generate()

	res, err := solver.Solve(ctx, scenario.Numbers)
	if err != nil {
		result.SolveError = err.Error()
	}
	result.Solve = res
	result.Trace = tracer.Events()
	result.Persisted = backend.Entries()
	result.ProposeCalls = calls.Total(engine.OpPropose)
	result.EvaluateCalls = calls.Total(engine.OpEvaluate)

	for _, msg := range checkExpect(scenario.Expect, result) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// checkExpect compares the solve outcome against the expect clause.
func checkExpect(exp *Expectation, r *Result) []string {
	if exp == nil {
		return nil
	}
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf("expect: "+format, args...))
	}

	if exp.Error != "" {
		if r.SolveError == "" {
			fail("error containing %q, got none", exp.Error)
		} else if !strings.Contains(r.SolveError, exp.Error) {
			fail("error containing %q, got %q", exp.Error, r.SolveError)
		}
	} else if r.SolveError != "" {
		fail("no error, got %q", r.SolveError)
	}

	if exp.ProposeCalls != nil && *exp.ProposeCalls != r.ProposeCalls {
		fail("propose_calls %d, got %d", *exp.ProposeCalls, r.ProposeCalls)
	}
	if exp.EvaluateCalls != nil && *exp.EvaluateCalls != r.EvaluateCalls {
		fail("evaluate_calls %d, got %d", *exp.EvaluateCalls, r.EvaluateCalls)
	}

	res := r.Solve
	if res == nil {
		if exp.Success != nil || exp.Steps != nil || exp.Final != nil || exp.ReasonContains != "" || exp.Message != "" {
			fail("a solve result, got none")
		}
		return errs
	}

	if exp.Success != nil && *exp.Success != res.Success {
		fail("success %t, got %t", *exp.Success, res.Success)
	}
	if exp.Steps != nil && !slices.Equal(exp.Steps, res.Steps) {
		fail("steps %q, got %q", exp.Steps, res.Steps)
	}
	if exp.Final != nil && !slices.Equal(ir.Multiset(exp.Final), res.Final) {
		fail("final %v, got %v", exp.Final, res.Final)
	}
	if exp.ReasonContains != "" && !strings.Contains(res.Reason, exp.ReasonContains) {
		fail("reason containing %q, got %q", exp.ReasonContains, res.Reason)
	}
	if exp.Message != "" && exp.Message != res.Message {
		fail("message %q, got %q", exp.Message, res.Message)
	}

	return errs
}
