package engine

import (
	"context"
	"log/slog"

	"github.com/roach88/twentyfour/internal/cache"
	"github.com/roach88/twentyfour/internal/ir"
	"github.com/roach88/twentyfour/internal/oracle"
)

// DefaultFeasibilityThreshold is the largest state size that gets a
// feasibility judgment before expansion.
const DefaultFeasibilityThreshold = 3

// Recorder persists finished searches (run history).
// Implemented by *store.Store.
type Recorder interface {
	WriteRun(ctx context.Context, numbers ir.Multiset, res ir.Result) error
}

// Solver runs breadth-first searches against one oracle and one cache.
//
// Thread-safety model:
//   - Solve(): safe to call from several goroutines; per-call state (frontier,
//     visited set, clock) is local and the cache collapses duplicate fetches;
//     cancelling one call never fails a fetch another call is waiting on
//   - Each Solve call is itself sequential: one oracle call at a time
//
// INVARIANTS:
//   - No canonical key is expanded twice within one Solve call
//   - Every fetched judgment is written to the cache before it is classified
//   - The cache is flushed exactly at the two normal exits of Solve
type Solver struct {
	oracle    oracle.Oracle
	cache     *cache.Cache
	threshold int
	tracer    Tracer
	recorder  Recorder
	runIDs    RunIDGenerator
}

// Option allows configuration of solver parameters.
type Option func(*Solver)

// WithFeasibilityThreshold sets the largest state size that is judged
// before expansion. Default: 3 (DefaultFeasibilityThreshold).
func WithFeasibilityThreshold(n int) Option {
	return func(s *Solver) {
		s.threshold = n
	}
}

// WithTracer installs a tracer for search steps.
func WithTracer(t Tracer) Option {
	return func(s *Solver) {
		s.tracer = t
	}
}

// WithRecorder records every finished (not aborted) search.
func WithRecorder(r Recorder) Option {
	return func(s *Solver) {
		s.recorder = r
	}
}

// WithRunIDGenerator overrides the run ID source (default UUIDv7).
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(s *Solver) {
		s.runIDs = g
	}
}

// New creates a Solver. The cache should already be loaded.
func New(o oracle.Oracle, c *cache.Cache, opts ...Option) *Solver {
	s := &Solver{
		oracle:    o,
		cache:     c,
		threshold: DefaultFeasibilityThreshold,
		tracer:    noopTracer{},
		runIDs:    UUIDv7Generator{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// run holds the state owned by one Solve call.
type run struct {
	id      string
	clock   *Clock
	log     *slog.Logger
	visited map[ir.Key]struct{}
}

func (r *run) trace(t Tracer, ev TraceEvent) {
	ev.Seq = r.clock.Next()
	t.Trace(ev)
}

// Solve searches for a path from numbers to a state the oracle judges
// feasible.
//
// Returns a successful Result with the path, the judgment text and the
// final state; or an unsuccessful Result with ir.MessageNoSolution once the
// frontier drains. An oracle failure returns an *OracleError and no Result;
// the cache is not flushed in that case.
func (s *Solver) Solve(ctx context.Context, numbers []int) (*ir.Result, error) {
	if len(numbers) == 0 {
		return nil, ErrNoNumbers
	}

	initial := ir.Multiset(numbers).Clone()
	r := &run{
		id:      s.runIDs.Generate(),
		clock:   NewClock(),
		visited: make(map[ir.Key]struct{}),
	}
	r.log = slog.With("run", r.id)
	r.log.Info("solve starting", "numbers", initial.Spaced())

	q := newFrontier()
	q.Push(ir.Node{Numbers: initial, Steps: []string{}})

	for {
		node, ok := q.Pop()
		if !ok {
			break
		}

		key := ir.CanonicalKey(node.Numbers)
		depth := len(node.Steps)

		if _, seen := r.visited[key]; seen {
			r.log.Debug("skipping visited state", "key", key)
			r.trace(s.tracer, TraceEvent{Kind: TraceSkip, Key: key, Depth: depth})
			continue
		}
		r.visited[key] = struct{}{}
		r.trace(s.tracer, TraceEvent{Kind: TraceVisit, Key: key, Depth: depth})
		r.log.Debug("visiting state", "key", key, "steps", node.Steps)

		if len(node.Numbers) <= s.threshold {
			judgment, verdict, err := s.judge(ctx, r, node, key)
			if err != nil {
				solveTotal.WithLabelValues("error").Inc()
				return nil, err
			}

			switch verdict {
			case ir.VerdictFeasible:
				r.trace(s.tracer, TraceEvent{Kind: TraceSuccess, Key: key, Depth: depth})
				res := &ir.Result{
					RunID:   r.id,
					Success: true,
					Steps:   append([]string{}, node.Steps...),
					Reason:  judgment,
					Final:   node.Numbers.Clone(),
				}
				s.finish(ctx, r, initial, res)
				return res, nil

			case ir.VerdictInfeasible:
				r.log.Debug("pruning infeasible state", "key", key)
				r.trace(s.tracer, TraceEvent{Kind: TracePrune, Key: key, Depth: depth})
				continue
			}
			// Ambiguous judgments fall through to expansion.
		}

		children, dropped, err := s.expand(ctx, r, node, key)
		if err != nil {
			solveTotal.WithLabelValues("error").Inc()
			return nil, err
		}
		r.trace(s.tracer, TraceEvent{
			Kind:     TracePropose,
			Key:      key,
			Depth:    depth,
			Children: len(children),
			Dropped:  dropped,
		})
		for _, child := range children {
			q.Push(child)
		}
	}

	r.trace(s.tracer, TraceEvent{Kind: TraceExhausted})
	res := &ir.Result{
		RunID:   r.id,
		Success: false,
		Message: ir.MessageNoSolution,
	}
	s.finish(ctx, r, initial, res)
	return res, nil
}

// judge returns the feasibility judgment for a small state, cache first.
func (s *Solver) judge(ctx context.Context, r *run, node ir.Node, key ir.Key) (string, ir.Verdict, error) {
	judgment, hit, err := s.cache.GetOrFetch(ctx, key, func(ctx context.Context) (string, error) {
		oracleCalls.WithLabelValues(OpEvaluate).Inc()
		return s.oracle.EvaluateFeasibility(ctx, node.Numbers.Clone())
	})
	if err != nil {
		r.log.Error("feasibility evaluation failed", "key", key, "error", err)
		return "", ir.VerdictAmbiguous, &OracleError{Op: OpEvaluate, Key: key, RunID: r.id, Err: err}
	}

	verdict := oracle.Classify(judgment)
	kind := TraceEvaluate
	if hit {
		kind = TraceCacheHit
	}
	r.trace(s.tracer, TraceEvent{Kind: kind, Key: key, Depth: len(node.Steps), Verdict: verdict})
	r.log.Debug("feasibility judged", "key", key, "verdict", verdict, "cached", hit)

	return judgment, verdict, nil
}

// expand asks the oracle for moves from node and builds the child nodes.
// Proposals whose remaining multiset is not exactly one smaller than the
// parent are dropped and counted. This is stricter than enqueuing every
// parsed line: a miscounted reply would otherwise put a state of the wrong
// size on the frontier, and its judgment would be cached under that key.
func (s *Solver) expand(ctx context.Context, r *run, node ir.Node, key ir.Key) ([]ir.Node, int, error) {
	oracleCalls.WithLabelValues(OpPropose).Inc()
	text, err := s.oracle.ProposeMoves(ctx, node.Numbers.Clone())
	if err != nil {
		r.log.Error("move proposal failed", "key", key, "error", err)
		return nil, 0, &OracleError{Op: OpPropose, Key: key, RunID: r.id, Err: err}
	}
	nodesExpanded.Inc()

	proposals := ParseProposals(text)
	children := make([]ir.Node, 0, len(proposals))
	dropped := 0
	for _, p := range proposals {
		if len(p.Remaining) != len(node.Numbers)-1 {
			r.log.Debug("dropping proposal with wrong remaining count",
				"key", key,
				"operation", p.Operation,
				"remaining", p.Remaining.Spaced(),
			)
			dropped++
			continue
		}
		children = append(children, node.Child(p))
	}

	r.log.Debug("state expanded", "key", key, "proposals", len(proposals), "children", len(children))
	return children, dropped, nil
}

// finish flushes the cache and records the run. Neither step can fail the
// search: both log and carry on.
func (s *Solver) finish(ctx context.Context, r *run, initial ir.Multiset, res *ir.Result) {
	s.cache.Save(ctx)

	if s.recorder != nil {
		if err := s.recorder.WriteRun(ctx, initial, *res); err != nil {
			r.log.Warn("failed to record run", "error", err)
		}
	}

	if res.Success {
		solveTotal.WithLabelValues("success").Inc()
		r.log.Info("solution found", "steps", res.Steps, "final", res.Final.Spaced())
	} else {
		solveTotal.WithLabelValues("exhausted").Inc()
		r.log.Info("search exhausted", "visited", len(r.visited))
	}
}
