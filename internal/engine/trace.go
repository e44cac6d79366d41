package engine

import (
	"sync"

	"github.com/roach88/twentyfour/internal/ir"
)

// TraceKind names a step of the search loop.
type TraceKind string

const (
	TraceVisit     TraceKind = "visit"     // node popped with an unvisited key
	TraceSkip      TraceKind = "skip"      // node popped with an already-visited key
	TraceCacheHit  TraceKind = "cache_hit" // judgment served from the cache
	TraceEvaluate  TraceKind = "evaluate"  // judgment fetched from the oracle
	TracePrune     TraceKind = "prune"     // infeasible small state discarded
	TracePropose   TraceKind = "propose"   // node expanded
	TraceSuccess   TraceKind = "success"   // feasible state found
	TraceExhausted TraceKind = "exhausted" // frontier drained
)

// TraceEvent is one observable step of a Solve call.
type TraceEvent struct {
	Seq  int64
	Kind TraceKind
	Key  ir.Key

	// Depth is the number of operations on the path to this node.
	Depth int

	// Verdict is set on cache_hit and evaluate events.
	Verdict ir.Verdict

	// Children and Dropped are set on propose events: proposals enqueued,
	// and proposals discarded for a wrong remaining count.
	Children int
	Dropped  int
}

// Tracer observes search steps. Trace is called synchronously from the
// search loop and must not block.
type Tracer interface {
	Trace(ev TraceEvent)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(ev TraceEvent)

// Trace implements Tracer.
func (f TracerFunc) Trace(ev TraceEvent) {
	f(ev)
}

// TraceRecorder collects events in memory.
//
// Thread-safety: safe for concurrent use via internal mutex.
type TraceRecorder struct {
	mu     sync.Mutex
	events []TraceEvent
}

// Trace implements Tracer.
func (r *TraceRecorder) Trace(ev TraceEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *TraceRecorder) Events() []TraceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TraceEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Reset discards recorded events.
func (r *TraceRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type noopTracer struct{}

func (noopTracer) Trace(TraceEvent) {}
