package testutil

import (
	"context"
	"sync"

	"github.com/roach88/twentyfour/internal/ir"
	"github.com/roach88/twentyfour/internal/oracle"
)

// Call is one recorded oracle call.
type Call struct {
	Op  string // "propose" or "evaluate"
	Key ir.Key
}

// CountingOracle wraps an oracle and records every call in order.
//
// Thread-safety: safe for concurrent use via internal mutex.
type CountingOracle struct {
	inner oracle.Oracle

	mu    sync.Mutex
	calls []Call
}

// NewCountingOracle wraps inner.
func NewCountingOracle(inner oracle.Oracle) *CountingOracle {
	return &CountingOracle{inner: inner}
}

// ProposeMoves implements oracle.Oracle.
func (c *CountingOracle) ProposeMoves(ctx context.Context, numbers ir.Multiset) (string, error) {
	c.record("propose", numbers)
	return c.inner.ProposeMoves(ctx, numbers)
}

// EvaluateFeasibility implements oracle.Oracle.
func (c *CountingOracle) EvaluateFeasibility(ctx context.Context, numbers ir.Multiset) (string, error) {
	c.record("evaluate", numbers)
	return c.inner.EvaluateFeasibility(ctx, numbers)
}

func (c *CountingOracle) record(op string, numbers ir.Multiset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, Call{Op: op, Key: ir.CanonicalKey(numbers)})
}

// Calls returns a copy of the recorded calls in order.
func (c *CountingOracle) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// Count returns how many op calls were made for key.
func (c *CountingOracle) Count(op string, key ir.Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Op == op && call.Key == key {
			n++
		}
	}
	return n
}

// Total returns how many op calls were made.
func (c *CountingOracle) Total(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

// PerKey returns the op call count for every key seen.
func (c *CountingOracle) PerKey(op string) map[ir.Key]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[ir.Key]int)
	for _, call := range c.calls {
		if call.Op == op {
			out[call.Key]++
		}
	}
	return out
}
