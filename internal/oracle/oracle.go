package oracle

import (
	"context"
	"strings"

	"github.com/roach88/twentyfour/internal/ir"
)

// Oracle supplies move proposals and feasibility judgments as raw text.
// Errors are transport or model failures; implementations own any retry
// policy.
type Oracle interface {
	ProposeMoves(ctx context.Context, numbers ir.Multiset) (string, error)
	EvaluateFeasibility(ctx context.Context, numbers ir.Multiset) (string, error)
}

// Judgment markers, matched case-insensitively.
const (
	MarkerFeasible   = "BINGO"
	MarkerInfeasible = "IMPOSSIBLE"
)

// Classify reads a feasibility judgment. The feasible marker wins when
// both markers appear.
func Classify(judgment string) ir.Verdict {
	upper := strings.ToUpper(judgment)
	switch {
	case strings.Contains(upper, MarkerFeasible):
		return ir.VerdictFeasible
	case strings.Contains(upper, MarkerInfeasible):
		return ir.VerdictInfeasible
	default:
		return ir.VerdictAmbiguous
	}
}

// Func adapts two plain functions to the Oracle interface.
// A nil function returns empty text.
type Func struct {
	Propose  func(ctx context.Context, numbers ir.Multiset) (string, error)
	Evaluate func(ctx context.Context, numbers ir.Multiset) (string, error)
}

// ProposeMoves implements Oracle.
func (f Func) ProposeMoves(ctx context.Context, numbers ir.Multiset) (string, error) {
	if f.Propose == nil {
		return "", nil
	}
	return f.Propose(ctx, numbers)
}

// EvaluateFeasibility implements Oracle.
func (f Func) EvaluateFeasibility(ctx context.Context, numbers ir.Multiset) (string, error) {
	if f.Evaluate == nil {
		return "", nil
	}
	return f.Evaluate(ctx, numbers)
}
