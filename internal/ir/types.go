package ir

// Multiset is a puzzle state: the numbers still in play.
// Order carries no meaning; compare multisets through CanonicalKey.
type Multiset []int

// Clone returns an independent copy of the multiset.
func (m Multiset) Clone() Multiset {
	if m == nil {
		return nil
	}
	out := make(Multiset, len(m))
	copy(out, m)
	return out
}

// Node is a frontier entry: a state plus the path that reached it.
type Node struct {
	Numbers Multiset `json:"numbers"`
	Steps   []string `json:"steps"`
}

// Child returns the node reached by applying a proposal to n.
// The parent's Steps slice is never shared with the child.
func (n Node) Child(p Proposal) Node {
	steps := make([]string, len(n.Steps), len(n.Steps)+1)
	copy(steps, n.Steps)
	return Node{
		Numbers: p.Remaining.Clone(),
		Steps:   append(steps, p.Operation),
	}
}

// Proposal is one oracle-suggested reduction step.
type Proposal struct {
	Operation string   `json:"operation"`
	Result    int      `json:"result"`
	Remaining Multiset `json:"remaining"`
}

// Verdict is the three-way classification of a feasibility judgment.
type Verdict int

const (
	// VerdictAmbiguous means the judgment carried neither marker.
	VerdictAmbiguous Verdict = iota
	// VerdictFeasible means the state can definitely reach the target.
	VerdictFeasible
	// VerdictInfeasible means the state definitely cannot reach the target.
	VerdictInfeasible
)

// String returns the lowercase verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictFeasible:
		return "feasible"
	case VerdictInfeasible:
		return "infeasible"
	default:
		return "ambiguous"
	}
}

// MessageNoSolution is the message carried by an exhausted search.
const MessageNoSolution = "No solution found"

// Result is the outcome of one solve call.
//
// On success Steps, Reason and Final are set. On exhaustion only Message
// is set. RunID correlates the result with log lines and run history.
type Result struct {
	RunID   string   `json:"run_id,omitempty"`
	Success bool     `json:"success"`
	Steps   []string `json:"steps,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Final   Multiset `json:"final,omitempty"`
	Message string   `json:"message,omitempty"`
}
