package engine

import "github.com/roach88/twentyfour/internal/ir"

// frontier is the FIFO queue of not-yet-expanded nodes.
//
// A frontier is owned by exactly one Solve call, so it carries no locking.
// The queue is unbounded; termination comes from each expansion shrinking
// the multiset by one.
type frontier struct {
	nodes []ir.Node
}

// newFrontier creates an empty frontier.
func newFrontier() *frontier {
	return &frontier{
		nodes: make([]ir.Node, 0, 64),
	}
}

// Push adds a node to the back of the queue.
func (f *frontier) Push(n ir.Node) {
	f.nodes = append(f.nodes, n)
}

// Pop removes and returns the front node.
// Returns (ir.Node{}, false) if the frontier is empty.
func (f *frontier) Pop() (ir.Node, bool) {
	if len(f.nodes) == 0 {
		return ir.Node{}, false
	}

	n := f.nodes[0]

	// Clear the slot so the backing array does not pin expanded nodes
	f.nodes[0] = ir.Node{}

	if len(f.nodes) == 1 {
		f.nodes = f.nodes[:0]
	} else {
		f.nodes = f.nodes[1:]
	}

	return n, true
}

// Len returns the current queue length.
func (f *frontier) Len() int {
	return len(f.nodes)
}
