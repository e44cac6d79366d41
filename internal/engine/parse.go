package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/twentyfour/internal/ir"
)

// proposalLine matches "<index>. <expr> = <integer> (left: <integers>)".
// Text after the closing parenthesis is ignored.
var proposalLine = regexp.MustCompile(`^\d+\.\s*([\d\s+\-*/()]+?)\s*=\s*(\d+)\s*\(left:\s*([\d\s]+)\)`)

// ParseProposals extracts proposals from a ProposeMoves reply.
//
// Lines that do not match the grammar are dropped silently; a reply with no
// matching lines yields no proposals, which is a dead end, not an error.
func ParseProposals(text string) []ir.Proposal {
	var proposals []ir.Proposal

	for _, line := range strings.Split(text, "\n") {
		m := proposalLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		result, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		fields := strings.Fields(m[3])
		if len(fields) == 0 {
			continue
		}
		remaining := make(ir.Multiset, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				break
			}
			remaining = append(remaining, n)
		}
		if len(remaining) != len(fields) {
			continue
		}

		proposals = append(proposals, ir.Proposal{
			Operation: strings.TrimSpace(m[1]),
			Result:    result,
			Remaining: remaining,
		})
	}

	return proposals
}
