package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/twentyfour/internal/ir"
)

func TestParseProposals_DropsNonMatchingLines(t *testing.T) {
	got := ParseProposals("1. 2 + 8 = 10 (left: 8 10 14)\nnot a line\n")

	require.Len(t, got, 1)
	assert.Equal(t, ir.Proposal{
		Operation: "2 + 8",
		Result:    10,
		Remaining: ir.Multiset{8, 10, 14},
	}, got[0])
}

func TestParseProposals_MultipleLines(t *testing.T) {
	text := `Possible next steps:
1. 2 + 8 = 10 (left: 8 10 14)
2. 8 / 2 = 4 (left: 4 8 14)
3. (14 - 8) * 2 = 12 (left: 8 12)
`
	got := ParseProposals(text)

	require.Len(t, got, 3)
	assert.Equal(t, "8 / 2", got[1].Operation)
	assert.Equal(t, 4, got[1].Result)
	assert.Equal(t, "(14 - 8) * 2", got[2].Operation)
	assert.Equal(t, ir.Multiset{8, 12}, got[2].Remaining)
}

func TestParseProposals_Empty(t *testing.T) {
	assert.Empty(t, ParseProposals(""))
	assert.Empty(t, ParseProposals("I cannot help with that."))
}

func TestParseProposals_GrammarEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"no space after dot", "1.2 + 8 = 10 (left: 8 10 14)", 1},
		{"trailing text ignored", "1. 2 + 8 = 10 (left: 8 10 14) nice", 1},
		{"windows line ending", "1. 2 + 8 = 10 (left: 8 10 14)\r", 1},
		{"extra spaces", "12.   6 * 4   =   24   (left:   24 )", 1},
		{"leading whitespace", "  1. 2 + 8 = 10 (left: 8 10 14)", 0},
		{"missing index", "2 + 8 = 10 (left: 8 10 14)", 0},
		{"missing left", "1. 2 + 8 = 10", 0},
		{"negative result", "1. 2 - 8 = -6 (left: -6 10)", 0},
		{"fractional result", "1. 8 / 3 = 2.67 (left: 2.67 4)", 0},
		{"empty left", "1. 2 + 8 = 10 (left: )", 0},
		{"letters in expression", "1. two + 8 = 10 (left: 10)", 0},
		{"overflowing integer", "1. 2 + 8 = 99999999999999999999999 (left: 1)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ParseProposals(tt.line), tt.want)
		})
	}
}

func TestParseProposals_TrimsOperation(t *testing.T) {
	got := ParseProposals("3.    4 * 6    = 24 (left: 24 4 8)")
	require.Len(t, got, 1)
	assert.Equal(t, "4 * 6", got[0].Operation)
	assert.Equal(t, ir.Multiset{24, 4, 8}, got[0].Remaining)
}
