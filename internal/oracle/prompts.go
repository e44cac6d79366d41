package oracle

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"

	"github.com/roach88/twentyfour/internal/ir"
)

var proposePrompt = prompts.NewPromptTemplate(`Use numbers and basic arithmetic operations (+ - * /) to combine two of the input numbers into one.
List every useful next step, one per line, in exactly this format:
<step number>. <expression> = <result> (left: <remaining numbers separated by spaces>)

Input: 2 8 8 14
Possible next steps:
1. 2 + 8 = 10 (left: 8 10 14)
2. 8 / 2 = 4 (left: 4 8 14)
3. 14 + 2 = 16 (left: 8 8 16)
4. 2 * 8 = 16 (left: 8 14 16)
5. 8 - 2 = 6 (left: 6 8 14)
6. 14 - 8 = 6 (left: 2 6 8)
7. 14 / 2 = 7 (left: 7 8 8)
8. 14 - 2 = 12 (left: 8 8 12)

Input: {{.input}}
Possible next steps:
`, []string{"input"})

var evaluatePrompt = prompts.NewPromptTemplate(`Evaluate if the given numbers can reach 24 using + - * / and each number exactly once.
Show brief working, then end with exactly one verdict word:
BINGO if you found an expression equal to 24,
LIKELY if it seems reachable but you have not found it,
IMPOSSIBLE if the numbers are clearly too small, too large, or cannot combine to 24.

Input: 10 14
10 + 14 = 24
BINGO

Input: 11 12
11 + 12 = 23
12 - 11 = 1
11 * 12 = 132
11 / 12 = 0.91
IMPOSSIBLE

Input: 4 4 10
4 + 4 + 10 = 18
4 * 10 - 4 = 36
(10 - 4) * 4 = 24
BINGO

Input: 1 3 3
1 * 3 * 3 = 9
(1 + 3) * 3 = 12
1 3 3 are all too small
IMPOSSIBLE

Input: {{.input}}
`, []string{"input"})

// ProposePrompt renders the move-proposal prompt for numbers.
func ProposePrompt(numbers ir.Multiset) (string, error) {
	out, err := proposePrompt.Format(map[string]any{"input": numbers.Spaced()})
	if err != nil {
		return "", fmt.Errorf("render propose prompt: %w", err)
	}
	return out, nil
}

// EvaluatePrompt renders the feasibility prompt for numbers.
func EvaluatePrompt(numbers ir.Multiset) (string, error) {
	out, err := evaluatePrompt.Format(map[string]any{"input": numbers.Spaced()})
	if err != nil {
		return "", fmt.Errorf("render evaluate prompt: %w", err)
	}
	return out, nil
}
