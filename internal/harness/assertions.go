package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/twentyfour/internal/engine"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string              // Assertion type for categorization
	Expected string              // Human-readable expected outcome
	Actual   string              // Human-readable actual outcome
	Trace    []engine.TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s\n", event.Seq, event.Kind, event.Key)
		}
	}

	return buf.String()
}

// matchEvent reports whether ev satisfies the kind, key and verdict filters
// of an assertion. Empty filters match anything.
func matchEvent(ev engine.TraceEvent, kind, key, verdict string) bool {
	if string(ev.Kind) != kind {
		return false
	}
	if key != "" && string(ev.Key) != key {
		return false
	}
	if verdict != "" && ev.Verdict.String() != verdict {
		return false
	}
	return true
}

// describe renders the filters of an assertion for error messages.
func describe(kind, key, verdict string) string {
	out := kind
	if key != "" {
		out += " [" + key + "]"
	}
	if verdict != "" {
		out += " (" + verdict + ")"
	}
	return out
}

// assertTraceContains checks that some event matches kind, key and verdict.
func assertTraceContains(trace []engine.TraceEvent, a Assertion) error {
	for _, ev := range trace {
		if matchEvent(ev, a.Kind, a.Key, a.Verdict) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: describe(a.Kind, a.Key, a.Verdict),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the kinds appear in order.
// Kinds don't need to be consecutive (intervening events are allowed).
func assertTraceOrder(trace []engine.TraceEvent, a Assertion) error {
	next := 0
	for _, ev := range trace {
		if next < len(a.Kinds) && string(ev.Kind) == a.Kinds[next] {
			next++
		}
	}
	if next == len(a.Kinds) {
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: strings.Join(a.Kinds, " -> "),
		Actual:   fmt.Sprintf("matched %d of %d, missing %s", next, len(a.Kinds), a.Kinds[next]),
		Trace:    trace,
	}
}

// assertTraceCount checks that exactly Count events match kind and key.
func assertTraceCount(trace []engine.TraceEvent, a Assertion) error {
	n := 0
	for _, ev := range trace {
		if matchEvent(ev, a.Kind, a.Key, a.Verdict) {
			n++
		}
	}
	if n == a.Count {
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%s x%d", describe(a.Kind, a.Key, a.Verdict), a.Count),
		Actual:   fmt.Sprintf("x%d", n),
		Trace:    trace,
	}
}

// assertCacheEntry checks the persisted cache for key.
func assertCacheEntry(persisted map[string]string, a Assertion) error {
	judgment, ok := persisted[a.Key]
	if !ok {
		return &AssertionError{
			Type:     AssertCacheEntry,
			Expected: fmt.Sprintf("persisted judgment for [%s]", a.Key),
			Actual:   "not persisted",
		}
	}
	if !strings.Contains(judgment, a.Judgment) {
		return &AssertionError{
			Type:     AssertCacheEntry,
			Expected: fmt.Sprintf("judgment for [%s] containing %q", a.Key, a.Judgment),
			Actual:   fmt.Sprintf("%q", judgment),
		}
	}
	return nil
}

// EvaluateAssertions runs every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertCacheEntry:
			err = assertCacheEntry(result.Persisted, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
