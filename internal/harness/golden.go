package harness

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/twentyfour/internal/engine"
	"github.com/roach88/twentyfour/internal/ir"
)

// RenderTrace renders a scenario run as canonical JSON lines: a header, one
// line per trace event, and the outcome. Output is byte-stable.
func RenderTrace(scenario *Scenario, result *Result) ([]byte, error) {
	var buf bytes.Buffer

	header := map[string]any{
		"scenario": scenario.Name,
		"numbers":  ir.Multiset(scenario.Numbers),
		"run_id":   result.RunID,
	}
	if err := writeLine(&buf, header); err != nil {
		return nil, err
	}

	for _, ev := range result.Trace {
		if err := writeLine(&buf, eventMap(ev)); err != nil {
			return nil, err
		}
	}

	if err := writeLine(&buf, outcomeMap(result)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeLine(buf *bytes.Buffer, v map[string]any) error {
	line, err := ir.MarshalCanonical(v)
	if err != nil {
		return err
	}
	buf.Write(line)
	buf.WriteByte('\n')
	return nil
}

// eventMap converts a trace event for canonical JSON. Fields only carried by
// some kinds are omitted elsewhere.
func eventMap(ev engine.TraceEvent) map[string]any {
	m := map[string]any{
		"seq":   ev.Seq,
		"kind":  string(ev.Kind),
		"depth": ev.Depth,
	}
	if ev.Key != "" {
		m["key"] = ev.Key
	}
	switch ev.Kind {
	case engine.TraceEvaluate, engine.TraceCacheHit:
		m["verdict"] = ev.Verdict.String()
	case engine.TracePropose:
		m["children"] = ev.Children
		m["dropped"] = ev.Dropped
	}
	return m
}

func outcomeMap(r *Result) map[string]any {
	if r.Solve == nil {
		return map[string]any{"error": r.SolveError}
	}
	res := r.Solve
	if !res.Success {
		return map[string]any{
			"success": false,
			"message": res.Message,
		}
	}
	return map[string]any{
		"success": true,
		"steps":   res.Steps,
		"reason":  res.Reason,
		"final":   res.Final,
	}
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := RenderTrace(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
