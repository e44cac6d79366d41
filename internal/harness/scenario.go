package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/twentyfour/internal/ir"
	"github.com/roach88/twentyfour/internal/oracle"
)

// Scenario is one deterministic solver run with expected results.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Numbers is the starting multiset.
	Numbers []int `yaml:"numbers"`

	// RunID is the fixed run ID. Defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// Threshold overrides the feasibility threshold when positive.
	Threshold int `yaml:"threshold,omitempty"`

	// Cache pre-seeds the judgment store. Nil means no store exists yet.
	Cache map[string]string `yaml:"cache,omitempty"`

	// Oracle scripts every reply the search will see.
	Oracle oracle.Script `yaml:"oracle"`

	// Expect checks the solve outcome.
	Expect *Expectation `yaml:"expect"`

	// Assertions check the trace and the persisted cache.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expectation lists outcome checks. Unset fields are not checked.
type Expectation struct {
	// Error, when set, requires Solve to fail with a message containing it.
	Error string `yaml:"error,omitempty"`

	Success        *bool    `yaml:"success,omitempty"`
	Steps          []string `yaml:"steps,omitempty"`
	Final          []int    `yaml:"final,omitempty"`
	ReasonContains string   `yaml:"reason_contains,omitempty"`
	Message        string   `yaml:"message,omitempty"`

	ProposeCalls  *int `yaml:"propose_calls,omitempty"`
	EvaluateCalls *int `yaml:"evaluate_calls,omitempty"`
}

// Assertion validates the trace or the persisted cache.
type Assertion struct {
	// Type is one of trace_contains, trace_order, trace_count, cache_entry.
	Type string `yaml:"type"`

	// Kind is the trace event kind (trace_contains, trace_count).
	Kind string `yaml:"kind,omitempty"`

	// Key narrows trace matches to one state; required for cache_entry.
	Key string `yaml:"key,omitempty"`

	// Verdict narrows trace_contains to a judged verdict.
	Verdict string `yaml:"verdict,omitempty"`

	// Kinds is the expected kind order (trace_order).
	Kinds []string `yaml:"kinds,omitempty"`

	// Count is the expected number of matches (trace_count).
	Count int `yaml:"count,omitempty"`

	// Judgment must be a substring of the persisted judgment (cache_entry).
	Judgment string `yaml:"judgment,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertCacheEntry    = "cache_entry"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Numbers) == 0 {
		return fmt.Errorf("numbers list is required and must be non-empty")
	}

	if s.Expect == nil {
		return fmt.Errorf("expect is required")
	}

	if s.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative")
	}

	if err := s.Oracle.Validate(); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}

	for key := range s.Cache {
		if err := checkCanonical(key); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertCacheEntry:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for cache_entry", index)
		}
		if err := checkCanonical(a.Key); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func checkCanonical(key string) error {
	ms, err := ir.ParseKey(ir.Key(key))
	if err != nil {
		return err
	}
	if want := ir.CanonicalKey(ms); want != ir.Key(key) {
		return fmt.Errorf("key %q is not canonical (want %q)", key, want)
	}
	return nil
}
