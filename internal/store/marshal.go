package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/twentyfour/internal/ir"
)

// marshalNumbers converts a multiset to canonical JSON TEXT for storage.
func marshalNumbers(numbers ir.Multiset) (string, error) {
	if numbers == nil {
		numbers = ir.Multiset{}
	}
	data, err := ir.MarshalCanonical(numbers)
	if err != nil {
		return "", fmt.Errorf("marshal numbers: %w", err)
	}
	return string(data), nil
}

// marshalSteps converts a step list to canonical JSON TEXT for storage.
func marshalSteps(steps []string) (string, error) {
	if steps == nil {
		steps = []string{}
	}
	data, err := ir.MarshalCanonical(steps)
	if err != nil {
		return "", fmt.Errorf("marshal steps: %w", err)
	}
	return string(data), nil
}

// unmarshalNumbers parses a stored multiset.
func unmarshalNumbers(data string) (ir.Multiset, error) {
	var out ir.Multiset
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal numbers: %w", err)
	}
	return out, nil
}

// unmarshalSteps parses a stored step list.
func unmarshalSteps(data string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal steps: %w", err)
	}
	return out, nil
}
