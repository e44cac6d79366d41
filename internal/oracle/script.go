package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/twentyfour/internal/ir"
)

// ErrScripted is returned for calls a Script is told to fail.
var ErrScripted = errors.New("scripted oracle failure")

// Script replays fixed replies keyed by canonical key.
//
// Example fixture:
//
//	propose:
//	  "4,4,6,8": |
//	    1. 4 * 6 = 24 (left: 4 8 24)
//	evaluate:
//	  "4,8,24": "24 is already here. BINGO"
//	fail:
//	  evaluate: ["1,1,1"]
//
// Keys without a reply get an empty proposal list (a dead end) and
// DefaultJudgment (ambiguous unless set).
type Script struct {
	Propose         map[string]string `yaml:"propose,omitempty"`
	Evaluate        map[string]string `yaml:"evaluate,omitempty"`
	Fail            ScriptFailures    `yaml:"fail,omitempty"`
	DefaultJudgment string            `yaml:"default_judgment,omitempty"`
}

// ScriptFailures lists canonical keys whose calls return ErrScripted.
type ScriptFailures struct {
	Propose  []string `yaml:"propose,omitempty"`
	Evaluate []string `yaml:"evaluate,omitempty"`
}

// LoadScript reads a YAML fixture. Unknown fields are rejected.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML fixture. Unknown fields are rejected.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}

// Validate checks that every key is in canonical form.
func (s *Script) Validate() error {
	check := func(section, key string) error {
		ms, err := ir.ParseKey(ir.Key(key))
		if err != nil {
			return fmt.Errorf("%s: %w", section, err)
		}
		if ir.CanonicalKey(ms) != ir.Key(key) {
			return fmt.Errorf("%s: key %q is not canonical (want %q)", section, key, ir.CanonicalKey(ms))
		}
		return nil
	}
	for k := range s.Propose {
		if err := check("propose", k); err != nil {
			return err
		}
	}
	for k := range s.Evaluate {
		if err := check("evaluate", k); err != nil {
			return err
		}
	}
	for _, k := range s.Fail.Propose {
		if err := check("fail.propose", k); err != nil {
			return err
		}
	}
	for _, k := range s.Fail.Evaluate {
		if err := check("fail.evaluate", k); err != nil {
			return err
		}
	}
	return nil
}

// ProposeMoves implements Oracle.
func (s *Script) ProposeMoves(ctx context.Context, numbers ir.Multiset) (string, error) {
	key := string(ir.CanonicalKey(numbers))
	if slices.Contains(s.Fail.Propose, key) {
		return "", fmt.Errorf("propose %s: %w", key, ErrScripted)
	}
	return s.Propose[key], nil
}

// EvaluateFeasibility implements Oracle.
func (s *Script) EvaluateFeasibility(ctx context.Context, numbers ir.Multiset) (string, error) {
	key := string(ir.CanonicalKey(numbers))
	if slices.Contains(s.Fail.Evaluate, key) {
		return "", fmt.Errorf("evaluate %s: %w", key, ErrScripted)
	}
	if judgment, ok := s.Evaluate[key]; ok {
		return judgment, nil
	}
	return s.DefaultJudgment, nil
}
