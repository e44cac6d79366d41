package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// KeyDelimiter separates the sorted numbers of a canonical key.
const KeyDelimiter = ","

// Key is the canonical string form of a Multiset.
// Any permutation of the same multiset yields the identical Key.
type Key string

// CanonicalKey sorts a copy of numbers ascending (numerically) and joins
// them with KeyDelimiter. The input slice is never modified.
//
//	CanonicalKey(Multiset{8, 4, 6}) == "4,6,8"
//	CanonicalKey(Multiset{10, 9})   == "9,10"
func CanonicalKey(numbers Multiset) Key {
	sorted := numbers.Clone()
	slices.Sort(sorted)

	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return Key(strings.Join(parts, KeyDelimiter))
}

// ParseKey converts a canonical key back into its sorted multiset.
// The empty key parses to an empty multiset.
func ParseKey(k Key) (Multiset, error) {
	if k == "" {
		return Multiset{}, nil
	}
	parts := strings.Split(string(k), KeyDelimiter)
	out := make(Multiset, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse key %q: element %d: %w", k, i, err)
		}
		out[i] = n
	}
	return out, nil
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return string(k)
}

// Spaced renders numbers the way prompts and logs show them: "4 4 6 8".
func (m Multiset) Spaced() string {
	parts := make([]string, len(m))
	for i, n := range m {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
