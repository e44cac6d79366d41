package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/twentyfour/internal/ir"
)

// ErrNoNumbers is returned by Solve when called with an empty multiset.
var ErrNoNumbers = errors.New("solve requires at least one number")

// Oracle operations named in OracleError.Op.
const (
	OpPropose  = "propose"
	OpEvaluate = "evaluate"
)

// OracleError reports an oracle failure that aborted a search.
//
// The engine never retries and never records a partial result; the caller
// must treat an OracleError as a fatal interruption, not a negative verdict.
type OracleError struct {
	// Op is OpPropose or OpEvaluate.
	Op string

	// Key is the canonical key of the state being processed.
	Key ir.Key

	// RunID identifies the aborted search.
	RunID string

	// Err is the adapter's error.
	Err error
}

// Error implements the error interface.
func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s failed for [%s] (run=%s): %v", e.Op, e.Key, e.RunID, e.Err)
}

// Unwrap returns the adapter's error.
func (e *OracleError) Unwrap() error {
	return e.Err
}

// IsOracleError returns true if err is or wraps an OracleError.
func IsOracleError(err error) bool {
	var oe *OracleError
	return errors.As(err, &oe)
}
