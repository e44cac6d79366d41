package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/twentyfour/internal/ir"
)

// RunRecord is one row of run history: the input and the result of a solve.
type RunRecord struct {
	Seq     int64
	Numbers ir.Multiset
	Result  ir.Result
}

// WriteRun appends a finished solve to run history.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same run ID
// twice keeps the first record. The seq column is assigned by the store.
func (s *Store) WriteRun(ctx context.Context, numbers ir.Multiset, res ir.Result) error {
	if res.RunID == "" {
		return fmt.Errorf("write run: run id is required")
	}

	numbersJSON, err := marshalNumbers(numbers)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	stepsJSON, err := marshalSteps(res.Steps)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	finalJSON, err := marshalNumbers(res.Final)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO solve_runs
		(id, seq, numbers, success, steps, reason, final, message)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM solve_runs), ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		res.RunID,
		numbersJSON,
		boolToInt(res.Success),
		stepsJSON,
		res.Reason,
		finalJSON,
		res.Message,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// ReadRuns returns the most recent runs, newest first.
// A limit <= 0 returns every run. Returns an empty slice (not nil) if none exist.
func (s *Store) ReadRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
		SELECT id, seq, numbers, success, steps, reason, final, message
		FROM solve_runs
		ORDER BY seq DESC, id COLLATE BINARY ASC
	`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunRecord{}
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a single run by ID.
// Returns sql.ErrNoRows (wrapped) if the run does not exist.
func (s *Store) ReadRun(ctx context.Context, id string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, numbers, success, steps, reason, final, message
		FROM solve_runs
		WHERE id = ?
	`, id)
	rec, err := scanRun(row)
	if err != nil {
		return RunRecord{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		rec                               RunRecord
		numbersJSON, stepsJSON, finalJSON string
		success                           int
	)
	err := row.Scan(
		&rec.Result.RunID,
		&rec.Seq,
		&numbersJSON,
		&success,
		&stepsJSON,
		&rec.Result.Reason,
		&finalJSON,
		&rec.Result.Message,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("scan run: %w", err)
	}

	if rec.Numbers, err = unmarshalNumbers(numbersJSON); err != nil {
		return RunRecord{}, err
	}
	if rec.Result.Steps, err = unmarshalSteps(stepsJSON); err != nil {
		return RunRecord{}, err
	}
	if rec.Result.Final, err = unmarshalNumbers(finalJSON); err != nil {
		return RunRecord{}, err
	}
	rec.Result.Success = success != 0
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
