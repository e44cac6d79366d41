package store

import (
	"context"
	"fmt"
)

// ReplaceJudgments overwrites the judgments table with entries.
// Runs in one transaction: readers see either the old or the new cache.
func (s *Store) ReplaceJudgments(ctx context.Context, entries map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace judgments: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM judgments`); err != nil {
		return fmt.Errorf("replace judgments: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO judgments (key, judgment) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("replace judgments: prepare: %w", err)
	}
	defer stmt.Close()

	for key, judgment := range entries {
		if _, err := stmt.ExecContext(ctx, key, judgment); err != nil {
			return fmt.Errorf("replace judgments: insert %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace judgments: commit: %w", err)
	}
	return nil
}

// ReadJudgments returns every stored judgment keyed by canonical key.
// Returns an empty map (not nil) when the table is empty.
func (s *Store) ReadJudgments(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, judgment
		FROM judgments
		ORDER BY key COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query judgments: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var key, judgment string
		if err := rows.Scan(&key, &judgment); err != nil {
			return nil, fmt.Errorf("scan judgment: %w", err)
		}
		entries[key] = judgment
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate judgments: %w", err)
	}

	return entries, nil
}
