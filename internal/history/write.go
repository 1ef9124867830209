package history

import (
	"context"
	"fmt"

	"github.com/roach88/tally/internal/codec"
	"github.com/roach88/tally/internal/token"
)

// Push commits a completed calculation. The token sequence is
// serialized, so later edits to the live formula cannot alias the
// stored snapshot. Insertion and eviction happen in one transaction:
// once the row count exceeds the capacity, the oldest (lowest-ID)
// entries and their value records are removed.
//
// Returns the ID assigned to the new entry.
func (s *Store) Push(ctx context.Context, toks []token.Token, answer float64) (int64, error) {
	data, err := codec.Encode(toks)
	if err != nil {
		return 0, fmt.Errorf("push entry: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("push entry: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO entries (formula, answer)
		VALUES (?, ?)
	`, string(data), answer)
	if err != nil {
		return 0, fmt.Errorf("push entry: insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("push entry: last insert id: %w", err)
	}

	// Oldest-first eviction beyond the cap.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM entries
		WHERE id NOT IN (SELECT id FROM entries ORDER BY id DESC LIMIT ?)
	`, s.capacity)
	if err != nil {
		return 0, fmt.Errorf("push entry: evict: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("push entry: commit: %w", err)
	}

	return id, nil
}

// Delete removes one entry and its value record. Deleting an unknown
// ID is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
