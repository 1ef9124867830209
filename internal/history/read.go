package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/tally/internal/codec"
	"github.com/roach88/tally/internal/token"
)

// Entry is one committed calculation.
type Entry struct {
	ID     int64
	Tokens []token.Token
	Answer float64
}

// List returns all entries, oldest first. An entry whose serialized
// formula no longer decodes is dropped from the result (and logged),
// never allowed to corrupt the rest of the load.
//
// Returns an empty slice (not nil) when the history is empty.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, formula, answer
		FROM entries
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			id      int64
			formula string
			answer  float64
		)
		if err := rows.Scan(&id, &formula, &answer); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		toks, err := codec.Decode([]byte(formula))
		if err != nil {
			slog.Warn("dropping undecodable history entry", "id", id, "err", err)
			continue
		}
		entries = append(entries, Entry{ID: id, Tokens: toks, Answer: answer})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// IDs returns the index list: every live entry ID in ascending order.
func (s *Store) IDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM entries ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}

	return ids, nil
}

// Get returns one entry by ID. The second result is false when the ID
// is unknown or its record no longer decodes.
func (s *Store) Get(ctx context.Context, id int64) (Entry, bool, error) {
	var (
		formula string
		answer  float64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT formula, answer FROM entries WHERE id = ?
	`, id).Scan(&formula, &answer)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get entry %d: %w", id, err)
	}

	toks, err := codec.Decode([]byte(formula))
	if err != nil {
		slog.Warn("dropping undecodable history entry", "id", id, "err", err)
		return Entry{}, false, nil
	}

	return Entry{ID: id, Tokens: toks, Answer: answer}, true, nil
}

// LastAnswer returns the answer of the most recent entry, or 0 when
// the history is empty.
func (s *Store) LastAnswer(ctx context.Context) (float64, error) {
	var answer float64
	err := s.db.QueryRowContext(ctx, `
		SELECT answer FROM entries ORDER BY id DESC LIMIT 1
	`).Scan(&answer)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("last answer: %w", err)
	}
	return answer, nil
}

// Count returns the number of live entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}
