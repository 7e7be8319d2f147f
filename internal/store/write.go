package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// WriteRecord inserts a query record and its matches in one transaction.
// A zero rec.Seq is stamped from the store's logical clock. The stored
// record (with its final seq) is returned.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same run id
// twice keeps the first record.
func (s *Store) WriteRecord(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		return rec, fmt.Errorf("write record: empty id")
	}
	if rec.Seq == 0 {
		rec.Seq = s.clock.Next()
	}

	tokens, err := marshalTokens(rec.Tokens)
	if err != nil {
		return rec, fmt.Errorf("write record: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return rec, fmt.Errorf("write record: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO queries
		(id, seq, query_key, number, count, tokens, mode, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Seq,
		rec.Key,
		rec.Number,
		rec.Count,
		tokens,
		string(rec.Mode),
		rec.ErrorCode,
	)
	if err != nil {
		return rec, fmt.Errorf("write record: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return rec, fmt.Errorf("write record: %w", err)
	}
	if inserted == 0 {
		return rec, tx.Commit()
	}

	for i, n := range rec.Matches {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO matches (query_id, ordinal, number)
			VALUES (?, ?, ?)
		`, rec.ID, i, n); err != nil {
			return rec, fmt.Errorf("write match %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return rec, fmt.Errorf("write record: commit: %w", err)
	}
	return rec, nil
}

// marshalTokens stores nil tokens as NULL so report queries survive a round trip.
func marshalTokens(tokens []string) (sql.NullString, error) {
	if tokens == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal tokens: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalTokens(ns sql.NullString) ([]string, error) {
	if !ns.Valid {
		return nil, nil
	}
	tokens := []string{}
	if err := json.Unmarshal([]byte(ns.String), &tokens); err != nil {
		return nil, fmt.Errorf("unmarshal tokens: %w", err)
	}
	return tokens, nil
}
