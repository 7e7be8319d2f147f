package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/amazing/internal/query"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

const selectQueries = `
	SELECT id, seq, query_key, number, count, tokens, mode, error_code
	FROM queries
`

// ListRecords returns the most recent records, newest first.
// A limit <= 0 returns every record.
//
// Returns an empty slice (not nil) if nothing has been recorded.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]Record, error) {
	q := selectQueries + ` ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.readRecords(ctx, q, args...)
}

// RecordsByKey returns every run of the request identified by key, oldest first.
func (s *Store) RecordsByKey(ctx context.Context, key string) ([]Record, error) {
	return s.readRecords(ctx, selectQueries+` WHERE query_key = ? ORDER BY seq ASC`, key)
}

// ReadRecord returns a single record by id.
func (s *Store) ReadRecord(ctx context.Context, id string) (Record, error) {
	recs, err := s.readRecords(ctx, selectQueries+` WHERE id = ?`, id)
	if err != nil {
		return Record{}, err
	}
	if len(recs) == 0 {
		return Record{}, fmt.Errorf("read record %s: %w", id, ErrNotFound)
	}
	return recs[0], nil
}

func (s *Store) readRecords(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	// Close before issuing the match queries: the pool holds one connection.
	rows.Close()

	for i := range records {
		matches, err := s.readMatches(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Matches = matches
	}
	return records, nil
}

func (s *Store) readMatches(ctx context.Context, id string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number FROM matches
		WHERE query_id = ?
		ORDER BY ordinal ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []int64
	for rows.Next() {
		var n int64
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec    Record
		tokens sql.NullString
		mode   string
	)
	if err := rows.Scan(&rec.ID, &rec.Seq, &rec.Key, &rec.Number, &rec.Count, &tokens, &mode, &rec.ErrorCode); err != nil {
		return Record{}, fmt.Errorf("scan record: %w", err)
	}
	var err error
	if rec.Tokens, err = unmarshalTokens(tokens); err != nil {
		return Record{}, err
	}
	rec.Mode = query.Mode(mode)
	return rec, nil
}
