package store

import (
	"github.com/roach88/amazing/internal/query"
)

// Record is one recorded run of a query.
type Record struct {
	ID        string     `json:"id"`
	Seq       int64      `json:"seq"`
	Key       string     `json:"query_key"`
	Number    int64      `json:"number"`
	Count     int        `json:"count"`
	Tokens    []string   `json:"tokens,omitempty"` // nil for report queries
	Mode      query.Mode `json:"mode"`
	Matches   []int64    `json:"matches,omitempty"`
	ErrorCode string     `json:"error_code,omitempty"`
}

// NewRecord builds a record for a finished run. runErr is the error
// returned by Engine.Run, if any; its code is stored and res is ignored.
func NewRecord(id string, q query.Query, res *query.Result, runErr error) Record {
	rec := Record{
		ID:     id,
		Key:    QueryKey(q),
		Number: q.Number,
		Count:  q.Count,
		Tokens: q.Tokens,
		Mode:   q.Mode(),
	}
	if runErr != nil {
		rec.ErrorCode = query.ErrorCode(runErr)
		if rec.ErrorCode == "" {
			rec.ErrorCode = "error"
		}
		return rec
	}
	if res != nil {
		for _, m := range res.Matches {
			rec.Matches = append(rec.Matches, m.Number)
		}
	}
	return rec
}

// Failed reports whether the run ended with an error.
func (r Record) Failed() bool {
	return r.ErrorCode != ""
}
