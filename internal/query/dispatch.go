package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Mode selects between a single-number report and a scan.
type Mode string

const (
	ModeReport Mode = "report"
	ModeScan   Mode = "scan"
)

// Query is a parsed request.
//
// Tokens == nil means no property list was given: the query is a
// single-number report and Count is ignored. A non-nil (possibly empty)
// Tokens makes the query a scan for Count matches starting at Number.
type Query struct {
	Number int64    `json:"number"`
	Count  int      `json:"count"`
	Tokens []string `json:"tokens,omitempty"`
}

// Mode reports how the query will be executed.
func (q Query) Mode() Mode {
	if q.Tokens == nil {
		return ModeReport
	}
	return ModeScan
}

// Result is the outcome of Engine.Run.
type Result struct {
	Mode    Mode    `json:"mode"`
	Number  int64   `json:"number"`
	Report  []Entry `json:"report,omitempty"`
	Matches []Match `json:"matches,omitempty"`
}

// Lines renders the result as console lines.
func (r *Result) Lines() []string {
	if r.Mode == ModeReport {
		lines := make([]string, 0, len(r.Report)+1)
		lines = append(lines, fmt.Sprintf("Properties of %d", r.Number))
		for _, entry := range r.Report {
			lines = append(lines, fmt.Sprintf("\t\t%s: %s", strings.ToLower(string(entry.Name)), strconv.FormatBool(entry.Value)))
		}
		return lines
	}

	lines := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		lines[i] = m.String()
	}
	return lines
}

// matchPrealloc bounds the up-front allocation for scan results; Count
// is caller-controlled and may be far larger than what a scan can find.
const matchPrealloc = 1024

// Run executes q: argument checks, then either a report or a validated scan.
// All validation happens before any probing, so an error never comes with
// partial matches.
func (e *Engine) Run(ctx context.Context, q Query) (*Result, error) {
	if q.Number < 0 {
		return nil, &InvalidArgumentError{Argument: ArgNumber, Value: q.Number}
	}
	if q.Count < 0 {
		return nil, &InvalidArgumentError{Argument: ArgCount, Value: int64(q.Count)}
	}

	if q.Mode() == ModeReport {
		return &Result{Mode: ModeReport, Number: q.Number, Report: e.Report(q.Number)}, nil
	}

	pred, err := e.Compile(ParseTokens(q.Tokens))
	if err != nil {
		return nil, err
	}

	result := &Result{Mode: ModeScan, Number: q.Number, Matches: make([]Match, 0, min(q.Count, matchPrealloc))}
	for n, err := range e.Scan(ctx, q.Number, q.Count, pred) {
		if err != nil {
			return nil, fmt.Errorf("scan from %d: %w", q.Number, err)
		}
		result.Matches = append(result.Matches, e.Describe(n))
	}
	return result, nil
}
