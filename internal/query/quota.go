package query

// probeQuota counts the numbers one scan has tested and enforces the
// engine's probe budget.
//
// Validation rejects the known impossible combinations, but a valid request
// can still be satisfied only rarely (SPY together with SQUARE, say), so
// the budget is what bounds the work of a single scan. Each scan gets its
// own quota.
type probeQuota struct {
	limit   int64 // zero means unbounded
	current int64
}

func newProbeQuota(limit int64) *probeQuota {
	return &probeQuota{limit: max(limit, 0)}
}

// check records one probe and fails once the budget is exceeded.
func (q *probeQuota) check(start int64) error {
	q.current++
	if q.limit > 0 && q.current > q.limit {
		return &ProbeLimitError{Start: start, Probes: q.current - 1, Limit: q.limit}
	}
	return nil
}
