package query

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"strings"

	"github.com/roach88/amazing/internal/property"
)

// cancelCheckInterval is how many probes a scan makes between context checks.
const cancelCheckInterval = 1024

// Engine validates, compiles and executes property queries against a
// registry. An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	registry  *property.Registry
	logger    *slog.Logger
	maxProbes int64
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithLogger sets the logger used for debug tracing of compiled predicates
// and scans. Default: slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxProbes bounds how many numbers a single scan may test before
// failing with a *ProbeLimitError. Zero or negative means unbounded.
func WithMaxProbes(n int64) EngineOption {
	return func(e *Engine) {
		e.maxProbes = n
	}
}

// New creates an Engine over reg.
func New(reg *property.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: reg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the catalog the engine evaluates against.
func (e *Engine) Registry() *property.Registry {
	return e.registry
}

// Entry is one line of a single-number report.
type Entry struct {
	Name  property.Name `json:"name"`
	Value bool          `json:"value"`
}

// Match is a scan hit together with every property that holds for it.
type Match struct {
	Number     int64    `json:"number"`
	Properties []string `json:"properties"`
}

// String renders the match as "N is prop1, prop2".
func (m Match) String() string {
	return fmt.Sprintf("%d is %s", m.Number, strings.Join(m.Properties, ", "))
}

// Report evaluates every registered property against n in catalog order.
func (e *Engine) Report(n int64) []Entry {
	props := e.registry.All()
	entries := make([]Entry, len(props))
	for i, p := range props {
		entries[i] = Entry{Name: p.Name, Value: p.Test(n)}
	}
	return entries
}

// Describe returns the lower-case names of the properties that hold for n.
func (e *Engine) Describe(n int64) Match {
	props := e.registry.True(n)
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Lower()
	}
	return Match{Number: n, Properties: names}
}

// Compile validates tokens and compiles them into a single predicate.
func (e *Engine) Compile(tokens []Token) (Predicate, error) {
	if err := Validate(e.registry, tokens); err != nil {
		return nil, err
	}
	pred, err := Compile(e.registry, tokens)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("compiled predicate", "tokens", len(tokens), "predicate", pred.String())
	return pred, nil
}

// Scan returns a lazy sequence of the first count integers >= start that
// satisfy pred, in increasing order. Each range over the sequence restarts
// from start. count <= 0 yields nothing and probes nothing.
//
// The scan stops early with ctx.Err() when ctx is cancelled, with a
// *ProbeLimitError when the engine's probe budget runs out, and with
// ErrRangeExhausted after probing math.MaxInt64.
func (e *Engine) Scan(ctx context.Context, start int64, count int, pred Predicate) iter.Seq2[int64, error] {
	return func(yield func(int64, error) bool) {
		if count <= 0 {
			return
		}

		found := 0
		var probes int64
		quota := newProbeQuota(e.maxProbes)
		defer func() {
			e.logger.Debug("scan finished", "start", start, "found", found, "probes", probes)
		}()

		for n := start; ; n++ {
			if probes%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					yield(0, err)
					return
				}
			}
			probes++
			if err := quota.check(start); err != nil {
				yield(0, err)
				return
			}

			if pred.Match(n) {
				found++
				if !yield(n, nil) || found == count {
					return
				}
			}

			if n == math.MaxInt64 {
				yield(0, ErrRangeExhausted)
				return
			}
		}
	}
}
