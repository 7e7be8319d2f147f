package harness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/amazing/internal/query"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation matched.
	Pass bool `json:"pass"`

	// Transcript holds every request and its rendered output, in order.
	Transcript []string `json:"transcript"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Transcript: []string{},
		Errors:     []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Harness runs scenarios against an engine.
type Harness struct {
	engine *query.Engine
	logger *slog.Logger
}

// New creates a harness over eng. A nil logger falls back to slog.Default().
func New(eng *query.Engine, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harness{engine: eng, logger: logger}
}

// Run executes every request of the scenario and checks its expectations.
// The returned error is reserved for harness failures; expectation
// mismatches are reported through Result.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("nil scenario")
	}
	result := NewResult()

	for i, req := range scenario.Requests {
		q := query.Query{Number: req.Number, Count: req.Count, Tokens: req.Properties}
		res, runErr := h.engine.Run(ctx, q)

		// A cancelled context aborts the whole scenario.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("requests[%d]: %w", i, ctxErr)
		}

		output := render(res, runErr)
		result.Transcript = append(result.Transcript, "> "+req.String())
		result.Transcript = append(result.Transcript, output...)

		h.logger.Debug("scenario request", "scenario", scenario.Name, "index", i, "request", req.String(), "lines", len(output))

		if req.Expect != nil {
			checkExpect(result, i, req.Expect, output, runErr)
		}
	}

	return result, nil
}

// render produces the console lines for a run: result lines, or the error
// message followed by its hint.
func render(res *query.Result, err error) []string {
	if err != nil {
		lines := []string{err.Error()}
		if hint := query.Hint(err); hint != "" {
			lines = append(lines, hint)
		}
		return lines
	}
	return res.Lines()
}

func checkExpect(result *Result, index int, expect *Expect, output []string, runErr error) {
	code := query.ErrorCode(runErr)
	if runErr != nil && code == "" {
		code = "error"
	}

	if expect.Error != code {
		switch {
		case expect.Error == "":
			result.AddError("requests[%d]: unexpected error %s: %v", index, code, runErr)
		case code == "":
			result.AddError("requests[%d]: expected error %s, request succeeded", index, expect.Error)
		default:
			result.AddError("requests[%d]: expected error %s, got %s", index, expect.Error, code)
		}
		return
	}

	if expect.Lines != nil && !slices.Equal(expect.Lines, output) {
		result.AddError("requests[%d]: output mismatch: expected %q, got %q", index, expect.Lines, output)
	}

	for _, line := range expect.Contains {
		if !slices.Contains(output, line) {
			result.AddError("requests[%d]: output does not contain %q", index, line)
		}
	}

	if expect.Count != nil && len(output) != *expect.Count {
		result.AddError("requests[%d]: expected %d lines, got %d", index, *expect.Count, len(output))
	}
}
