package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/amazing/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Key   string // only runs of this query key
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded requests",
		Long: `Show requests recorded by "amazing --db <path> check".

Without arguments the most recent runs are listed, newest first.
With a run id, that single run is shown with its matches.

Examples:
  amazing --db history.db history
  amazing --db history.db history --limit 5
  amazing --db history.db history --key 3f2a...
  amazing --db history.db history 01920f8e-...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list (0 = all)")
	cmd.Flags().StringVar(&opts.Key, "key", "", "only list runs with this query key")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Database == "" {
		return NewExitError(ExitCommandError, "--db is required")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		formatter.Error(ErrCodeDatabase, err.Error(), map[string]string{"db": opts.Database})
		return reportedError(ExitCommandError, err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			opts.logger().Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()

	if len(args) == 1 {
		rec, err := st.ReadRecord(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			formatter.Error(ErrCodeNotFound, fmt.Sprintf("run %s not found", args[0]), nil)
			return reportedError(ExitFailure, err)
		}
		if err != nil {
			formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return reportedError(ExitCommandError, err)
		}
		return formatter.Lines(recordDetail(rec), rec)
	}

	var recs []store.Record
	if opts.Key != "" {
		recs, err = st.RecordsByKey(ctx, opts.Key)
	} else {
		recs, err = st.ListRecords(ctx, opts.Limit)
	}
	if err != nil {
		formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return reportedError(ExitCommandError, err)
	}

	if len(recs) == 0 {
		return formatter.Lines([]string{"No runs recorded."}, recs)
	}

	lines := make([]string, len(recs))
	for i, rec := range recs {
		lines[i] = recordSummary(rec)
	}
	return formatter.Lines(lines, recs)
}

// requestString renders a record's request as it was typed.
func requestString(rec store.Record) string {
	parts := []string{strconv.FormatInt(rec.Number, 10)}
	if rec.Tokens != nil {
		parts = append(parts, strconv.Itoa(rec.Count))
		parts = append(parts, rec.Tokens...)
	}
	return strings.Join(parts, " ")
}

func outcome(rec store.Record) string {
	switch {
	case rec.Failed():
		return "error " + rec.ErrorCode
	case rec.Tokens == nil:
		return "report"
	case len(rec.Matches) == 1:
		return "1 match"
	default:
		return fmt.Sprintf("%d matches", len(rec.Matches))
	}
}

func recordSummary(rec store.Record) string {
	return fmt.Sprintf("%4d  %s  %s -> %s", rec.Seq, rec.ID, requestString(rec), outcome(rec))
}

func recordDetail(rec store.Record) []string {
	lines := []string{
		"Run:     " + rec.ID,
		"Seq:     " + strconv.FormatInt(rec.Seq, 10),
		"Key:     " + rec.Key,
		"Request: " + requestString(rec),
		"Result:  " + outcome(rec),
	}
	for _, n := range rec.Matches {
		lines = append(lines, "  "+strconv.FormatInt(n, 10))
	}
	return lines
}
