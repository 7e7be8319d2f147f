package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/amazing/internal/property"
	"github.com/roach88/amazing/internal/query"
	"github.com/roach88/amazing/internal/store"
)

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	RunID  string        `json:"run_id,omitempty"`
	Seq    int64         `json:"seq,omitempty"`
	Query  query.Query   `json:"query"`
	Result *query.Result `json:"result"`
}

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	MaxProbes int64 // scan probe budget, 0 = unbounded
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <number> [count] [property...]",
		Short: "Report or search number properties",
		Long: `Report the properties of a number, or list consecutive numbers
starting at <number> that match a combination of properties.

With only <number>, every property of that number is listed.
With <count>, the first <count> numbers from <number> are listed; any
following properties restrict the listing to numbers having all of them.
Prefix a property with "-" to exclude it.

Flags must come before <number>; everything from <number> on is a request
argument, so a negative number such as -5 is read as <number>, not a flag.

Exit codes:
  0 - Request answered
  1 - Request rejected (bad number, unknown or contradictory properties,
      probe budget exhausted)
  2 - Command error (history database unavailable)

Examples:
  amazing check 1000
  amazing check 1 10
  amazing check 1 5 even sunny
  amazing check 100 3 -even buzz -duck
  amazing check --max-probes 1000000 1000 2 spy square
  amazing --db history.db check 7 2 happy`,
		// Flags are parsed by parseCheckFlags so that negative request
		// arguments reach parseQuery instead of failing as unknown shorthands.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rest, err := parseCheckFlags(cmd, args)
			if err != nil {
				return err
			}
			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}
			if err := cobra.MinimumNArgs(1)(cmd, rest); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return runCheck(opts, rest, cmd)
		},
	}
	cmd.Flags().Int64Var(&opts.MaxProbes, "max-probes", 0, "stop a scan after testing this many numbers (0 = unbounded)")

	return cmd
}

func runCheck(opts *CheckOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	logger := opts.logger()

	q, err := parseQuery(args)
	if err != nil {
		formatter.Error(query.ErrorCode(err), err.Error(), nil)
		return reportedError(ExitFailure, err)
	}

	eng := query.New(property.NewRegistry(),
		query.WithLogger(logger),
		query.WithMaxProbes(opts.MaxProbes),
	)
	res, runErr := eng.Run(cmd.Context(), q)

	out := CheckResult{Query: q, Result: res}
	if opts.Database != "" {
		rec, err := recordRun(cmd, opts.RootOptions, q, res, runErr)
		if err != nil {
			formatter.Error(ErrCodeDatabase, err.Error(), map[string]string{"db": opts.Database})
			return reportedError(ExitCommandError, err)
		}
		out.RunID = rec.ID
		out.Seq = rec.Seq
		formatter.VerboseLog("recorded run %s (seq %d)", rec.ID, rec.Seq)
	}

	if runErr != nil {
		code := query.ErrorCode(runErr)
		if code == "" {
			code = ErrCodeGeneric
		}
		formatter.ErrorWithHint(code, runErr.Error(), query.Hint(runErr), nil)
		return reportedError(ExitFailure, runErr)
	}

	return formatter.Lines(res.Lines(), out)
}

// parseCheckFlags parses the flags leading args, including inherited root
// flags, and returns the request arguments that follow them. The flag run
// ends at "--", at the first argument that does not start with "-", or at
// the first argument that is an integer.
func parseCheckFlags(cmd *cobra.Command, args []string) ([]string, error) {
	cmd.InheritedFlags() // merges root persistent flags into cmd.Flags()
	fs := cmd.Flags()

	i := 0
	for i < len(args) {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if len(arg) < 2 || arg[0] != '-' || isInteger(arg) {
			break
		}
		i++

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		flag := fs.Lookup(name)
		if !strings.HasPrefix(arg, "--") && len(name) == 1 {
			flag = fs.ShorthandLookup(name)
		}
		if flag != nil && !hasValue && flag.NoOptDefVal == "" && i < len(args) {
			i++
		}
	}

	if err := fs.Parse(args[:i]); err != nil {
		return nil, cmd.FlagErrorFunc()(cmd, err)
	}
	return args[i:], nil
}

func isInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// parseQuery turns command arguments into a query. Only the number and
// count are interpreted here; property tokens go to the engine untouched.
func parseQuery(args []string) (query.Query, error) {
	number, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return query.Query{}, &query.InvalidArgumentError{Argument: query.ArgNumber}
	}
	q := query.Query{Number: number}
	if len(args) == 1 {
		return q, nil
	}

	count, err := strconv.Atoi(args[1])
	if err != nil {
		return query.Query{}, &query.InvalidArgumentError{Argument: query.ArgCount}
	}
	q.Count = count
	q.Tokens = append([]string{}, args[2:]...)
	return q, nil
}

// recordRun stores a finished run in the history database.
func recordRun(cmd *cobra.Command, opts *RootOptions, q query.Query, res *query.Result, runErr error) (store.Record, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return store.Record{}, fmt.Errorf("open history: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			opts.logger().Error("error closing database", "error", closeErr)
		}
	}()

	rec := store.NewRecord(opts.idGenerator().Generate(), q, res, runErr)
	rec, err = st.WriteRecord(cmd.Context(), rec)
	if err != nil {
		return store.Record{}, fmt.Errorf("record run: %w", err)
	}
	return rec, nil
}
