package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/amazing/internal/query"
	"github.com/roach88/amazing/internal/store"
	"github.com/roach88/amazing/internal/testutil"
)

func executeCheck(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCheckCommandReport(t *testing.T) {
	out, err := executeCheck(t, &RootOptions{Format: "text"}, "1000")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "Properties of 1000", lines[0])
	assert.Equal(t, "\t\tbuzz: false", lines[1])
	assert.Equal(t, "\t\tduck: true", lines[2])
	assert.Equal(t, "\t\teven: true", lines[3])
	assert.Equal(t, "\t\tgapful: true", lines[4])
	assert.Equal(t, "\t\thappy: true", lines[11])
	assert.Equal(t, "\t\tsad: false", lines[12])
}

func TestCheckCommandScan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "range_without_properties",
			args: []string{"10", "3"},
			want: "10 is duck, even, jumping, happy\n" +
				"11 is odd, palindromic, sad\n" +
				"12 is even, jumping, sad\n",
		},
		{
			name: "negated_and_lower_case",
			args: []string{"1", "2", "buzz", "-even"},
			want: "7 is buzz, jumping, odd, palindromic, spy, happy\n" +
				"17 is buzz, odd, sad\n",
		},
		{
			name: "zero_count",
			args: []string{"1", "0", "even"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCheck(t, &RootOptions{Format: "text"}, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCheckCommandRejectedRequests(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unparseable_number",
			args: []string{"abc"},
			want: "The first parameter should be a natural number or zero.\n",
		},
		{
			name: "negative_number",
			args: []string{"-5"},
			want: "The first parameter should be a natural number or zero.\n",
		},
		{
			name: "negative_number_after_terminator",
			args: []string{"--", "-5"},
			want: "The first parameter should be a natural number or zero.\n",
		},
		{
			name: "negative_number_after_flags",
			args: []string{"--max-probes", "10", "-1", "2", "even"},
			want: "The first parameter should be a natural number or zero.\n",
		},
		{
			name: "bad_count",
			args: []string{"1", "x"},
			want: "The second parameter should be a natural number.\n",
		},
		{
			name: "negative_count",
			args: []string{"1", "-2"},
			want: "The second parameter should be a natural number.\n",
		},
		{
			name: "unknown_property",
			args: []string{"1", "2", "even", "foo"},
			want: "The property [FOO] is wrong.\n" +
				"Available properties: [BUZZ, DUCK, EVEN, GAPFUL, JUMPING, ODD, PALINDROMIC, SPY, SQUARE, SUNNY, HAPPY, SAD]\n",
		},
		{
			name: "mutually_exclusive",
			args: []string{"1", "2", "sunny", "square"},
			want: "The request contains mutually exclusive properties: [SUNNY, SQUARE]\n" +
				"There are no numbers with these properties.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCheck(t, &RootOptions{Format: "text"}, tt.args...)
			require.Error(t, err)
			assert.True(t, IsReported(err))
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCheckCommandMissingArgs(t *testing.T) {
	_, err := executeCheck(t, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestCheckCommandJSON(t *testing.T) {
	out, err := executeCheck(t, &RootOptions{Format: "json"}, "1", "2", "square")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"square"}, resp.Data.Query.Tokens)
	require.NotNil(t, resp.Data.Result)
	assert.Equal(t, query.ModeScan, resp.Data.Result.Mode)
	require.Len(t, resp.Data.Result.Matches, 2)
	assert.Equal(t, int64(1), resp.Data.Result.Matches[0].Number)
	assert.Equal(t, int64(4), resp.Data.Result.Matches[1].Number)
	assert.Empty(t, resp.Data.RunID)
}

func TestCheckCommandJSONError(t *testing.T) {
	out, err := executeCheck(t, &RootOptions{Format: "json"}, "1", "1", "even", "-even")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, query.ErrCodeMutuallyExclusive, resp.Error.Code)
	assert.Equal(t, "There are no numbers with these properties.", resp.Error.Hint)
}

func TestCheckCommandRecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	opts := &RootOptions{
		Format:   "text",
		Database: dbPath,
		IDs:      testutil.NewSequenceGenerator("run"),
	}

	_, err := executeCheck(t, opts, "1", "2", "even")
	require.NoError(t, err)
	_, err = executeCheck(t, opts, "1", "2", "even", "odd")
	require.Error(t, err)
	_, err = executeCheck(t, opts, "42")
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	recs, err := st.ListRecords(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "run-0003", recs[0].ID)
	assert.Equal(t, query.ModeReport, recs[0].Mode)
	assert.Nil(t, recs[0].Tokens)

	assert.Equal(t, "run-0002", recs[1].ID)
	assert.Equal(t, query.ErrCodeMutuallyExclusive, recs[1].ErrorCode)

	assert.Equal(t, "run-0001", recs[2].ID)
	assert.Equal(t, []int64{2, 4}, recs[2].Matches)
	assert.Equal(t, int64(1), recs[2].Seq)
}

func TestCheckCommandDatabaseError(t *testing.T) {
	opts := &RootOptions{
		Format:   "text",
		Database: filepath.Join(t.TempDir(), "missing", "dir", "history.db"),
	}

	_, err := executeCheck(t, opts, "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestParseQuery(t *testing.T) {
	q, err := parseQuery([]string{"5"})
	require.NoError(t, err)
	assert.Equal(t, query.ModeReport, q.Mode())

	q, err = parseQuery([]string{"5", "2"})
	require.NoError(t, err)
	assert.Equal(t, query.ModeScan, q.Mode())
	assert.NotNil(t, q.Tokens)
	assert.Empty(t, q.Tokens)

	_, err = parseQuery([]string{"99999999999999999999"})
	require.Error(t, err)
	assert.True(t, query.IsInvalidArgument(err))
}

func TestCheckCommandFlagsBeforeNumber(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "equals_form",
			args: []string{"--max-probes=100", "1", "2", "buzz"},
			want: "7 is buzz, jumping, odd, palindromic, spy, happy\n14 is buzz, even, sad\n",
		},
		{
			name: "terminator",
			args: []string{"--", "1", "1", "-even"},
			want: "1 is jumping, odd, palindromic, spy, square, happy\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCheck(t, &RootOptions{Format: "text"}, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), errBuf.String(), err
}

func TestCheckCommandRootFlagsAfterCheck(t *testing.T) {
	out, _, err := executeRoot(t, "check", "--format", "json", "1", "1", "even")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Result.Matches, 1)
	assert.Equal(t, int64(2), resp.Data.Result.Matches[0].Number)

	out, errOut, err := executeRoot(t, "check", "-v", "1", "1", "odd")
	require.NoError(t, err)
	assert.Equal(t, "1 is jumping, odd, palindromic, spy, square, happy\n", out)
	assert.Contains(t, errOut, "level=DEBUG")

	_, _, err = executeRoot(t, "check", "--format", "xml", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCheckCommandUnknownFlag(t *testing.T) {
	_, err := executeCheck(t, &RootOptions{Format: "text"}, "--bogus", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag: --bogus")
}

func TestCheckCommandHelp(t *testing.T) {
	out, err := executeCheck(t, &RootOptions{Format: "text"}, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--max-probes")
}

func TestCheckCommandHugeCountStopsAtBudget(t *testing.T) {
	var out string
	var err error
	require.NotPanics(t, func() {
		out, err = executeCheck(t, &RootOptions{Format: "text"}, "--max-probes", "10", "1", "1125899906842624", "even")
	})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "stopped after 10 probes (limit 10)")
}

func TestCheckCommandMaxProbes(t *testing.T) {
	out, err := executeCheck(t, &RootOptions{Format: "text"}, "--max-probes", "50", "10", "3", "spy", "square")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "stopped after 50 probes (limit 50)")
}
