package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"

func executeTest(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeScenario(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0644))
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := executeTest(t, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := executeTest(t, &RootOptions{Format: "text"}, "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := executeTest(t, &RootOptions{Format: "text"}, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, err := executeTest(t, &RootOptions{Format: "text"}, harnessScenarios)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ buzz-scan\n")
	assert.Contains(t, out, "✓ mixed-properties\n")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
}

func TestTestCommandFilter(t *testing.T) {
	out, err := executeTest(t, &RootOptions{Format: "json"}, harnessScenarios, "--filter", "buzz-*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "buzz-scan", resp.Data.Scenarios[0].Name)
	assert.Equal(t, "match", resp.Data.Scenarios[0].Golden)
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	writeScenario(t, dir, "wrong.yaml", `name: wrong
requests:
  - number: 1
    count: 1
    properties: [even]
    expect:
      lines: ["1 is even"]
`)

	out, err := executeTest(t, &RootOptions{Format: "text"}, dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "✗ wrong\n")
	assert.Contains(t, out, "output mismatch")
}

func TestTestCommandLoadError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenarios")
	writeScenario(t, dir, "broken.yaml", "name: broken\nrequests: []\n")

	out, err := executeTest(t, &RootOptions{Format: "text"}, dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml\n")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandUpdateAndCompareGolden(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenarios")
	writeScenario(t, dir, "small.yaml", `name: small
requests:
  - number: 8
    count: 1
    properties: [sunny]
`)

	out, err := executeTest(t, &RootOptions{Format: "text"}, dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ small (golden updated)")

	golden, err := os.ReadFile(filepath.Join(root, "golden", "small.golden"))
	require.NoError(t, err)
	assert.Equal(t, "> 8 1 sunny\n8 is even, jumping, palindromic, spy, sunny, sad\n", string(golden))

	_, err = executeTest(t, &RootOptions{Format: "text"}, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "golden", "small.golden"), []byte("stale\n"), 0644))
	out, err = executeTest(t, &RootOptions{Format: "text"}, dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}
