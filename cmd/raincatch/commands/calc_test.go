package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/raincatch/pkg/config"
	"github.com/Sumatoshi-tech/raincatch/pkg/heights"
	"github.com/Sumatoshi-tech/raincatch/pkg/terrain"
)

var referenceHeights = []string{"1", "3", "8", "7", "7", "4", "0", "0", "3", "7", "6", "5", "3", "2", "8", "1", "2", "5", "1", "8"}

type execResult struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func decodeJSONReport(t *testing.T, raw string) calcReport {
	t.Helper()

	var report calcReport

	require.NoError(t, json.Unmarshal([]byte(raw), &report))

	return report
}

func TestCalc_TextReport(t *testing.T) {
	t.Parallel()

	res := execute(t, "", append([]string{"calc"}, referenceHeights...)...)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Water")
	assert.Contains(t, res.stdout, "67")
	assert.Contains(t, res.stdout, "Positions")
	assert.Contains(t, res.stderr, "collected water")
	assert.Contains(t, res.stderr, "units=67")
}

func TestCalc_JSONReport(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "calc", "--format", "json", "3", "0", "2", "0", "4")
	require.NoError(t, res.err)

	report := decodeJSONReport(t, res.stdout)
	assert.Equal(t, 7, report.Water)
	assert.Equal(t, 5, report.Positions)
	assert.Equal(t, []int{3, 0, 2, 0, 4}, report.Heights)
	assert.Equal(t, []int{0, 3, 1, 3, 0}, report.Levels)
	assert.Equal(t, 0, report.FirstHill)
	assert.Equal(t, 4, report.LastHill)
	assert.Equal(t, terrain.DegeneracyNone, report.Degeneracy)
}

func TestCalc_YAMLReport(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "calc", "--format", "yaml", "1", "3", "7", "6", "8", "4", "0", "0", "3", "12",
		"6", "5", "3", "2", "9", "1", "2", "5", "1", "8")
	require.NoError(t, res.err)

	var report map[string]any

	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, 69, report["water"])
	assert.Equal(t, 20, report["positions"])
	assert.Equal(t, "none", report["degeneracy"])
}

func TestCalc_Degenerate(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "calc", "--format", "json", "5", "4", "3")
	require.NoError(t, res.err)

	report := decodeJSONReport(t, res.stdout)
	assert.Equal(t, 0, report.Water)
	assert.Equal(t, terrain.DegeneracyFalling, report.Degeneracy)
	assert.Equal(t, -1, report.LastHill)
}

func TestCalc_MaxCapacityHumanized(t *testing.T) {
	t.Parallel()

	args := make([]string, terrain.MaxPositions)
	for i := range args {
		args[i] = "0"
	}

	args[0] = strconv.Itoa(terrain.MaxHeight)
	args[len(args)-1] = strconv.Itoa(terrain.MaxHeight)

	res := execute(t, "", append([]string{"calc"}, args...)...)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "1,023,936,000")
}

func TestCalc_DrawWater(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "calc", "--draw", "--water", "--no-color", "3", "0", "2", "0", "4")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "        ^ \n^ ~ ~ ~ ^ \n^ ~ ^ ~ ^ \n^ ~ ^ ~ ^ \n---------\n3 0 2 0 4\n")
}

func TestCalc_DrawGroundOnly(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "calc", "--draw", "--no-color", "3", "0", "2", "0", "4")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "^       ^ \n")
	assert.NotContains(t, res.stdout, "~")
}

func TestCalc_InputStdin(t *testing.T) {
	t.Parallel()

	res := execute(t, "heights: [4, 1, 4]\n", "calc", "--input", "-", "--format", "json")
	require.NoError(t, res.err)

	assert.Equal(t, 3, decodeJSONReport(t, res.stdout).Water)
}

func TestCalc_InputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "terrain.json")
	require.NoError(t, os.WriteFile(path, []byte("[2, 0, 2]"), 0o600))

	res := execute(t, "", "calc", "--input", path, "--format", "json")
	require.NoError(t, res.err)

	assert.Equal(t, 2, decodeJSONReport(t, res.stdout).Water)
}

func TestCalc_HTMLChart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "terrain.html")

	res := execute(t, "", "calc", "--html", path, "3", "0", "2", "0", "4")
	require.NoError(t, res.err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "echarts")
	assert.Contains(t, string(content), "5 positions, 7 units of water")
}

func TestCalc_MetricsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "raincatch.prom")

	res := execute(t, "", "calc", "--metrics-file", path, "3", "0", "2", "0", "4")
	require.NoError(t, res.err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "raincatch_water_collected")
	assert.Contains(t, string(content), "raincatch_requests")
}

func TestCalc_ConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "raincatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\nlogging:\n  level: trace\n"), 0o600))

	res := execute(t, "", "--config", path, "calc", "3", "0", "2", "0", "4")
	require.NoError(t, res.err)

	assert.Equal(t, 7, decodeJSONReport(t, res.stdout).Water)
	assert.Contains(t, res.stderr, "msg=collected ")
	assert.Contains(t, res.stderr, "terrain solved")
}

func TestCalc_Verbose(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "calc", "-v", "3", "0", "2", "0", "4")
	require.NoError(t, res.err)

	assert.Contains(t, res.stderr, "terrain solved")
	assert.NotContains(t, res.stderr, "msg=collected ")
}

func TestCalc_Quiet(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "calc", "-q", "-v", "3", "0", "2", "0", "4")
	require.NoError(t, res.err)

	assert.Empty(t, res.stderr)
	assert.Contains(t, res.stdout, "7")
}

func TestCalc_Errors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "terrain.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[1, 2]"), 0o600))

	cases := []struct {
		name string
		want error
		args []string
	}{
		{name: "no heights", args: []string{"calc"}, want: heights.ErrNoHeights},
		{name: "not a number", args: []string{"calc", "1", "x", "1"}, want: heights.ErrInvalidHeight},
		{name: "negative", args: []string{"calc", "--", "1", "-1", "1"}, want: terrain.ErrInvalidTerrain},
		{name: "too tall", args: []string{"calc", "1", "32001", "1"}, want: terrain.ErrInvalidTerrain},
		{name: "conflicting input", args: []string{"calc", "--input", path, "1"}, want: ErrConflictingInput},
		{name: "bad format", args: []string{"calc", "--format", "xml", "1"}, want: config.ErrInvalidOutputFormat},
		{name: "bad document", args: []string{"calc", "--input", "-"}, want: heights.ErrInvalidDocument},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, "heights: [a]\n", tc.args...)
			require.Error(t, res.err)
			assert.ErrorIs(t, res.err, tc.want)
		})
	}
}

func TestCalc_FlagsRegistered(t *testing.T) {
	t.Parallel()

	cmd := NewCalcCommand()

	for _, name := range []string{"input", "format", "draw", "water", "no-color", "html", "metrics-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}

	assert.Equal(t, config.DefaultOutputFormat, cmd.Flags().Lookup("format").DefValue)
}
