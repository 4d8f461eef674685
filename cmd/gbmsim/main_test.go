package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRoot_Report(t *testing.T) {
	out, _, err := execute(t, "--seed", "42", "--paths", "500", "--histogram=false")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Expected return (mean): "))
	assert.True(t, strings.HasPrefix(lines[1], "Volatility of returns: "))
	assert.True(t, strings.HasPrefix(lines[2], "5% Value at Risk (VaR): "))

	again, _, err := execute(t, "--seed", "42", "--paths", "500", "--histogram=false")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRoot_HistogramAndVerbose(t *testing.T) {
	out, _, err := execute(t, "--seed", "3", "--paths", "300", "--bins", "10", "--workers", "2", "-v")
	require.NoError(t, err)

	assert.Contains(t, out, "Monte Carlo Simulation of Portfolio Returns\n")
	assert.Equal(t, 10, strings.Count(out, " | "))
	assert.Contains(t, out, "5% Expected shortfall (CVaR): ")
	assert.Contains(t, out, "Seed: 3\n")
}

func TestRoot_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.prom")
	_, _, err := execute(t, "--seed", "1", "--paths", "50", "--histogram=false", "--metrics-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gbmsim_paths_simulated_total 50")
}

func TestRoot_InvalidModel(t *testing.T) {
	out, _, err := execute(t, "--paths", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numPaths")
	assert.Empty(t, out)
}

func TestRoot_LogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "--paths", "10", "--histogram=false", "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, errOut, "No seed configured")
	assert.Contains(t, errOut, "Simulation finished")
	assert.NotContains(t, out, "seed")
}

func TestAnalytic(t *testing.T) {
	out, _, err := execute(t, "analytic", "--sigma", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "Analytic volatility: 0\n")
	assert.Contains(t, out, "Analytic 5% VaR: ")
}
