//go:build e2e

package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_Version(t *testing.T) {
	h := NewCLIHarness(t)

	result := h.Run("--version")
	h.RequireSuccess(result, "version")
	assert.True(t, strings.HasPrefix(result.Stdout, "stepviz version "))
}

func TestCLI_Init(t *testing.T) {
	h := NewCLIHarness(t)

	result := h.Run("init")
	h.RequireSuccess(result, "init")
	assert.Equal(t, "wrote stepviz.yaml\n", result.Stdout)

	data, err := os.ReadFile(filepath.Join(h.WorkDir, "stepviz.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "algorithm: kadane")

	result = h.Run("init")
	h.RequireFailure(result, "second init")
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "already exists")

	h.RequireSuccess(h.Run("init", "--force"), "init --force")
}

func TestCLI_Algorithms(t *testing.T) {
	h := NewCLIHarness(t)

	result := h.Run("algorithms")
	h.RequireSuccess(result, "algorithms")
	for _, name := range []string{"kadane", "max", "min", "sum"} {
		assert.Contains(t, result.Stdout, name)
	}
}

func TestCLI_ScanPlain(t *testing.T) {
	h := NewCLIHarness(t)

	result := h.Run("scan", "--plain", "--delay", "0", "--values=-2,1,-3,4,-1,2,1,-5,4")
	h.RequireSuccess(result, "scan --plain")

	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	require.Len(t, lines, 11, "blank, eight active steps, complete, result")
	assert.True(t, strings.HasSuffix(lines[0], "0/8"))
	assert.True(t, strings.HasSuffix(lines[9], "8/8"))
	assert.Equal(t, "result: 6 (indices 3..6)", lines[10])
}

func TestCLI_ScanFallsBackToPlainWithoutTerminal(t *testing.T) {
	h := NewCLIHarness(t)

	// stdin and stdout are pipes here, so the interactive view is skipped.
	result := h.Run("scan", "--delay", "0", "--algorithm", "max", "--values", "3 9 4")
	h.RequireSuccess(result, "scan without terminal")
	assert.Contains(t, result.Stdout, "result: 9 (indices 1..1)")
}

func TestCLI_ScanUsesConfigFile(t *testing.T) {
	h := NewCLIHarness(t)
	h.WriteFile("stepviz.yaml", "delay_ms: 0\nalgorithm: sum\nvalues: [1, 2, 3]\n")

	result := h.Run("scan")
	h.RequireSuccess(result, "scan with config")
	assert.Contains(t, result.Stdout, "result: 6\n")
}

func TestCLI_ScanErrors(t *testing.T) {
	h := NewCLIHarness(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown algorithm",
			args:    []string{"scan", "--plain", "--algorithm", "bogo"},
			wantErr: "bogo",
		},
		{
			name:    "bad values",
			args:    []string{"scan", "--plain", "--values", "1,x"},
			wantErr: "invalid --values",
		},
		{
			name:    "missing config",
			args:    []string{"scan", "--plain", "--config", "nope.yaml"},
			wantErr: "nope.yaml",
		},
		{
			name:    "bad log level",
			args:    []string{"scan", "--plain", "--log-level", "loud"},
			wantErr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := h.Run(tt.args...)
			h.RequireFailure(result, tt.name)
			assert.Equal(t, 1, result.ExitCode)
			assert.True(t, strings.HasPrefix(result.Stderr, "error: "), "stderr %q", result.Stderr)
			assert.Contains(t, result.Stderr, tt.wantErr)
		})
	}
}

func TestCLI_ScanInterruptCancelsRun(t *testing.T) {
	h := NewCLIHarness(t)

	cmd, stdout, stderr := h.Start("scan", "--plain", "--delay", "10s", "--values", "1,2,3,4,5")

	// The active cell is bracketed once index 1 is published.
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "[2]")
	}, 10*time.Second, 10*time.Millisecond)

	require.NoError(t, cmd.Process.Signal(os.Interrupt))

	result := h.Wait(cmd, stdout, stderr)
	h.RequireSuccess(result, "interrupted scan")
	assert.Contains(t, result.Stdout, "cancelled after 0 steps")
	assert.NotContains(t, result.Stdout, "result:")
}

func TestCLI_HeapSession(t *testing.T) {
	h := NewCLIHarness(t)

	input := strings.NewReader("insert 5\npeek\ndelete\nbogus\nquit\n")
	result := h.RunWithInput(input, "heap", "--values", "10,20,15,30,40")
	h.RequireSuccess(result, "heap session")

	assert.True(t, strings.HasPrefix(result.Stdout, "array: [10 20 15 30 40]\n"))
	assert.Contains(t, result.Stdout, "array: [5 20 10 30 40 15]")
	assert.Contains(t, result.Stdout, "min 5")
	assert.Contains(t, result.Stdout, "deleted 5")
	assert.Contains(t, result.Stdout, `error: unknown command "bogus"`)
}
