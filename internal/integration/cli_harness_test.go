//go:build e2e

// cli_harness_test.go builds the stepviz binary and runs it in an isolated
// working directory.
package integration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// CLIHarness manages a stepviz binary for end-to-end tests.
type CLIHarness struct {
	// BinaryPath is the path to the built binary.
	BinaryPath string

	// WorkDir is where commands run. It starts empty, so no stepviz.yaml
	// is found unless a test writes one.
	WorkDir string

	t *testing.T
}

// CLIResult contains the output from a CLI command execution.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Success returns true if the command completed with exit code 0.
func (r *CLIResult) Success() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// NewCLIHarness builds ./cmd/stepviz into a temporary directory.
func NewCLIHarness(t *testing.T) *CLIHarness {
	t.Helper()

	projectRoot := findProjectRoot(t)
	require.NotEmpty(t, projectRoot, "could not find project root (directory containing go.mod)")

	tmpDir := t.TempDir()
	binaryPath := filepath.Join(tmpDir, "stepviz")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/stepviz")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build stepviz binary: %s", output)

	workDir := filepath.Join(tmpDir, "workspace")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	return &CLIHarness{
		BinaryPath: binaryPath,
		WorkDir:    workDir,
		t:          t,
	}
}

// Run executes a command with a 30 second timeout and no stdin.
func (h *CLIHarness) Run(args ...string) *CLIResult {
	return h.RunWithInput(nil, args...)
}

// RunWithInput executes a command with stdin read from input.
func (h *CLIHarness) RunWithInput(input io.Reader, args ...string) *CLIResult {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, h.BinaryPath, args...)
	cmd.Dir = h.WorkDir
	cmd.Stdin = input

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	return newResult(cmd.Run(), stdout.String(), stderr.String())
}

// Start launches a command without waiting for it. Its output is collected
// in the returned buffers, which are safe to read while it runs.
func (h *CLIHarness) Start(args ...string) (*exec.Cmd, *SyncBuffer, *SyncBuffer) {
	h.t.Helper()

	cmd := exec.Command(h.BinaryPath, args...)
	cmd.Dir = h.WorkDir

	stdout, stderr := &SyncBuffer{}, &SyncBuffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	require.NoError(h.t, cmd.Start())
	h.t.Cleanup(func() {
		if cmd.ProcessState == nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
	})
	return cmd, stdout, stderr
}

// Wait waits for a command from Start and collects its result.
func (h *CLIHarness) Wait(cmd *exec.Cmd, stdout, stderr *SyncBuffer) *CLIResult {
	h.t.Helper()
	return newResult(cmd.Wait(), stdout.String(), stderr.String())
}

func newResult(err error, stdout, stderr string) *CLIResult {
	result := &CLIResult{Stdout: stdout, Stderr: stderr}
	if err != nil {
		result.Err = err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}
	return result
}

// WriteFile writes a file relative to the workspace.
func (h *CLIHarness) WriteFile(name, content string) {
	h.t.Helper()
	require.NoError(h.t, os.WriteFile(filepath.Join(h.WorkDir, name), []byte(content), 0o644))
}

// RequireSuccess fails the test if the command did not exit cleanly.
func (h *CLIHarness) RequireSuccess(result *CLIResult, msg string) {
	h.t.Helper()
	if !result.Success() {
		h.t.Fatalf("%s: exit=%d err=%v\nstdout: %s\nstderr: %s",
			msg, result.ExitCode, result.Err, result.Stdout, result.Stderr)
	}
}

// RequireFailure fails the test if the command succeeded.
func (h *CLIHarness) RequireFailure(result *CLIResult, msg string) {
	h.t.Helper()
	if result.Success() {
		h.t.Fatalf("%s: command succeeded unexpectedly\nstdout: %s\nstderr: %s",
			msg, result.Stdout, result.Stderr)
	}
}

// SyncBuffer is a bytes.Buffer guarded by a mutex.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// findProjectRoot walks up from the working directory to the go.mod.
func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
