//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// backendURL is set in TestMain.
var backendURL string

// KmctlResult holds the output from running kmctl.
type KmctlResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// RunKmctl executes the kmctl binary with the given arguments.
func RunKmctl(t *testing.T, args ...string) KmctlResult {
	t.Helper()
	bin := resolveKmctlBinaryPath()
	t.Logf("Running: %s %s", bin, strings.Join(args, " "))

	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), "KMCTL_SETTINGS_FILE="+t.TempDir()+"/settings.yaml")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	result := KmctlResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
		Err:      err,
	}

	t.Logf("Exit code: %d", result.ExitCode)
	if result.Stdout != "" {
		t.Logf("Stdout:\n%s", result.Stdout)
	}
	if result.Stderr != "" {
		t.Logf("Stderr:\n%s", result.Stderr)
	}
	return result
}

// RequireSuccess fails the test if kmctl exited non-zero.
func RequireSuccess(t *testing.T, result KmctlResult) {
	t.Helper()
	if result.ExitCode != 0 {
		t.Fatalf("Expected exit code 0 but got %d.\nStdout: %s\nStderr: %s",
			result.ExitCode, result.Stdout, result.Stderr)
	}
}

// RequireFailure fails the test if kmctl exited zero.
func RequireFailure(t *testing.T, result KmctlResult) {
	t.Helper()
	if result.ExitCode == 0 {
		t.Fatalf("Expected non-zero exit code but got 0.\nStdout: %s\nStderr: %s",
			result.Stdout, result.Stderr)
	}
}

// RequireOutputContains checks stdout and stderr for substr.
func RequireOutputContains(t *testing.T, result KmctlResult, substr string) {
	t.Helper()
	combined := result.Stdout + result.Stderr
	if !strings.Contains(combined, substr) {
		t.Fatalf("Expected output to contain %q but got:\nStdout: %s\nStderr: %s",
			substr, result.Stdout, result.Stderr)
	}
}

// ListNames runs "kmctl <group> list -o json" and returns the object names.
func ListNames(t *testing.T, group, namespace string) []string {
	t.Helper()
	result := RunKmctl(t, group, "list", "-n", namespace, "-o", "json")
	RequireSuccess(t, result)

	var items []struct {
		Name string `json:"nome"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &items); err != nil {
		t.Fatalf("failed to parse %s list output: %v", group, err)
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

// Eventually retries cond until it holds or timeout passes.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Second)
	}
	t.Fatalf("timed out after %s: %s", timeout, msg)
}

// UniqueNameWithPrefix returns a name unlikely to collide across runs.
func UniqueNameWithPrefix(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano()%100000)
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}
