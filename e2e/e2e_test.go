//go:build e2e

package e2e

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	log.SetPrefix("[e2e] ")
	log.SetFlags(log.Ltime)

	checkPrerequisites()

	backendURL = os.Getenv("KMCTL_API_BASE_URL")
	if backendURL == "" {
		log.Fatal("KMCTL_API_BASE_URL must point at a running backend")
	}

	log.Printf("Configuration:")
	log.Printf("  KMCTL_API_BASE_URL: %s", backendURL)
	log.Printf("  KMCTL binary:       %s", resolveKmctlBinaryPath())

	waitForBackendStartup(backendURL, 60*time.Second)

	os.Exit(m.Run())
}

// checkPrerequisites verifies the kmctl binary has been built.
func checkPrerequisites() {
	if _, err := os.Stat(resolveKmctlBinaryPath()); err != nil {
		log.Fatalf("kmctl binary not found at %s\nBuild it first with: go build -o bin/kmctl ./cmd/cli", resolveKmctlBinaryPath())
	}
}

// resolveKmctlBinaryPath returns the absolute path to the pre-built kmctl binary.
func resolveKmctlBinaryPath() string {
	bin := os.Getenv("KMCTL_BINARY")
	if bin == "" {
		bin = filepath.Join("..", "bin", "kmctl")
	}
	abs, err := filepath.Abs(bin)
	if err != nil {
		log.Fatalf("Failed to resolve kmctl binary path %q: %v", bin, err)
	}
	return abs
}

// waitForBackendStartup polls the namespace listing until it answers.
func waitForBackendStartup(baseURL string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 5 * time.Second}
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/listAllNs")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(2 * time.Second)
	}
	log.Fatalf("backend at %s did not become ready within %s", baseURL, timeout)
}
