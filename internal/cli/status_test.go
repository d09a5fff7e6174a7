package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestStatusCmd_BackendDown(t *testing.T) {
	// Point to a non-existent server so Ping fails.
	t.Setenv("KMCTL_API_BASE_URL", "http://127.0.0.1:19999")

	out := captureStdout(t, func() {
		if err := StatusCmd.RunE(StatusCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(out, "unreachable") {
		t.Errorf("expected 'unreachable' in output, got: %s", out)
	}
	if strings.Contains(out, "Namespaces:") {
		t.Errorf("did not expect a namespace count, got: %s", out)
	}
}

func TestStatusCmd_BackendRunning(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/listAllNs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]string{"default", "kube-system", "apps"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("KMCTL_API_BASE_URL", srv.URL)

	out := captureStdout(t, func() {
		if err := StatusCmd.RunE(StatusCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(out, "API:             ok") {
		t.Errorf("expected api ok in output, got: %s", out)
	}
	if !strings.Contains(out, "Namespaces:      3") {
		t.Errorf("expected 3 namespaces in output, got: %s", out)
	}
}

func TestStatusCmd_JSONOutput(t *testing.T) {
	t.Setenv("KMCTL_API_BASE_URL", "http://127.0.0.1:19999")

	statusOutputFormat = "json"
	defer func() { statusOutputFormat = "table" }()

	out := captureStdout(t, func() {
		if err := StatusCmd.RunE(StatusCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	var info statusInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("expected valid JSON, got parse error: %v\noutput: %s", err, out)
	}
	if info.API != "unreachable" {
		t.Errorf("expected api=unreachable, got %s", info.API)
	}
	if info.APIBaseURL != "http://127.0.0.1:19999" {
		t.Errorf("unexpected base url %s", info.APIBaseURL)
	}
}

func TestStatusCmd_InvalidConfig(t *testing.T) {
	t.Setenv("KMCTL_API_BASE_URL", "not a url")

	if err := StatusCmd.RunE(StatusCmd, nil); err == nil {
		t.Fatal("expected an error for an invalid base URL")
	}
}
