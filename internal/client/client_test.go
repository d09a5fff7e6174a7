package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/kmctl-dev/kmctl/pkg/models"
)

func useFastBackoff(t *testing.T) {
	t.Helper()
	old := readyBackoff
	readyBackoff = wait.Backoff{Duration: 5 * time.Millisecond, Factor: 1.5, Steps: 5}
	t.Cleanup(func() { readyBackoff = old })
}

func TestPingWithRetry_ImmediateSuccess(t *testing.T) {
	useFastBackoff(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := pingWithRetry(context.Background(), c); err != nil {
		t.Fatalf("pingWithRetry failed on immediate success: %v", err)
	}
}

func TestPingWithRetry_SucceedsAfterFailures(t *testing.T) {
	useFastBackoff(t)
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := pingWithRetry(context.Background(), c); err != nil {
		t.Fatalf("pingWithRetry failed: %v (calls=%d)", err, calls.Load())
	}
	if calls.Load() < 3 {
		t.Fatalf("expected at least 3 calls, got %d", calls.Load())
	}
}

func TestPingWithRetry_AllFail(t *testing.T) {
	useFastBackoff(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := pingWithRetry(context.Background(), c)
	if err == nil {
		t.Fatal("expected error when all pings fail")
	}
}

func TestListPods_DecodesArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/listAllPods/default", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"nome":"web-1","namespace":"default","status":"Running","image":"nginx"}]`)
	}))
	defer srv.Close()

	pods, err := NewClient(srv.URL).ListPods(context.Background(), "default")
	require.NoError(t, err)
	require.Len(t, pods, 1)
	assert.Equal(t, "web-1", pods[0].Name)
	assert.Equal(t, "Running", pods[0].Status)
}

func TestListPods_ServerErrorReturnsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	pods, err := NewClient(srv.URL).ListPods(context.Background(), "default")
	require.Error(t, err)
	require.NotNil(t, pods)
	assert.Empty(t, pods)
}

func TestListNamespaces_NonArrayBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items":["default"]}`)
	}))
	defer srv.Close()

	namespaces, err := NewClient(srv.URL).ListNamespaces(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedShape)
	assert.Empty(t, namespaces)
	assert.NotNil(t, namespaces)
}

func TestListDeployments_NullBodyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "null\n")
	}))
	defer srv.Close()

	deployments, err := NewClient(srv.URL).ListDeployments(context.Background(), "empty")
	require.NoError(t, err)
	assert.NotNil(t, deployments)
	assert.Empty(t, deployments)
}

func TestListServices_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	services, err := NewClient(url).ListServices(context.Background(), "default")
	require.Error(t, err)
	assert.Empty(t, services)
}

func TestListPods_EscapesNamespace(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listAllPods/a%2Fb", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListPods(context.Background(), "a/b")
	require.NoError(t, err)
}

func TestCreateResource_SendsKindSpecificBody(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/createResource", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(models.StatusResponse{Status: "ok", Message: "created"})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).CreateResource(context.Background(), &models.CreateResourceRequest{
		Name:      "api",
		Namespace: "default",
		Spec:      models.DeploymentSpec{Image: "nginx:latest", Replicas: 3, ContainerPort: 8080},
	})
	require.NoError(t, err)
	assert.Equal(t, "created", resp.Message)
	assert.Equal(t, map[string]any{
		"kind": "deployment", "name": "api", "namespace": "default",
		"image": "nginx:latest", "replicas": float64(3), "containerPort": float64(8080),
	}, got)
}

func TestPost_ErrorMessagePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "server message", status: http.StatusBadRequest, body: `{"status":"error","message":"deployment already exists"}`, wantMsg: "deployment already exists"},
		{name: "plain text body", status: http.StatusInternalServerError, body: "oops", wantMsg: "request failed with status code 500"},
		{name: "empty message", status: http.StatusConflict, body: `{"status":"error","message":""}`, wantMsg: "request failed with status code 409"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).DeletePod(context.Background(), "web", "default")
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "delete pod", apiErr.Op)
		})
	}
}

func TestPost_TransportErrorUsesErrorText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).DeleteService(context.Background(), "svc", "default")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.NotEmpty(t, apiErr.Message)
	assert.NotNil(t, errors.Unwrap(apiErr))
}

func TestUpdateDeployment_OmitsUnsetFields(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/updateDeployment", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"status":"ok","message":"updated"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UpdateDeployment(context.Background(), &models.UpdateDeploymentRequest{
		Namespace: "default", Name: "api", Image: "nginx:1.27",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"namespace": "default", "name": "api", "image": "nginx:1.27"}, got)
}

func TestCreateApplication_UndecodableSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "created")
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).CreateApplication(context.Background(), &models.CreateApplicationRequest{Name: "shop"})
	require.NoError(t, err)
	assert.Empty(t, resp.Message)
}

func TestNewClient_DefaultsBaseURL(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL)

	c = NewClient("http://example.com:7000/")
	assert.Equal(t, "http://example.com:7000", c.BaseURL)
}

func TestWithHTTPClient_ReplacesTransport(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `["default"]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(srv.Client()), WithTimeout(time.Second))
	namespaces, err := c.ListNamespaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, namespaces)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Zero(t, srv.Client().Timeout)
}

func TestWithTimeout_LeavesSharedClientUntouched(t *testing.T) {
	before := http.DefaultClient.Timeout

	c := NewClient("http://localhost:7000", WithHTTPClient(http.DefaultClient), WithTimeout(3*time.Second))

	assert.Equal(t, before, http.DefaultClient.Timeout)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, http.DefaultClient, c.httpClient)
}

func TestNewClient_CustomClientKeepsItsTimeout(t *testing.T) {
	hc := &http.Client{Timeout: 7 * time.Second}
	c := NewClient("", WithHTTPClient(hc))
	assert.Equal(t, 7*time.Second, c.httpClient.Timeout)

	assert.Equal(t, defaultTimeout, NewClient("").httpClient.Timeout)
}

func TestWithLogger_NilFallsBackToNop(t *testing.T) {
	var c *Client
	require.NotPanics(t, func() { c = NewClient("", WithLogger(nil)) })
	require.NotNil(t, c.logger)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()
	_, err := NewClient(srv.URL, WithLogger(nil)).DeletePod(context.Background(), "web", "default")
	require.NoError(t, err)
}

func TestPost_DebugBodyIsRedacted(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithLogger(zap.New(core)))
	_, err := c.CreateResource(context.Background(), &models.CreateResourceRequest{
		Name: "creds", Namespace: "default",
		Spec: models.SecretSpec{SecretType: "Opaque", Data: map[string]string{"password": "hunter2"}},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("sending request").All()
	require.Len(t, entries, 1)
	body, ok := entries[0].ContextMap()["body"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "***", body["data"])
}

func TestPost_SkipsBodyFieldAboveDebug(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, WithLogger(zap.New(core))).DeletePod(context.Background(), "web", "default")
	require.NoError(t, err)
	assert.Empty(t, logs.FilterMessage("sending request").All())
}
