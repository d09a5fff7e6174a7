package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientFromEnv_UsesConfiguredBaseURL(t *testing.T) {
	t.Setenv("KMCTL_API_BASE_URL", "http://cluster.example:7000")

	c, err := NewClientFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://cluster.example:7000", c.BaseURL)
}

func TestNewClient_ListsNamespaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `["default","kube-system"]`)
	}))
	defer srv.Close()

	namespaces, err := NewClient(srv.URL).ListNamespaces(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "kube-system"}, namespaces)
}
