package client

import (
	"github.com/kmctl-dev/kmctl/internal/client"
)

// Client is the backend client exposed for external use.
type Client = client.Client

// Option configures a Client.
type Option = client.Option

// APIError is returned by mutating calls.
type APIError = client.APIError

// NewClientFromEnv creates a client configured from KMCTL_* environment variables.
func NewClientFromEnv() (*Client, error) {
	return client.NewClientFromEnv()
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	return client.NewClient(baseURL, opts...)
}
