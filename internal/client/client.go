package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/kmctl-dev/kmctl/internal/config"
	"github.com/kmctl-dev/kmctl/internal/logging"
	"github.com/kmctl-dev/kmctl/pkg/models"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = config.DefaultAPIBaseURL

const (
	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 30 * time.Second
)

// ErrUnexpectedShape is returned by list calls when the body is not a JSON array.
var ErrUnexpectedShape = errors.New("unexpected response shape: expected a JSON array")

// readyBackoff drives WaitReady. Tests shorten it.
var readyBackoff = wait.Backoff{
	Duration: 250 * time.Millisecond,
	Factor:   2,
	Steps:    5,
}

// APIError is returned by mutating calls. Message is already user-facing.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// Client talks to the cluster-management backend.
type Client struct {
	BaseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client is copied,
// so later options never change the caller's instance.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l.Named("client")
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := http.Client{Timeout: defaultTimeout}
	if c.httpClient != nil {
		hc = *c.httpClient
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc
	return c
}

// NewClientFromEnv creates a client configured from KMCTL_* environment variables.
func NewClientFromEnv() (*Client, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg.APIBaseURL, WithTimeout(cfg.APITimeout)), nil
}

// ListNamespaces returns every namespace name. The slice is never nil; on
// failure it is empty and the error describes why.
func (c *Client) ListNamespaces(ctx context.Context) ([]string, error) {
	return listJSON[string](ctx, c, "list namespaces", "/listAllNs")
}

// ListPods returns the pods of a namespace. Same failure contract as ListNamespaces.
func (c *Client) ListPods(ctx context.Context, namespace string) ([]models.PodInfo, error) {
	return listJSON[models.PodInfo](ctx, c, "list pods", "/listAllPods/"+url.PathEscape(namespace))
}

// ListDeployments returns the deployments of a namespace.
func (c *Client) ListDeployments(ctx context.Context, namespace string) ([]models.DeploymentInfo, error) {
	return listJSON[models.DeploymentInfo](ctx, c, "list deployments", "/listAllDeployments/"+url.PathEscape(namespace))
}

// ListServices returns the services of a namespace.
func (c *Client) ListServices(ctx context.Context, namespace string) ([]models.ServiceInfo, error) {
	return listJSON[models.ServiceInfo](ctx, c, "list services", "/listAllServices/"+url.PathEscape(namespace))
}

// CreateResource submits a single-resource create request.
func (c *Client) CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.StatusResponse, error) {
	return c.post(ctx, "create resource", "/createResource", "failed to create resource", req)
}

// CreateApplication submits a deployment+service create request.
func (c *Client) CreateApplication(ctx context.Context, req *models.CreateApplicationRequest) (*models.StatusResponse, error) {
	return c.post(ctx, "create application", "/createApplication", "failed to create application", req)
}

// DeletePod deletes a pod.
func (c *Client) DeletePod(ctx context.Context, name, namespace string) (*models.StatusResponse, error) {
	return c.post(ctx, "delete pod", "/deletePod", "failed to delete pod",
		&models.DeleteRequest{Name: name, Namespace: namespace})
}

// DeleteDeployment deletes a deployment.
func (c *Client) DeleteDeployment(ctx context.Context, name, namespace string) (*models.StatusResponse, error) {
	return c.post(ctx, "delete deployment", "/deleteDeployment", "failed to delete deployment",
		&models.DeleteRequest{Name: name, Namespace: namespace})
}

// DeleteService deletes a service.
func (c *Client) DeleteService(ctx context.Context, name, namespace string) (*models.StatusResponse, error) {
	return c.post(ctx, "delete service", "/deleteService", "failed to delete service",
		&models.DeleteRequest{Name: name, Namespace: namespace})
}

// UpdateDeployment changes the image and/or replica count of a deployment.
func (c *Client) UpdateDeployment(ctx context.Context, req *models.UpdateDeploymentRequest) (*models.StatusResponse, error) {
	return c.post(ctx, "update deployment", "/updateDeployment", "failed to update deployment", req)
}

// Ping checks that the backend answers the namespace listing.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/listAllNs", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

// WaitReady pings the backend with exponential backoff until it answers.
func (c *Client) WaitReady(ctx context.Context) error {
	return pingWithRetry(ctx, c)
}

func pingWithRetry(ctx context.Context, c *Client) error {
	var lastErr error
	err := wait.ExponentialBackoffWithContext(ctx, readyBackoff, func(ctx context.Context) (bool, error) {
		if lastErr = c.Ping(ctx); lastErr != nil {
			c.logger.Debug("backend not ready", zap.Error(lastErr))
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		if lastErr != nil {
			return fmt.Errorf("backend at %s did not become ready: %w", c.BaseURL, lastErr)
		}
		return fmt.Errorf("backend at %s did not become ready: %w", c.BaseURL, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logging.GetRequestID(ctx); id != "" {
		req.Header.Set(requestIDHeader, id)
	}
	return req, nil
}

// listJSON performs a GET expecting a JSON array. A JSON null is read as an
// empty list: the backend encodes empty slices that way.
func listJSON[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	ctx = logging.SetRequestID(ctx, uuid.NewString())
	log := logging.WithRequestID(ctx, c.logger).With(zap.String("op", op), zap.String("path", path))
	items := []T{}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return items, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("list request failed", zap.Error(err))
		return items, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read list response", zap.Error(err))
		return items, fmt.Errorf("failed to %s: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("list request rejected", zap.Int("status", resp.StatusCode))
		return items, fmt.Errorf("failed to %s: backend returned status %d", op, resp.StatusCode)
	}

	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return items, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		log.Warn("list response is not an array")
		return items, fmt.Errorf("failed to %s: %w", op, ErrUnexpectedShape)
	}

	var decoded []T
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		log.Warn("failed to decode list response", zap.Error(err))
		return items, fmt.Errorf("failed to %s: %w", op, err)
	}
	log.Debug("list request completed", zap.Int("count", len(decoded)), zap.Duration("duration", time.Since(start)))
	if decoded == nil {
		return items, nil
	}
	return decoded, nil
}

// post sends a mutation. Error messages prefer the server's message field,
// then the transport or status text, then fallback.
func (c *Client) post(ctx context.Context, op, path, fallback string, body any) (*models.StatusResponse, error) {
	ctx = logging.SetRequestID(ctx, uuid.NewString())
	log := logging.WithRequestID(ctx, c.logger).With(zap.String("op", op), zap.String("path", path))
	if ce := log.Check(zap.DebugLevel, "sending request"); ce != nil {
		ce.Write(zap.Any("body", logging.RedactPayload(body)))
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, &APIError{Op: op, Message: firstNonEmpty(err.Error(), fallback), Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, &APIError{Op: op, Message: firstNonEmpty(err.Error(), fallback), Err: err}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	var status models.StatusResponse
	decodeErr := json.Unmarshal(data, &status)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if decodeErr == nil && readErr == nil {
			msg = strings.TrimSpace(status.Message)
		}
		statusText := fmt.Sprintf("request failed with status code %d", resp.StatusCode)
		log.Warn("request rejected", zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return nil, &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    firstNonEmpty(msg, statusText, fallback),
		}
	}

	if readErr != nil || decodeErr != nil {
		// The mutation went through; only the envelope is unreadable.
		log.Debug("response envelope not decodable", zap.NamedError("read_error", readErr), zap.NamedError("decode_error", decodeErr))
		return &models.StatusResponse{}, nil
	}
	log.Info("request completed", zap.String("status", status.Status))
	return &status, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
