// Package testing provides an in-memory stand-in for the backend client.
package testing

import (
	"context"
	"sync"

	"github.com/kmctl-dev/kmctl/pkg/models"
)

// FakeBackend is a configurable fake of the backend client for controller
// and command tests. Function hooks take precedence over the data fields.
type FakeBackend struct {
	mu sync.Mutex

	Namespaces  []string
	Pods        map[string][]models.PodInfo
	Deployments map[string][]models.DeploymentInfo
	Services    map[string][]models.ServiceInfo

	// ListErr is returned by every list call when set.
	ListErr error
	// MutateErr is returned by every mutating call when set.
	MutateErr error
	// Response is returned by successful mutations; defaults to {ok, ""}.
	Response *models.StatusResponse

	ListNamespacesFn   func(ctx context.Context) ([]string, error)
	ListPodsFn         func(ctx context.Context, namespace string) ([]models.PodInfo, error)
	ListDeploymentsFn  func(ctx context.Context, namespace string) ([]models.DeploymentInfo, error)
	ListServicesFn     func(ctx context.Context, namespace string) ([]models.ServiceInfo, error)
	CreateResourceFn   func(ctx context.Context, req *models.CreateResourceRequest) (*models.StatusResponse, error)
	UpdateDeploymentFn func(ctx context.Context, req *models.UpdateDeploymentRequest) (*models.StatusResponse, error)

	// Recorded calls.
	ListCalls        int
	CreatedResources []*models.CreateResourceRequest
	CreatedApps      []*models.CreateApplicationRequest
	Deleted          []DeleteCall
	Updates          []*models.UpdateDeploymentRequest
}

// DeleteCall records one delete invocation.
type DeleteCall struct {
	Kind      models.ResourceKind
	Name      string
	Namespace string
}

// NewFakeBackend returns an empty fake.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Pods:        map[string][]models.PodInfo{},
		Deployments: map[string][]models.DeploymentInfo{},
		Services:    map[string][]models.ServiceInfo{},
	}
}

// MutationCount returns the number of mutating calls received so far.
func (f *FakeBackend) MutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.CreatedResources) + len(f.CreatedApps) + len(f.Deleted) + len(f.Updates)
}

func (f *FakeBackend) ListNamespaces(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	f.ListCalls++
	fn := f.ListNamespacesFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return []string{}, f.ListErr
	}
	return append([]string{}, f.Namespaces...), nil
}

func (f *FakeBackend) ListPods(ctx context.Context, namespace string) ([]models.PodInfo, error) {
	f.mu.Lock()
	f.ListCalls++
	fn := f.ListPodsFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, namespace)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return []models.PodInfo{}, f.ListErr
	}
	return append([]models.PodInfo{}, f.Pods[namespace]...), nil
}

func (f *FakeBackend) ListDeployments(ctx context.Context, namespace string) ([]models.DeploymentInfo, error) {
	f.mu.Lock()
	f.ListCalls++
	fn := f.ListDeploymentsFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, namespace)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return []models.DeploymentInfo{}, f.ListErr
	}
	return append([]models.DeploymentInfo{}, f.Deployments[namespace]...), nil
}

func (f *FakeBackend) ListServices(ctx context.Context, namespace string) ([]models.ServiceInfo, error) {
	f.mu.Lock()
	f.ListCalls++
	fn := f.ListServicesFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, namespace)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return []models.ServiceInfo{}, f.ListErr
	}
	return append([]models.ServiceInfo{}, f.Services[namespace]...), nil
}

func (f *FakeBackend) CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.StatusResponse, error) {
	f.mu.Lock()
	f.CreatedResources = append(f.CreatedResources, req)
	fn := f.CreateResourceFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return f.result()
}

func (f *FakeBackend) CreateApplication(_ context.Context, req *models.CreateApplicationRequest) (*models.StatusResponse, error) {
	f.mu.Lock()
	f.CreatedApps = append(f.CreatedApps, req)
	f.mu.Unlock()
	return f.result()
}

func (f *FakeBackend) DeletePod(_ context.Context, name, namespace string) (*models.StatusResponse, error) {
	return f.recordDelete(models.KindPod, name, namespace)
}

func (f *FakeBackend) DeleteDeployment(_ context.Context, name, namespace string) (*models.StatusResponse, error) {
	return f.recordDelete(models.KindDeployment, name, namespace)
}

func (f *FakeBackend) DeleteService(_ context.Context, name, namespace string) (*models.StatusResponse, error) {
	return f.recordDelete(models.KindService, name, namespace)
}

func (f *FakeBackend) UpdateDeployment(ctx context.Context, req *models.UpdateDeploymentRequest) (*models.StatusResponse, error) {
	f.mu.Lock()
	f.Updates = append(f.Updates, req)
	fn := f.UpdateDeploymentFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return f.result()
}

func (f *FakeBackend) recordDelete(kind models.ResourceKind, name, namespace string) (*models.StatusResponse, error) {
	f.mu.Lock()
	f.Deleted = append(f.Deleted, DeleteCall{Kind: kind, Name: name, Namespace: namespace})
	if f.MutateErr == nil {
		f.removeLocked(kind, name, namespace)
	}
	f.mu.Unlock()
	return f.result()
}

func (f *FakeBackend) removeLocked(kind models.ResourceKind, name, namespace string) {
	switch kind {
	case models.KindPod:
		f.Pods[namespace] = removeByName(f.Pods[namespace], name)
	case models.KindDeployment:
		f.Deployments[namespace] = removeByName(f.Deployments[namespace], name)
	case models.KindService:
		f.Services[namespace] = removeByName(f.Services[namespace], name)
	}
}

func removeByName[T models.Instance](items []T, name string) []T {
	out := items[:0:0]
	for _, it := range items {
		if it.Key().Name != name {
			out = append(out, it)
		}
	}
	return out
}

func (f *FakeBackend) result() (*models.StatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MutateErr != nil {
		return nil, f.MutateErr
	}
	if f.Response != nil {
		r := *f.Response
		return &r, nil
	}
	return &models.StatusResponse{Status: "ok"}, nil
}
