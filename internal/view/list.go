// Package view holds the list controller behind the pods, deployments and
// services screens.
package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kmctl-dev/kmctl/pkg/models"
)

var (
	// ErrBusy is returned when a mutation is attempted while the view is
	// loading or another mutation is in flight.
	ErrBusy = errors.New("the list is busy, try again when loading finishes")
	// ErrNoPendingDelete is returned by ConfirmDelete without a prior RequestDelete.
	ErrNoPendingDelete = errors.New("no delete is awaiting confirmation")
	// ErrNothingToUpdate is returned when an update draft changes neither image nor replicas.
	ErrNothingToUpdate = errors.New("nothing to update")
	// ErrNoNamespace is returned when instances are requested before a namespace is selected.
	ErrNoNamespace = errors.New("no namespace selected")
)

// Tab is one of the list screens.
type Tab string

const (
	TabPods        Tab = "pods"
	TabDeployments Tab = "deployments"
	TabServices    Tab = "services"
)

// Tabs lists the screens in display order.
var Tabs = []Tab{TabPods, TabDeployments, TabServices}

// Kind returns the resource kind listed on the tab.
func (t Tab) Kind() models.ResourceKind {
	switch t {
	case TabDeployments:
		return models.KindDeployment
	case TabServices:
		return models.KindService
	default:
		return models.KindPod
	}
}

// TabForKind returns the tab listing kind.
func TabForKind(kind models.ResourceKind) (Tab, error) {
	switch kind {
	case models.KindPod:
		return TabPods, nil
	case models.KindDeployment:
		return TabDeployments, nil
	case models.KindService:
		return TabServices, nil
	}
	return "", fmt.Errorf("%s resources cannot be listed", kind)
}

// Phase is the load state of the list.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Backend is the subset of the API client the list controller needs.
type Backend interface {
	ListNamespaces(ctx context.Context) ([]string, error)
	ListPods(ctx context.Context, namespace string) ([]models.PodInfo, error)
	ListDeployments(ctx context.Context, namespace string) ([]models.DeploymentInfo, error)
	ListServices(ctx context.Context, namespace string) ([]models.ServiceInfo, error)
	DeletePod(ctx context.Context, name, namespace string) (*models.StatusResponse, error)
	DeleteDeployment(ctx context.Context, name, namespace string) (*models.StatusResponse, error)
	DeleteService(ctx context.Context, name, namespace string) (*models.StatusResponse, error)
	UpdateDeployment(ctx context.Context, req *models.UpdateDeploymentRequest) (*models.StatusResponse, error)
}

// PendingDelete is a delete awaiting confirmation.
type PendingDelete struct {
	Kind      models.ResourceKind
	Name      string
	Namespace string
	Message   string
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Namespaces    []string
	Namespace     string
	Tab           Tab
	Phase         Phase
	Instances     []models.Instance
	Error         string
	Notice        string
	Busy          bool
	PendingDelete *PendingDelete
}

// ListController loads and mutates the objects of one tab in one namespace.
type ListController struct {
	mu      sync.Mutex
	backend Backend
	logger  *zap.Logger

	namespaces []string
	namespace  string
	tab        Tab
	phase      Phase
	instances  []models.Instance
	errMsg     string
	notice     string
	busy       bool
	pending    *PendingDelete
	generation uint64
}

// NewListController returns a controller showing the pods tab.
func NewListController(backend Backend, logger *zap.Logger) *ListController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListController{
		backend:    backend,
		logger:     logger.Named("list"),
		tab:        TabPods,
		namespaces: []string{},
		instances:  []models.Instance{},
	}
}

// Snapshot returns a copy of the current state.
func (c *ListController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Namespaces: append([]string{}, c.namespaces...),
		Namespace:  c.namespace,
		Tab:        c.tab,
		Phase:      c.phase,
		Instances:  append([]models.Instance{}, c.instances...),
		Error:      c.errMsg,
		Notice:     c.notice,
		Busy:       c.busy,
	}
	if c.pending != nil {
		p := *c.pending
		s.PendingDelete = &p
	}
	return s
}

// DismissMessages clears the error and notice banners.
func (c *ListController) DismissMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
	c.notice = ""
}

// LoadNamespaces fetches the namespace names. On failure the list is empty and
// the error is recorded in the state as well as returned. When no namespace is
// selected the first one is.
func (c *ListController) LoadNamespaces(ctx context.Context) error {
	namespaces, err := c.backend.ListNamespaces(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if namespaces == nil {
		namespaces = []string{}
	}
	c.namespaces = namespaces
	if err != nil {
		c.logger.Warn("failed to load namespaces", zap.Error(err))
		c.errMsg = "failed to load namespaces, check that the backend is running"
		return fmt.Errorf("failed to load namespaces: %w", err)
	}
	if c.namespace == "" && len(namespaces) > 0 {
		c.namespace = namespaces[0]
		c.logger.Debug("selected first namespace", zap.String("namespace", c.namespace))
	}
	return nil
}

// LoadInstances fetches the selected tab's objects in the selected namespace
// and replaces the list. A response arriving after the selection changed is
// dropped.
func (c *ListController) LoadInstances(ctx context.Context) error {
	c.mu.Lock()
	if c.namespace == "" {
		c.mu.Unlock()
		return ErrNoNamespace
	}
	c.generation++
	gen := c.generation
	tab, namespace := c.tab, c.namespace
	c.phase = PhaseLoading
	c.errMsg = ""
	c.mu.Unlock()

	items, err := c.fetch(ctx, tab, namespace)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug("dropping stale list response", zap.String("tab", string(tab)), zap.String("namespace", namespace))
		return nil
	}
	c.instances = items
	if err != nil {
		c.logger.Warn("failed to load instances", zap.String("tab", string(tab)), zap.String("namespace", namespace), zap.Error(err))
		c.phase = PhaseErrored
		c.errMsg = fmt.Sprintf("failed to load %s, check that the backend is running", tab)
		return fmt.Errorf("failed to load %s in %s: %w", tab, namespace, err)
	}
	c.phase = PhaseLoaded
	return nil
}

// Refresh loads the namespaces and then the selected tab.
func (c *ListController) Refresh(ctx context.Context) error {
	if err := c.LoadNamespaces(ctx); err != nil {
		return err
	}
	return c.LoadInstances(ctx)
}

// SelectNamespace switches namespace and reloads.
func (c *ListController) SelectNamespace(ctx context.Context, namespace string) error {
	c.mu.Lock()
	c.namespace = namespace
	c.pending = nil
	c.mu.Unlock()
	return c.LoadInstances(ctx)
}

// SelectTab switches tab and reloads. Without a selected namespace there is
// nothing to load yet.
func (c *ListController) SelectTab(ctx context.Context, tab Tab) error {
	c.mu.Lock()
	c.tab = tab
	c.pending = nil
	namespace := c.namespace
	c.mu.Unlock()
	if namespace == "" {
		return nil
	}
	return c.LoadInstances(ctx)
}

// Filter returns the loaded objects matching term.
func (c *ListController) Filter(term string) []models.Instance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterInstances(c.instances, term)
}

// Find returns the loaded object called name.
func (c *ListController) Find(name string) (models.Instance, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.instances {
		if item.Key().Name == name {
			return item, true
		}
	}
	return nil, false
}

// FilterInstances keeps the items whose name or secondary field contains term,
// ignoring case. An empty term keeps everything.
func FilterInstances(items []models.Instance, term string) []models.Instance {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Instance, 0, len(items))
	for _, item := range items {
		if needle == "" || matches(item, needle) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item models.Instance, needle string) bool {
	for _, field := range item.FilterFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (c *ListController) fetch(ctx context.Context, tab Tab, namespace string) ([]models.Instance, error) {
	switch tab {
	case TabDeployments:
		items, err := c.backend.ListDeployments(ctx, namespace)
		return toInstances(items), err
	case TabServices:
		items, err := c.backend.ListServices(ctx, namespace)
		return toInstances(items), err
	default:
		items, err := c.backend.ListPods(ctx, namespace)
		return toInstances(items), err
	}
}

func toInstances[T models.Instance](items []T) []models.Instance {
	out := make([]models.Instance, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
