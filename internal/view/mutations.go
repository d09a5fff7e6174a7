package view

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kmctl-dev/kmctl/pkg/models"
)

// RequestDelete records a delete awaiting confirmation. Nothing is sent until
// ConfirmDelete.
func (c *ListController) RequestDelete(kind models.ResourceKind, name, namespace string) (*PendingDelete, error) {
	if _, err := TabForKind(kind); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(namespace) == "" {
		return nil, fmt.Errorf("a name and a namespace are required to delete a %s", kind)
	}
	p := &PendingDelete{
		Kind:      kind,
		Name:      name,
		Namespace: namespace,
		Message:   fmt.Sprintf("Delete %s %q from namespace %q? This cannot be undone.", kind, name, namespace),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = p
	cp := *p
	return &cp, nil
}

// CancelDelete drops the pending delete.
func (c *ListController) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// ConfirmDelete sends the pending delete and, when it targets what is on
// screen, reloads the list.
func (c *ListController) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return ErrNoPendingDelete
	}
	if c.busy || c.phase == PhaseLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	p := *c.pending
	c.pending = nil
	c.busy = true
	c.mu.Unlock()

	resp, err := c.delete(ctx, p)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.logger.Warn("delete failed", zap.String("kind", string(p.Kind)), zap.String("name", p.Name), zap.Error(err))
		c.errMsg = err.Error()
		c.mu.Unlock()
		return err
	}
	c.notice = fmt.Sprintf("%s %s deleted", p.Kind.DisplayName(), p.Name)
	if resp != nil && strings.TrimSpace(resp.Message) != "" {
		c.notice = resp.Message
	}
	reload := p.Namespace == c.namespace && p.Kind == c.tab.Kind()
	c.mu.Unlock()

	c.logger.Info("deleted", zap.String("kind", string(p.Kind)), zap.String("name", p.Name), zap.String("namespace", p.Namespace))
	if reload {
		return c.LoadInstances(ctx)
	}
	return nil
}

func (c *ListController) delete(ctx context.Context, p PendingDelete) (*models.StatusResponse, error) {
	switch p.Kind {
	case models.KindDeployment:
		return c.backend.DeleteDeployment(ctx, p.Name, p.Namespace)
	case models.KindService:
		return c.backend.DeleteService(ctx, p.Name, p.Namespace)
	default:
		return c.backend.DeletePod(ctx, p.Name, p.Namespace)
	}
}

// UpdateDraft is an editable copy of a deployment's image and replica count.
// A blank Image or a Replicas below 1 leaves that field unchanged.
type UpdateDraft struct {
	Namespace string
	Name      string
	Image     string
	Replicas  int32

	seedImage    string
	seedReplicas int32
}

// RequestUpdate opens a draft seeded from d.
func (c *ListController) RequestUpdate(d models.DeploymentInfo) UpdateDraft {
	return UpdateDraft{
		Namespace:    d.Namespace,
		Name:         d.Name,
		Image:        d.Image,
		Replicas:     d.Replicas,
		seedImage:    d.Image,
		seedReplicas: d.Replicas,
	}
}

// Request returns the update body carrying only provided, changed fields.
func (d UpdateDraft) Request() (*models.UpdateDeploymentRequest, error) {
	req := &models.UpdateDeploymentRequest{Namespace: d.Namespace, Name: d.Name}
	if image := strings.TrimSpace(d.Image); image != "" && image != d.seedImage {
		req.Image = image
	}
	if d.Replicas > 0 && d.Replicas != d.seedReplicas {
		replicas := d.Replicas
		req.Replicas = &replicas
	}
	if req.Image == "" && req.Replicas == nil {
		if strings.TrimSpace(d.Image) == "" && d.Replicas <= 0 {
			return nil, fmt.Errorf("%w: provide a new image or a replica count greater than 0", ErrNothingToUpdate)
		}
		return nil, fmt.Errorf("%w: deployment %s already runs image %q with %d replicas", ErrNothingToUpdate, d.Name, d.seedImage, d.seedReplicas)
	}
	return req, nil
}

// SubmitUpdate sends the draft and reloads the list on success. A draft that
// changes nothing is rejected without a network call.
func (c *ListController) SubmitUpdate(ctx context.Context, draft UpdateDraft) error {
	req, err := draft.Request()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.busy || c.phase == PhaseLoading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	resp, err := c.backend.UpdateDeployment(ctx, req)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.logger.Warn("update failed", zap.String("name", req.Name), zap.Error(err))
		c.errMsg = err.Error()
		c.mu.Unlock()
		return err
	}
	c.notice = fmt.Sprintf("Deployment %s updated", req.Name)
	if resp != nil && strings.TrimSpace(resp.Message) != "" {
		c.notice = resp.Message
	}
	reload := req.Namespace == c.namespace && c.tab == TabDeployments
	c.mu.Unlock()

	if reload {
		return c.LoadInstances(ctx)
	}
	return nil
}
