package form

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kmctl-dev/kmctl/pkg/models"
)

const resourceFailureFallback = "failed to create resource, check the data and try again"

// ResourceCreator sends create requests to the backend.
type ResourceCreator interface {
	CreateResource(ctx context.Context, req *models.CreateResourceRequest) (*models.StatusResponse, error)
}

// State is the editable content of the resource form.
type State struct {
	Namespace string
	Name      string
	Fields    Fields
}

// Kind returns the kind of the state's fields.
func (s State) Kind() models.ResourceKind {
	if s.Fields == nil {
		return models.KindPod
	}
	return s.Fields.Kind()
}

func (s State) clone() State {
	c := s
	if s.Fields != nil {
		c.Fields = s.Fields.clone()
	}
	return c
}

// Request builds the outbound request from the state. Only the selected
// kind's fields are carried.
func (s State) Request() *models.CreateResourceRequest {
	req := &models.CreateResourceRequest{
		Name: strings.TrimSpace(s.Name),
		Spec: s.Fields.spec(),
	}
	if s.Kind().Namespaced() {
		req.Namespace = strings.TrimSpace(s.Namespace)
	}
	return req
}

// StateFromRequest converts a request into form state, e.g. one read from a file.
func StateFromRequest(req *models.CreateResourceRequest) State {
	return State{
		Namespace: req.Namespace,
		Name:      req.Name,
		Fields:    FieldsFromSpec(req.Spec),
	}
}

// Validate checks the state and returns the first failing rule.
func Validate(s State) error {
	kind := s.Kind()
	if kind.Namespaced() && blank(s.Namespace) {
		return fieldError("namespace", "namespace is required")
	}
	if blank(s.Name) {
		if kind == models.KindNamespace {
			return fieldError("name", "namespace name is required")
		}
		return fieldError("name", "name is required")
	}
	if s.Fields == nil {
		return fieldError("kind", "resource kind is required")
	}
	if err := s.Fields.validate(); err != nil {
		return err
	}
	return nil
}

// ResourceForm drives the create-resource form: per-kind inputs, validation,
// submission and the post-success reset.
type ResourceForm struct {
	mu      sync.Mutex
	creator ResourceCreator
	logger  *zap.Logger
	opts    options

	state State
	lc    lifecycle
}

// NewResourceForm returns a form with the pod kind selected.
func NewResourceForm(creator ResourceCreator, logger *zap.Logger, opts ...Option) *ResourceForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceForm{
		creator: creator,
		logger:  logger.Named("resource-form"),
		opts:    buildOptions(opts),
		state:   State{Fields: DefaultFields(models.KindPod)},
	}
}

// Kind returns the selected resource kind.
func (f *ResourceForm) Kind() models.ResourceKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Kind()
}

// SetKind selects a kind. All inputs go back to that kind's defaults, banners
// clear, and results of submissions started before the switch are ignored.
func (f *ResourceForm) SetKind(kind models.ResourceKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lc.bump()
	f.state = State{Fields: DefaultFields(kind)}
}

// State returns a copy of the current inputs.
func (f *ResourceForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Edit applies fn to the current inputs. fn must not replace Fields with
// another kind; use SetKind for that.
func (f *ResourceForm) Edit(fn func(s *State)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kind := f.state.Kind()
	next := f.state.clone()
	fn(&next)
	if next.Fields == nil || next.Fields.Kind() != kind {
		f.logger.Warn("ignoring edit that changes the resource kind")
		return
	}
	f.state = next
}

// Banner returns the current status message.
func (f *ResourceForm) Banner() Banner {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lc.banner()
}

// Submit validates the inputs and sends the create request. A validation
// failure never reaches the network. On failure the inputs are kept.
func (f *ResourceForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.lc.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	// A new attempt supersedes any reset still pending from an earlier success.
	f.lc.resetSeq++
	if err := Validate(f.state); err != nil {
		f.lc.status = StatusFailed
		f.lc.message = err.Error()
		f.mu.Unlock()
		return err
	}
	req := f.state.Request()
	kind := f.state.Kind()
	gen := f.lc.generation
	f.lc.status = StatusSubmitting
	f.lc.message = ""
	f.mu.Unlock()

	f.logger.Debug("submitting resource", zap.String("kind", string(kind)), zap.String("name", req.Name), zap.String("namespace", req.Namespace))
	resp, err := f.creator.CreateResource(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.lc.generation {
		f.logger.Debug("discarding result of superseded submission", zap.String("kind", string(kind)))
		return err
	}

	if err != nil {
		f.lc.status = StatusFailed
		f.lc.message = failureMessage(err, resourceFailureFallback)
		return err
	}

	f.lc.status = StatusSucceeded
	f.lc.message = kind.DisplayName() + " resource created successfully"
	if resp != nil && strings.TrimSpace(resp.Message) != "" {
		f.lc.message = resp.Message
	}
	f.lc.resetSeq++
	seq := f.lc.resetSeq
	f.opts.afterFunc(f.opts.resetDelay, func() { f.resetAfterSuccess(gen, seq) })
	return nil
}

// resetAfterSuccess restores the inputs to defaults, keeping the selected
// kind and namespace, unless the form moved on since the submit.
func (f *ResourceForm) resetAfterSuccess(gen, seq uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.lc.generation || seq != f.lc.resetSeq {
		return
	}
	f.state = State{
		Namespace: f.state.Namespace,
		Fields:    DefaultFields(f.state.Kind()),
	}
}
