package form

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kmctl-dev/kmctl/pkg/models"
)

const applicationFailureFallback = "failed to create application, check the data and try again"

// ApplicationCreator sends composite create requests to the backend.
type ApplicationCreator interface {
	CreateApplication(ctx context.Context, req *models.CreateApplicationRequest) (*models.StatusResponse, error)
}

// ApplicationState is the editable content of the application form.
type ApplicationState struct {
	Namespace     string
	Name          string
	Image         string
	Replicas      int32
	ContainerPort int32
	ServiceType   string
	ServicePort   int32
	TargetPort    int32
	Env           Rows
}

// DefaultApplicationState returns the initial inputs of the application form.
func DefaultApplicationState() ApplicationState {
	return ApplicationState{
		Replicas:      defaultReplicas,
		ContainerPort: defaultContainerPort,
		ServiceType:   defaultServiceType,
		ServicePort:   defaultServicePort,
		TargetPort:    defaultTargetPort,
		Env:           NewRows(),
	}
}

func (s ApplicationState) clone() ApplicationState {
	c := s
	c.Env = s.Env.clone()
	return c
}

// Request builds the outbound request. Env rows missing a key or a value are
// left out without failing validation.
func (s ApplicationState) Request() *models.CreateApplicationRequest {
	env := s.Env.ToMap()
	if len(env) == 0 {
		env = nil
	}
	return &models.CreateApplicationRequest{
		Namespace:     strings.TrimSpace(s.Namespace),
		Name:          strings.TrimSpace(s.Name),
		Image:         strings.TrimSpace(s.Image),
		Replicas:      s.Replicas,
		ContainerPort: s.ContainerPort,
		ServiceType:   strings.TrimSpace(s.ServiceType),
		ServicePort:   s.ServicePort,
		TargetPort:    s.TargetPort,
		Env:           env,
	}
}

// ValidateApplication checks the state and returns the first failing rule.
func ValidateApplication(s ApplicationState) error {
	switch {
	case blank(s.Namespace):
		return fieldError("namespace", "namespace is required")
	case blank(s.Name):
		return fieldError("name", "name is required")
	case blank(s.Image):
		return fieldError("image", "image is required")
	case s.Replicas < 1:
		return fieldError("replicas", "replicas must be greater than 0")
	case !validPort(s.ContainerPort):
		return fieldError("containerPort", "container port must be between 1 and 65535")
	case !ServiceTypes.Has(strings.TrimSpace(s.ServiceType)):
		return fieldError("serviceType", "service type must be one of ClusterIP, ExternalName, LoadBalancer, NodePort")
	case !validPort(s.ServicePort):
		return fieldError("servicePort", "service port must be between 1 and 65535")
	case !validPort(s.TargetPort):
		return fieldError("targetPort", "target port must be between 1 and 65535")
	}
	return nil
}

// ApplicationForm drives the create-application form.
type ApplicationForm struct {
	mu      sync.Mutex
	creator ApplicationCreator
	logger  *zap.Logger
	opts    options

	state ApplicationState
	lc    lifecycle
}

// NewApplicationForm returns a form holding the default inputs.
func NewApplicationForm(creator ApplicationCreator, logger *zap.Logger, opts ...Option) *ApplicationForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationForm{
		creator: creator,
		logger:  logger.Named("application-form"),
		opts:    buildOptions(opts),
		state:   DefaultApplicationState(),
	}
}

// State returns a copy of the current inputs.
func (f *ApplicationForm) State() ApplicationState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Edit applies fn to the current inputs.
func (f *ApplicationForm) Edit(fn func(s *ApplicationState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.state.clone()
	fn(&next)
	if len(next.Env) == 0 {
		next.Env = NewRows()
	}
	f.state = next
}

// Reset restores the defaults, clears the banner and ignores results of
// submissions started before the reset.
func (f *ApplicationForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lc.bump()
	f.state = DefaultApplicationState()
}

// Banner returns the current status message.
func (f *ApplicationForm) Banner() Banner {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lc.banner()
}

// Submit validates the inputs and sends the create request.
func (f *ApplicationForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.lc.status == StatusSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	// A new attempt supersedes any reset still pending from an earlier success.
	f.lc.resetSeq++
	if err := ValidateApplication(f.state); err != nil {
		f.lc.status = StatusFailed
		f.lc.message = err.Error()
		f.mu.Unlock()
		return err
	}
	req := f.state.Request()
	gen := f.lc.generation
	f.lc.status = StatusSubmitting
	f.lc.message = ""
	f.mu.Unlock()

	f.logger.Debug("submitting application", zap.String("name", req.Name), zap.String("namespace", req.Namespace), zap.Int("env", len(req.Env)))
	resp, err := f.creator.CreateApplication(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.lc.generation {
		return err
	}
	if err != nil {
		f.lc.status = StatusFailed
		f.lc.message = failureMessage(err, applicationFailureFallback)
		return err
	}

	f.lc.status = StatusSucceeded
	f.lc.message = "Application created successfully"
	if resp != nil && strings.TrimSpace(resp.Message) != "" {
		f.lc.message = resp.Message
	}
	f.lc.resetSeq++
	seq := f.lc.resetSeq
	f.opts.afterFunc(f.opts.resetDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if gen != f.lc.generation || seq != f.lc.resetSeq {
			return
		}
		ns := f.state.Namespace
		f.state = DefaultApplicationState()
		f.state.Namespace = ns
	})
	return nil
}
