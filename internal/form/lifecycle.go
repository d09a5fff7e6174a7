package form

import (
	"errors"
	"strings"
	"time"

	"github.com/kmctl-dev/kmctl/internal/client"
)

// DefaultResetDelay is how long a success banner shows before the inputs reset.
const DefaultResetDelay = 2 * time.Second

// Status is the submission state of a form.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Banner is the message shown next to the form.
type Banner struct {
	Status  Status
	Message string
}

// Option configures a form controller.
type Option func(*options)

type options struct {
	resetDelay time.Duration
	afterFunc  func(time.Duration, func())
}

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(d time.Duration) Option {
	return func(o *options) { o.resetDelay = d }
}

// WithAfterFunc replaces time.AfterFunc for scheduling the post-success reset.
func WithAfterFunc(fn func(time.Duration, func())) Option {
	return func(o *options) { o.afterFunc = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		resetDelay: DefaultResetDelay,
		afterFunc:  func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// lifecycle tracks one form's submit state. generation changes whenever the
// form is replaced, so results of older submissions can be recognised.
type lifecycle struct {
	status     Status
	message    string
	generation uint64
	resetSeq   uint64
}

func (l *lifecycle) banner() Banner {
	return Banner{Status: l.status, Message: l.message}
}

func (l *lifecycle) clear() {
	l.status = StatusIdle
	l.message = ""
}

func (l *lifecycle) bump() {
	l.generation++
	l.resetSeq++
	l.clear()
}

// failureMessage picks the message shown for a failed submit.
func failureMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return fallback
}
