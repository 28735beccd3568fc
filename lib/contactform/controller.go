// Package contactform holds the state of one contact form instance.
//
// A form moves Idle -> Submitting -> Settled. A successful submission clears the
// fields and falls back to Idle after the display duration; a failed one stays
// Settled until the next attempt. Only one submission is in flight at a time.
package contactform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oliverisaac/portfolio/lib/contactclient"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type State int

const (
	Idle State = iota
	Submitting
	Settled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Settled:
		return "settled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	DefaultDisplayDuration = 5 * time.Second

	DefaultSuccessMessage    = "Thank you for your message! I'll get back to you soon."
	DefaultFailureMessage    = "Failed to send message. Please try again."
	UnexpectedFailureMessage = "An unexpected error occurred. Please try again later."
)

var (
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrSubmitting     = errors.New("the form is disabled while submitting")
)

// Submitter sends a contact form. *contactclient.Client satisfies it.
type Submitter interface {
	SubmitContact(ctx context.Context, data types.ContactFormData) (types.ApiResponse[types.ContactReceipt], error)
}

type Option func(*Controller)

func WithDisplayDuration(d time.Duration) Option {
	return func(c *Controller) {
		c.displayFor = d
	}
}

// WithAfterFunc replaces time.AfterFunc for scheduling the return to Idle.
// f must run asynchronously, never before WithAfterFunc's caller returns.
func WithAfterFunc(f func(time.Duration, func()) (stop func() bool)) Option {
	return func(c *Controller) {
		c.afterFunc = f
	}
}

type Controller struct {
	submitter  Submitter
	displayFor time.Duration
	afterFunc  func(time.Duration, func()) func() bool

	mu          sync.Mutex
	state       State
	form        types.ContactFormData
	statusKind  string
	statusMsg   string
	fieldErrors map[string]string
	generation  uint64
	stopTimer   func() bool
}

func New(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		submitter:  submitter,
		displayFor: DefaultDisplayDuration,
		afterFunc: func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetField updates one of name, email or message.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return ErrSubmitting
	}

	switch field {
	case "name":
		c.form.Name = value
	case "email":
		c.form.Email = value
	case "message":
		c.form.Message = value
	default:
		return fmt.Errorf("unknown contact form field %q", field)
	}
	return nil
}

// SetForm replaces all three fields at once.
func (c *Controller) SetForm(data types.ContactFormData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return ErrSubmitting
	}
	c.form = data
	return nil
}

// Snapshot returns a copy of the form state for rendering.
func (c *Controller) Snapshot() types.ContactFormView {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := types.ContactFormView{
		Form:          c.form,
		Submitting:    c.state == Submitting,
		StatusKind:    c.statusKind,
		StatusMessage: c.statusMsg,
	}
	if len(c.fieldErrors) > 0 {
		v.FieldErrors = make(map[string]string, len(c.fieldErrors))
		for k, msg := range c.fieldErrors {
			v.FieldErrors[k] = msg
		}
	}
	return v
}

// Submit sends the current form and blocks until the backend answers.
// The returned error is ErrSubmitInFlight when another submission is pending;
// backend failures are recorded in the form state, not returned.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state == Submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if c.stopTimer != nil {
		c.stopTimer()
		c.stopTimer = nil
	}
	c.state = Submitting
	c.statusKind = ""
	c.statusMsg = ""
	c.fieldErrors = nil
	c.generation++
	data := c.form
	c.mu.Unlock()

	resp, err := c.submitter.SubmitContact(ctx, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Settled
	if err != nil {
		c.settleError(err)
		return nil
	}
	if !resp.Success {
		// contactclient never does this; other submitters might.
		c.statusKind = types.StatusError
		c.statusMsg = firstNonEmpty(resp.Message, DefaultFailureMessage)
		return nil
	}

	c.form = types.ContactFormData{}
	c.statusKind = types.StatusSuccess
	c.statusMsg = firstNonEmpty(resp.Message, DefaultSuccessMessage)

	gen := c.generation
	c.stopTimer = c.afterFunc(c.displayFor, func() {
		c.expire(gen)
	})
	return nil
}

func (c *Controller) settleError(err error) {
	c.statusKind = types.StatusError

	apiErr, ok := contactclient.AsApiError(err)
	if !ok {
		logrus.Error(errors.Wrap(err, "submitting contact form"))
		c.statusMsg = UnexpectedFailureMessage
		return
	}

	logrus.WithField("kind", apiErr.Kind).WithField("status", apiErr.Status).Warn(apiErr.Message)
	switch apiErr.Kind {
	case contactclient.KindTransport:
		c.statusMsg = contactclient.NetworkErrorMessage
	default:
		c.fieldErrors = apiErr.FieldErrors()
		c.statusMsg = firstNonEmpty(apiErr.Message, DefaultFailureMessage)
	}
}

func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != gen || c.state != Settled || c.statusKind != types.StatusSuccess {
		return
	}
	c.state = Idle
	c.statusKind = ""
	c.statusMsg = ""
	c.stopTimer = nil
}

// Close stops a pending return to Idle.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopTimer != nil {
		c.stopTimer()
		c.stopTimer = nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
