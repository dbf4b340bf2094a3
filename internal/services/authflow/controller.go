// Package authflow holds the sign-in/sign-up form state machine.
package authflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/mcoot/gamehub/internal/model"
)

// MinPasswordLength is the shortest password accepted at signup
const MinPasswordLength = 6

// Validation messages
const (
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

// Authenticator performs the network side of login and signup
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
}

// Form holds the modal's field values
type Form struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// State is a read-only view of the controller
type State struct {
	Mode    model.AuthMode
	Form    Form
	Loading bool
	Error   string
}

// Controller drives one auth modal: field state, validation, submission and errors.
// Only one submission may be in flight at a time.
type Controller struct {
	auth      Authenticator
	onSuccess func(*model.User)

	inFlight atomic.Bool

	mu      sync.Mutex
	mode    model.AuthMode
	form    Form
	loading bool
	errMsg  string
}

// New creates a Controller in the given mode.
// onSuccess is called with the authenticated user after a successful submit.
func New(auth Authenticator, mode model.AuthMode, onSuccess func(*model.User)) *Controller {
	if mode == "" {
		mode = model.AuthModeLogin
	}
	return &Controller{
		auth:      auth,
		onSuccess: onSuccess,
		mode:      mode,
	}
}

// Validate applies the local signup rules. Login has no local rules.
func Validate(mode model.AuthMode, form Form) error {
	if mode != model.AuthModeSignup {
		return nil
	}
	if form.Password != form.ConfirmPassword {
		return model.NewValidationError(MsgPasswordMismatch)
	}
	if len(form.Password) < MinPasswordLength {
		return model.NewValidationError(MsgPasswordTooShort)
	}
	return nil
}

// SetForm replaces the field values
func (c *Controller) SetForm(form Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

// State returns a snapshot of the controller
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Mode:    c.mode,
		Form:    c.form,
		Loading: c.loading,
		Error:   c.errMsg,
	}
}

// Submit validates and sends the form. Validation failures never reach the network.
// On failure the message is kept in State().Error and the error is returned.
func (c *Controller) Submit(ctx context.Context) (*model.User, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, model.ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	mode, form := c.mode, c.form
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	user, err := c.dispatch(ctx, mode, form)
	if err != nil {
		c.mu.Lock()
		c.errMsg = Message(err)
		c.mu.Unlock()
		return nil, err
	}

	if c.onSuccess != nil {
		c.onSuccess(user)
	}
	return user, nil
}

// Switch resets the form and flips the mode, returning the new mode
func (c *Controller) Switch() model.AuthMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = c.mode.Other()
	c.form = Form{}
	c.errMsg = ""
	return c.mode
}

func (c *Controller) dispatch(ctx context.Context, mode model.AuthMode, form Form) (*model.User, error) {
	if err := Validate(mode, form); err != nil {
		return nil, err
	}
	if mode == model.AuthModeSignup {
		return c.auth.Signup(ctx, form.Username, form.Email, form.Password)
	}
	return c.auth.Login(ctx, form.Email, form.Password)
}

// Message extracts the user-facing text of an auth failure
func Message(err error) string {
	var authErr *model.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	if errors.Is(err, model.ErrSubmitInFlight) {
		return "Please wait, your request is still being processed"
	}
	return err.Error()
}
