package console

import (
	"context"
	"errors"

	"github.com/canulcua123-source/vista-boss/internal/domain/model"
)

const msgCreateFailed = "Could not create the user"

// UserForm is the creation dialog's state: the entered values, the per-field
// validation messages and the submit guard. It is a transient child of the
// list view; on a successful create it fires the owner's callback exactly
// once and marks itself closed.
type UserForm struct {
	api     API
	notify  Notifier
	onAdded func(context.Context)

	input       model.NewUserInput
	fieldErrors map[string]string
	submitting  bool
	closed      bool
}

func NewUserForm(api API, notify Notifier, onAdded func(context.Context)) *UserForm {
	return &UserForm{
		api:     api,
		notify:  notify,
		onAdded: onAdded,
		input:   model.NewUserInput{Role: model.RoleMerchant},
	}
}

func (f *UserForm) SetInput(input model.NewUserInput) {
	f.input = input
}

// Input returns the entered values. They survive a failed submission so the
// operator can correct and retry.
func (f *UserForm) Input() model.NewUserInput {
	return f.input
}

// FieldErrors returns the inline validation messages from the last submit
// attempt, keyed by field name.
func (f *UserForm) FieldErrors() map[string]string {
	return f.fieldErrors
}

// Submitting reports whether the submit affordance is disabled.
func (f *UserForm) Submitting() bool {
	return f.submitting
}

func (f *UserForm) Closed() bool {
	return f.closed
}

// Submit validates the form and, only when every field passes, sends the
// create request. Validation failures never reach the network. The submit
// guard blocks a second request while one is in flight and is released on
// every outcome.
func (f *UserForm) Submit(ctx context.Context) {
	if f.submitting || f.closed {
		return
	}

	input := f.input
	input.Normalize()
	if fields := input.Validate(); len(fields) > 0 {
		f.fieldErrors = fields
		return
	}
	f.input = input
	f.fieldErrors = nil

	f.submitting = true
	_, err := f.api.CreateUser(ctx, input)
	f.submitting = false

	if err != nil {
		f.notify.Error(createErrorMessage(err))
		return
	}

	f.notify.Success("User " + input.Name + " created")
	f.closed = true
	if f.onAdded != nil {
		f.onAdded(ctx)
	}
}

// createErrorMessage surfaces the server-provided message when there is one.
func createErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return msgCreateFailed + ": " + apiErr.Message
	}
	return msgCreateFailed
}
