// Package form implements the sign-in and sign-up submission flows: synchronous
// validation, one submission in flight per form key, and a fixed transition on
// completion (reset and redirect home, or a generic notice).
package form

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"snapgram/services/account/internal/entity"
	"snapgram/services/account/internal/usecase"

	"github.com/go-playground/validator/v10"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
)

const (
	HomePath = "/"

	NoticeSignUpFailed = "Sign up failed. Please try again later."
	NoticeSignInFailed = "Sign in failed. Please try again later."
	NoticeInFlight     = "A submission is already in progress."
)

var ErrSubmissionInFlight = errors.New("submission already in flight")

// Accounts is the slice of the account adapter the forms drive.
type Accounts interface {
	CreateAccount(ctx context.Context, input usecase.NewAccount) (*entity.User, error)
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)
	GetCurrentUser(ctx context.Context, sessionID string) (*entity.User, error)
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// Outcome is the end state of one submission.
type Outcome struct {
	LoggedIn bool
	Reset    bool
	Redirect string
	Notice   string
	Errors   FieldErrors
	Session  *entity.Session
	User     *entity.User
}

// Validator wraps go-playground/validator with messages keyed by json names.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: v}
}

func (v *Validator) Check(values interface{}) FieldErrors {
	err := v.validate.Struct(values)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters.", fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters.", fe.Param())
		}
	}
	return fmt.Sprintf("Failed the %q rule.", fe.Tag())
}

// machine tracks editing/submitting for one form instance and holds the
// advisory in-flight guard while submitting.
type machine struct {
	mu    sync.Mutex
	state State
	guard Guard
	key   string
	token string
}

func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine) begin(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateSubmitting {
		return ErrSubmissionInFlight
	}
	if m.guard != nil {
		token, ok, err := m.guard.Acquire(ctx, m.key)
		if err != nil {
			return fmt.Errorf("failed to acquire submission guard: %w", err)
		}
		if !ok {
			return ErrSubmissionInFlight
		}
		m.token = token
	}
	m.state = StateSubmitting
	return nil
}

func (m *machine) end(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.guard != nil {
		m.guard.Release(ctx, m.key, m.token)
		m.token = ""
	}
	m.state = StateEditing
}
