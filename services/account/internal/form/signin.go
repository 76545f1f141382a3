package form

import (
	"context"
	"strings"

	"snapgram/pkg/logger"
)

type SignInValues struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInForm struct {
	machine
	Values SignInValues

	accounts  Accounts
	validator *Validator
	logger    *logger.Logger
}

func NewSignInForm(values SignInValues, accounts Accounts, guard Guard, v *Validator, log *logger.Logger) *SignInForm {
	return &SignInForm{
		machine:   machine{state: StateEditing, guard: guard, key: "sign-in:" + strings.ToLower(values.Email)},
		Values:    values,
		accounts:  accounts,
		validator: v,
		logger:    log,
	}
}

// Submit runs sign in followed by the current-user check.
func (f *SignInForm) Submit(ctx context.Context) (*Outcome, error) {
	if errs := f.validator.Check(f.Values); errs != nil {
		return &Outcome{Errors: errs}, errs
	}

	if err := f.begin(ctx); err != nil {
		return &Outcome{Notice: NoticeInFlight}, err
	}
	defer f.end(ctx)

	session, err := f.accounts.SignIn(ctx, f.Values.Email, f.Values.Password)
	if err != nil {
		f.logger.Warn("Sign in failed for %s: %v", f.Values.Email, err)
		return &Outcome{Notice: NoticeSignInFailed}, err
	}

	user, err := f.accounts.GetCurrentUser(ctx, session.ID)
	if err != nil {
		f.logger.Warn("Signed in but no current user for %s: %v", f.Values.Email, err)
		return &Outcome{Notice: NoticeSignInFailed}, err
	}

	f.Values = SignInValues{}
	return &Outcome{
		LoggedIn: true,
		Reset:    true,
		Redirect: HomePath,
		Session:  session,
		User:     user,
	}, nil
}
