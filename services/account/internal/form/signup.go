package form

import (
	"context"
	"strings"

	"snapgram/pkg/logger"
	"snapgram/services/account/internal/usecase"
)

type SignUpValues struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Username string `json:"username" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignUpForm struct {
	machine
	Values SignUpValues

	accounts  Accounts
	validator *Validator
	logger    *logger.Logger
}

func NewSignUpForm(values SignUpValues, accounts Accounts, guard Guard, v *Validator, log *logger.Logger) *SignUpForm {
	return &SignUpForm{
		machine:   machine{state: StateEditing, guard: guard, key: "sign-up:" + strings.ToLower(values.Email)},
		Values:    values,
		accounts:  accounts,
		validator: v,
		logger:    log,
	}
}

// Submit chains create account, sign in and the current-user check. Any step
// failing ends the submission with the same notice and keeps the values.
func (f *SignUpForm) Submit(ctx context.Context) (*Outcome, error) {
	if errs := f.validator.Check(f.Values); errs != nil {
		return &Outcome{Errors: errs}, errs
	}

	if err := f.begin(ctx); err != nil {
		return &Outcome{Notice: NoticeInFlight}, err
	}
	defer f.end(ctx)

	if _, err := f.accounts.CreateAccount(ctx, usecase.NewAccount{
		Name:     f.Values.Name,
		Username: f.Values.Username,
		Email:    f.Values.Email,
		Password: f.Values.Password,
	}); err != nil {
		f.logger.Warn("Sign up failed creating account for %s: %v", f.Values.Email, err)
		return &Outcome{Notice: NoticeSignUpFailed}, err
	}

	session, err := f.accounts.SignIn(ctx, f.Values.Email, f.Values.Password)
	if err != nil {
		f.logger.Warn("Sign up failed signing in %s: %v", f.Values.Email, err)
		return &Outcome{Notice: NoticeSignUpFailed}, err
	}

	user, err := f.accounts.GetCurrentUser(ctx, session.ID)
	if err != nil {
		f.logger.Warn("Sign up failed confirming session for %s: %v", f.Values.Email, err)
		return &Outcome{Notice: NoticeSignUpFailed}, err
	}

	f.Values = SignUpValues{}
	return &Outcome{
		LoggedIn: true,
		Reset:    true,
		Redirect: HomePath,
		Session:  session,
		User:     user,
	}, nil
}
