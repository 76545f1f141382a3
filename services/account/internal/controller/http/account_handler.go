package http

import (
	"errors"
	"net/http"

	"snapgram/pkg/logger"
	"snapgram/pkg/middleware"
	"snapgram/services/account/internal/entity"
	"snapgram/services/account/internal/form"
	"snapgram/services/account/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	guard          form.Guard
	validator      *form.Validator
	logger         *logger.Logger
}

func NewAccountHandler(accountUseCase usecase.AccountUseCase, guard form.Guard, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		guard:          guard,
		validator:      form.NewValidator(),
		logger:         log,
	}
}

type AuthResponse struct {
	Token     string       `json:"token"`
	SessionID string       `json:"session_id"`
	Redirect  string       `json:"redirect"`
	User      *entity.User `json:"user"`
}

type FormErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// SignUp godoc
// @Summary      Create an account and sign in
// @Description  Creates the account and its profile, opens a session and returns the session token
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body form.SignUpValues true "Sign-up data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  FormErrorResponse
// @Failure      409  {object}  FormErrorResponse
// @Failure      500  {object}  FormErrorResponse
// @Router       /sign-up [post]
func (h *AccountHandler) SignUp(c *gin.Context) {
	var values form.SignUpValues
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, FormErrorResponse{Error: "Invalid request body"})
		return
	}

	f := form.NewSignUpForm(values, h.accountUseCase, h.guard, h.validator, h.logger)
	outcome, err := f.Submit(c.Request.Context())
	if err != nil {
		h.renderFailure(c, outcome, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse(outcome))
}

// SignIn godoc
// @Summary      Sign in
// @Description  Verifies the credentials, opens a session and returns the session token
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body form.SignInValues true "Credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  FormErrorResponse
// @Failure      401  {object}  FormErrorResponse
// @Failure      409  {object}  FormErrorResponse
// @Router       /sign-in [post]
func (h *AccountHandler) SignIn(c *gin.Context) {
	var values form.SignInValues
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, FormErrorResponse{Error: "Invalid request body"})
		return
	}

	f := form.NewSignInForm(values, h.accountUseCase, h.guard, h.validator, h.logger)
	outcome, err := f.Submit(c.Request.Context())
	if err != nil {
		h.renderFailure(c, outcome, err)
		return
	}

	c.JSON(http.StatusOK, authResponse(outcome))
}

// SignOut godoc
// @Summary      Sign out
// @Description  Deletes the current session
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /sign-out [post]
func (h *AccountHandler) SignOut(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)

	if err := h.accountUseCase.SignOut(c.Request.Context(), sessionID); err != nil {
		if errors.Is(err, usecase.ErrNotSignedIn) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me godoc
// @Summary      Get current user
// @Description  Resolves the profile of the signed-in account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)

	user, err := h.accountUseCase.GetCurrentUser(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotSignedIn):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		case errors.Is(err, usecase.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AccountHandler) renderFailure(c *gin.Context, outcome *form.Outcome, err error) {
	var fieldErrs form.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, FormErrorResponse{Error: "Validation failed", Fields: fieldErrs})
	case errors.Is(err, form.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, FormErrorResponse{Error: outcome.Notice})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, FormErrorResponse{Error: outcome.Notice})
	default:
		c.JSON(http.StatusInternalServerError, FormErrorResponse{Error: outcome.Notice})
	}
}

func authResponse(outcome *form.Outcome) AuthResponse {
	return AuthResponse{
		Token:     outcome.Session.Token,
		SessionID: outcome.Session.ID,
		Redirect:  outcome.Redirect,
		User:      outcome.User,
	}
}
