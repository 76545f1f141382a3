package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"snapgram/pkg/cache"
	"snapgram/pkg/logger"
	"snapgram/services/account/internal/entity"
	"snapgram/services/account/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("user profile not found")
	ErrNotSignedIn        = errors.New("no active session")
)

// SessionStore is the session half of the account backend.
type SessionStore interface {
	Create(ctx context.Context, accountID string) (*cache.Session, error)
	Get(ctx context.Context, id string) (*cache.Session, error)
	Delete(ctx context.Context, id string) error
}

type TokenIssuer interface {
	GenerateToken(accountID, sessionID string) (string, error)
}

type NewAccount struct {
	Name     string
	Username string
	Email    string
	Password string
}

type AccountUseCase interface {
	CreateAccount(ctx context.Context, input NewAccount) (*entity.User, error)
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)
	GetCurrentUser(ctx context.Context, sessionID string) (*entity.User, error)
	SignOut(ctx context.Context, sessionID string) error
}

type accountUseCase struct {
	accountRepo   persistent.AccountRepository
	userRepo      persistent.UserRepository
	sessions      SessionStore
	tokens        TokenIssuer
	avatarBaseURL string
	logger        *logger.Logger
}

func NewAccountUseCase(
	accountRepo persistent.AccountRepository,
	userRepo persistent.UserRepository,
	sessions SessionStore,
	tokens TokenIssuer,
	avatarBaseURL string,
	logger *logger.Logger,
) AccountUseCase {
	return &accountUseCase{
		accountRepo:   accountRepo,
		userRepo:      userRepo,
		sessions:      sessions,
		tokens:        tokens,
		avatarBaseURL: avatarBaseURL,
		logger:        logger,
	}
}

// CreateAccount creates the account and then its profile. A profile write
// failure is reported but the account is kept.
func (uc *accountUseCase) CreateAccount(ctx context.Context, input NewAccount) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := uc.accountRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, persistent.ErrNotFound) {
		uc.logger.Error("Failed to look up account %s: %v", email, err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process registration: %w", err)
	}

	account := &entity.Account{
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		uc.logger.Error("Failed to create account %s: %v", email, err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	username := input.Username
	if username == "" {
		username = input.Name
	}

	user := &entity.User{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Username:  username,
		ImageURL:  AvatarURL(uc.avatarBaseURL, account.Name),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.logger.Error("Account %s created but profile write failed: %v", account.ID, err)
		return nil, fmt.Errorf("failed to save user profile: %w", err)
	}

	return user, nil
}

func (uc *accountUseCase) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	account, err := uc.accountRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, persistent.ErrNotFound) {
			uc.logger.Error("Failed to look up account for sign-in: %v", err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	stored, err := uc.sessions.Create(ctx, account.ID)
	if err != nil {
		uc.logger.Error("Failed to create session for account %s: %v", account.ID, err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := uc.tokens.GenerateToken(account.ID, stored.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		if delErr := uc.sessions.Delete(ctx, stored.ID); delErr != nil {
			uc.logger.Warn("Failed to drop unusable session %s: %v", stored.ID, delErr)
		}
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &entity.Session{
		ID:        stored.ID,
		AccountID: stored.AccountID,
		Token:     token,
		CreatedAt: stored.CreatedAt,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

func (uc *accountUseCase) GetCurrentUser(ctx context.Context, sessionID string) (*entity.User, error) {
	if sessionID == "" {
		return nil, ErrNotSignedIn
	}

	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return nil, ErrNotSignedIn
		}
		uc.logger.Error("Failed to resolve session: %v", err)
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	account, err := uc.accountRepo.GetByID(ctx, session.AccountID)
	if err != nil {
		uc.logger.Error("Session %s points at unknown account %s: %v", sessionID, session.AccountID, err)
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}

	users, err := uc.userRepo.ListByAccountID(ctx, account.ID)
	if err != nil {
		uc.logger.Error("Failed to look up profile for account %s: %v", account.ID, err)
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if len(users) != 1 {
		uc.logger.Warn("Account %s has %d profiles", account.ID, len(users))
		return nil, ErrProfileNotFound
	}

	return users[0], nil
}

func (uc *accountUseCase) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNotSignedIn
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return ErrNotSignedIn
		}
		uc.logger.Error("Failed to delete session %s: %v", sessionID, err)
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}
