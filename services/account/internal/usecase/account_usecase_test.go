package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"snapgram/pkg/cache"
	"snapgram/pkg/database"
	"snapgram/pkg/jwt"
	"snapgram/pkg/logger"
	"snapgram/services/account/internal/entity"
	"snapgram/services/account/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*cache.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]*cache.Session{}}
}

func (m *memorySessions) Create(_ context.Context, accountID string) (*cache.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &cache.Session{ID: uuid.New().String(), AccountID: accountID, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memorySessions) Get(_ context.Context, id string) (*cache.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, cache.ErrSessionNotFound
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return cache.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ListByAccountID(ctx context.Context, accountID string) ([]*entity.User, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

type fixture struct {
	uc       AccountUseCase
	accounts persistent.AccountRepository
	sessions *memorySessions
}

func newFixture(t *testing.T, userRepo persistent.UserRepository) *fixture {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	accounts := persistent.NewAccountRepository(db)
	if userRepo == nil {
		userRepo = persistent.NewUserRepository(db)
	}
	sessions := newMemorySessions()
	uc := NewAccountUseCase(accounts, userRepo, sessions, jwt.NewService("test-secret"), "http://accounts.local", logger.NewNop())
	return &fixture{uc: uc, accounts: accounts, sessions: sessions}
}

func TestCreateAccount_PersistsProfile(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	user, err := f.uc.CreateAccount(ctx, NewAccount{Name: "Ann Lee", Username: "ann", Email: "Ann@Example.com", Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.AccountID)
	assert.Equal(t, "Ann Lee", user.Name)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, "http://accounts.local/api/v1/avatars/initials?name=Ann+Lee", user.ImageURL)
}

func TestCreateAccount_UsernameDefaultsToName(t *testing.T) {
	f := newFixture(t, nil)

	user, err := f.uc.CreateAccount(context.Background(), NewAccount{Name: "Bo", Email: "bo@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bo", user.Username)
}

func TestCreateAccount_EmailTaken(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.CreateAccount(ctx, NewAccount{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = f.uc.CreateAccount(ctx, NewAccount{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateAccount_ProfileFailureKeepsAccount(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	f := newFixture(t, users)
	ctx := context.Background()

	user, err := f.uc.CreateAccount(ctx, NewAccount{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	assert.Nil(t, user)
	assert.Error(t, err)

	// the account is not rolled back
	account, err := f.accounts.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", account.Name)
	users.AssertExpectations(t)
}

func TestSignIn_AndGetCurrentUser(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.uc.CreateAccount(ctx, NewAccount{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	session, err := f.uc.SignIn(ctx, "ann@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, created.AccountID, session.AccountID)

	current, err := f.uc.GetCurrentUser(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.CreateAccount(ctx, NewAccount{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)

	session, err := f.uc.SignIn(ctx, "ann@example.com", "wrong-password")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, f.sessions.sessions)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.SignIn(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetCurrentUser_NoProfile(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	users.On("ListByAccountID", mock.Anything, mock.Anything).Return([]*entity.User{}, nil)
	f := newFixture(t, users)
	ctx := context.Background()

	_, err := f.uc.CreateAccount(ctx, NewAccount{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	require.Error(t, err)

	session, err := f.uc.SignIn(ctx, "ann@example.com", "password123")
	require.NoError(t, err)

	_, err = f.uc.GetCurrentUser(ctx, session.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetCurrentUser_UnknownSession(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.GetCurrentUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, err = f.uc.GetCurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestSignOut_DeletesCurrentSession(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.CreateAccount(ctx, NewAccount{Name: "Ann", Email: "ann@example.com", Password: "password123"})
	require.NoError(t, err)
	session, err := f.uc.SignIn(ctx, "ann@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, f.uc.SignOut(ctx, session.ID))

	_, err = f.uc.GetCurrentUser(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.ErrorIs(t, f.uc.SignOut(ctx, session.ID), ErrNotSignedIn)
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Ann Lee":           "AL",
		"ann":               "A",
		"  jean-luc picard": "JL",
		"":                  "",
		"Mary Ann Smith":    "MA",
	}
	for name, want := range tests {
		assert.Equal(t, want, Initials(name), name)
	}
}
