package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
)

func newTestAccountService() (*accountService, *MockUserRepository, *MockSessionStore) {
	users := new(MockUserRepository)
	sessions := new(MockSessionStore)
	svc := NewAccountService(users, auth.PlainHasher{}, sessions).(*accountService)
	return svc, users, sessions
}

func TestUsernameAvailable(t *testing.T) {
	svc, users, _ := newTestAccountService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
	users.On("FindByUsername", ctx, "bob").Return(nil, apperrors.ErrNotFound)
	users.On("FindByUsername", ctx, "carol").Return(nil, errors.New("db down"))

	ok, err := svc.UsernameAvailable(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.UsernameAvailable(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.UsernameAvailable(ctx, "carol")
	assert.Error(t, err)
}

func TestRegister_Success(t *testing.T) {
	svc, users, _ := newTestAccountService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "alice").Return(nil, apperrors.ErrNotFound)
	users.On("FindByEmail", ctx, "a@x.com").Return(nil, apperrors.ErrNotFound)
	users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice" && u.Email == "a@x.com" && u.Password == "password1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 7
	}).Return(nil)

	user, err := svc.Register(ctx, "alice", "a@x.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	users.AssertExpectations(t)
}

func TestRegister_ValidationFailsBeforeLookup(t *testing.T) {
	svc, users, _ := newTestAccountService()

	_, err := svc.Register(context.Background(), "a", "a@x.com", "password1")

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "username", ve.Field)
	users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _, _ := newTestAccountService()

	_, err := svc.Register(context.Background(), "alice", "a@x.com", "short")

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Please enter password with at least 8 characters", ve.Message)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, users, _ := newTestAccountService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "alice").Return(&model.User{ID: 1}, nil)

	_, err := svc.Register(ctx, "alice", "other@x.com", "password1")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _ := newTestAccountService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "bob").Return(nil, apperrors.ErrNotFound)
	users.On("FindByEmail", ctx, "a@x.com").Return(&model.User{ID: 1}, nil)

	_, err := svc.Register(ctx, "bob", "a@x.com", "password1")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRegister_UniqueIndexRace(t *testing.T) {
	svc, users, _ := newTestAccountService()
	ctx := context.Background()
	dup := apperrors.NewValidationError("", "username or email already registered")

	users.On("FindByUsername", ctx, "alice").Return(nil, apperrors.ErrNotFound)
	users.On("FindByEmail", ctx, "a@x.com").Return(nil, apperrors.ErrNotFound)
	users.On("Create", ctx, mock.Anything).Return(dup)

	_, err := svc.Register(ctx, "alice", "a@x.com", "password1")
	assert.ErrorIs(t, err, dup)
}

func TestRegister_HashesWithBcrypt(t *testing.T) {
	users := new(MockUserRepository)
	hasher := auth.NewPasswordHasher("bcrypt")
	svc := NewAccountService(users, hasher, new(MockSessionStore))
	ctx := context.Background()

	var stored string
	users.On("FindByUsername", ctx, "alice").Return(nil, apperrors.ErrNotFound)
	users.On("FindByEmail", ctx, "a@x.com").Return(nil, apperrors.ErrNotFound)
	users.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*model.User).Password
	}).Return(nil)

	_, err := svc.Register(ctx, "alice", "a@x.com", "password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored)
	assert.True(t, hasher.Matches(stored, "password1"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	alice := &model.User{ID: 3, Username: "alice", Email: "a@x.com", Password: "password1"}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(users *MockUserRepository, sessions *MockSessionStore)
		wantErr  error
	}{
		{
			name:     "success",
			email:    "a@x.com",
			password: "password1",
			setup: func(users *MockUserRepository, sessions *MockSessionStore) {
				users.On("FindByEmail", ctx, "a@x.com").Return(alice, nil)
				sessions.On("Create", ctx, auth.Identity{UserID: 3, Username: "alice"}).
					Return(&auth.Session{ID: "sid", Identity: auth.Identity{UserID: 3, Username: "alice"}}, nil)
			},
		},
		{
			name:     "empty email",
			email:    "",
			password: "password1",
			setup:    func(*MockUserRepository, *MockSessionStore) {},
			wantErr:  apperrors.ErrInvalidCredentials,
		},
		{
			name:     "empty password",
			email:    "a@x.com",
			password: "",
			setup:    func(*MockUserRepository, *MockSessionStore) {},
			wantErr:  apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "password1",
			setup: func(users *MockUserRepository, _ *MockSessionStore) {
				users.On("FindByEmail", ctx, "nobody@x.com").Return(nil, apperrors.ErrNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "wrong-password",
			setup: func(users *MockUserRepository, _ *MockSessionStore) {
				users.On("FindByEmail", ctx, "a@x.com").Return(alice, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, sessions := newTestAccountService()
			tt.setup(users, sessions)

			sess, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sess)
				sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "sid", sess.ID)
			assert.Equal(t, "alice", sess.Username)
		})
	}
}

func TestLogin_SessionStoreFailure(t *testing.T) {
	svc, users, sessions := newTestAccountService()
	ctx := context.Background()
	storeErr := &apperrors.SessionError{Op: "create", Err: errors.New("redis down")}

	users.On("FindByEmail", ctx, "a@x.com").Return(&model.User{ID: 3, Username: "alice", Password: "password1"}, nil)
	sessions.On("Create", ctx, mock.Anything).Return(nil, storeErr)

	_, err := svc.Login(ctx, "a@x.com", "password1")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newTestAccountService()
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, ""))
	sessions.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)

	sessions.On("Destroy", ctx, "sid").Return(nil).Once()
	require.NoError(t, svc.Logout(ctx, "sid"))

	storeErr := &apperrors.SessionError{Op: "destroy", Err: errors.New("redis down")}
	sessions.On("Destroy", ctx, "broken").Return(storeErr)
	err := svc.Logout(ctx, "broken")

	var se *apperrors.SessionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "destroy", se.Op)
}
