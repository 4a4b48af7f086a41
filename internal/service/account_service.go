package service

import (
	"context"
	"errors"
	"fmt"

	"blogapp/internal/auth"
	apperrors "blogapp/internal/errors"
	"blogapp/internal/metrics"
	"blogapp/internal/model"
	"blogapp/internal/repository"
)

var (
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = apperrors.NewValidationError("username", "username already taken")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = apperrors.NewValidationError("email", "email already registered")
)

// AccountService handles registration and session lifecycle.
type AccountService interface {
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type accountService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	sessions auth.SessionStore
}

// NewAccountService creates a new account service.
func NewAccountService(userRepo repository.UserRepository, hasher auth.PasswordHasher, sessions auth.SessionStore) AccountService {
	return &accountService{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// UsernameAvailable reports whether no user holds username.
func (s *accountService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, apperrors.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return false, nil
}

// Register validates the input and creates a user with a hashed password.
func (s *accountService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	user, err := s.register(ctx, username, email, password)
	switch {
	case err == nil:
		metrics.Registrations.WithLabelValues("ok").Inc()
	case apperrors.IsValidation(err):
		metrics.Registrations.WithLabelValues("invalid").Inc()
	default:
		metrics.Registrations.WithLabelValues("error").Inc()
	}
	return user, err
}

func (s *accountService) register(ctx context.Context, username, email, password string) (*model.User, error) {
	reg := model.Registration{Username: username, Email: email, Password: password}
	if err := model.Validate(&reg); err != nil {
		return nil, err
	}

	// Check for existing accounts first so the error names the clashing field;
	// the unique indexes still catch races.
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: stored,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperrors.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and opens a session holding the user's identity.
func (s *accountService) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	sess, err := s.login(ctx, email, password)
	switch {
	case err == nil:
		metrics.Logins.WithLabelValues("ok").Inc()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		metrics.Logins.WithLabelValues("rejected").Inc()
	default:
		metrics.Logins.WithLabelValues("error").Inc()
	}
	return sess, err
}

func (s *accountService) login(ctx context.Context, email, password string) (*auth.Session, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Matches(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, auth.Identity{UserID: user.ID, Username: user.Username})
}

// Logout destroys the session. An empty id means there is nothing to destroy.
func (s *accountService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionID)
}
