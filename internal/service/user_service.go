package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/service/auth"
	"github.com/phrazzld/remind-api/internal/store"
)

// ContactInfo is the delivery address pair resolved for a task owner.
// An empty field means that channel is not configured for the user.
type ContactInfo struct {
	Email   string
	PushKey string
}

// UserService provides account operations: signup, authentication, the
// login audit trail, and contact resolution for reminder delivery.
type UserService interface {
	// SignUp creates a new account. The password is hashed before any
	// storage write. Returns store.ErrUsernameExists if the username is
	// already taken, or domain validation errors for invalid input.
	SignUp(ctx context.Context, username, email, password, pushKey string) (*domain.User, error)

	// Authenticate verifies a username/password pair and returns the user.
	// Returns ErrInvalidCredentials when the username is unknown or the
	// password does not match.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// RecordLogin appends to the login audit trail. The append is
	// fire-and-forget: storage faults are logged and never fail the
	// caller's login flow.
	RecordLogin(ctx context.Context, username string, at time.Time)

	// GetContactInfo resolves the owner's reminder delivery addresses.
	// Returns store.ErrUserNotFound for an unknown username.
	GetContactInfo(ctx context.Context, username string) (ContactInfo, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore  store.UserStore
	loginStore store.LoginStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	tx         store.Transactioner
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	loginStore store.LoginStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tx store.Transactioner,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if loginStore == nil {
		return nil, fmt.Errorf("loginStore cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("hasher cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("verifier cannot be nil")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore:  userStore,
		loginStore: loginStore,
		hasher:     hasher,
		verifier:   verifier,
		tx:         tx,
		logger:     logger.With("component", "user_service"),
	}, nil
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// SignUp creates a new account with a hashed credential inside a transaction.
func (s *UserServiceImpl) SignUp(
	ctx context.Context,
	username, email, password, pushKey string,
) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password, pushKey)
	if err != nil {
		s.logger.Debug("signup rejected by validation",
			"error", err,
			"username", username)
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to sign up an existing username",
				"username", username)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"username", username)
		}
		return nil, err
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"username", user.Username)

	return user, nil
}

// Authenticate verifies the credential against the stored hash.
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("authentication failed: unknown username",
				"username", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user for authentication",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed: password mismatch",
			"username", username)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// RecordLogin appends a login event; storage faults are logged and swallowed.
func (s *UserServiceImpl) RecordLogin(ctx context.Context, username string, at time.Time) {
	event := domain.NewLoginEvent(username, at)
	if err := s.loginStore.Record(ctx, event); err != nil {
		s.logger.Error("failed to record login event",
			"error", err,
			"username", username)
	}
}

// GetContactInfo resolves the owner's email and optional push key.
func (s *UserServiceImpl) GetContactInfo(
	ctx context.Context,
	username string,
) (ContactInfo, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to resolve contact info",
				"error", err,
				"username", username)
		}
		return ContactInfo{}, err
	}

	return ContactInfo{Email: user.Email, PushKey: user.PushKey}, nil
}
