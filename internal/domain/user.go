package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// emailValidator is the single definition of "valid email" for the domain,
// shared with the request-level `validate:"email"` tag.
var emailValidator = validator.New()

// User represents a registered account. The username is the primary
// identity: it is unique, immutable after signup, and every task row is
// scoped to it. Email and the optional push key are the contact points the
// notification dispatcher resolves when a task comes due.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PushKey        string    `json:"-"` // Optional push-notification user key
	Password       string    `json:"-"` // Plaintext, held only between signup and hashing
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given identity and contact details.
// It generates a new UUID and sets the creation/update timestamps.
// The plaintext password is kept on the struct; the caller is responsible
// for hashing it before the user is persisted.
// Returns a validation error if any field is invalid.
func NewUser(username, email, password, pushKey string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		PushKey:   strings.TrimSpace(pushKey),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the user has a username, a plausible email address,
// and either a plaintext password within bcrypt's length bounds or an
// already-hashed password (the case for rows loaded from the store).
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if err := emailValidator.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}
