package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/remind-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		pushKey  string
		wantErr  error
	}{
		{
			name:     "valid user with push key",
			username: "alice",
			email:    "alice@example.com",
			password: "correct-horse-battery",
			pushKey:  "u1h2k3",
		},
		{
			name:     "valid user without push key",
			username: "bob",
			email:    "bob@example.com",
			password: "correct-horse-battery",
		},
		{
			name:     "empty username",
			email:    "alice@example.com",
			password: "correct-horse-battery",
			wantErr:  domain.ErrEmptyUsername,
		},
		{
			name:     "empty email",
			username: "alice",
			password: "correct-horse-battery",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "malformed email",
			username: "alice",
			email:    "not-an-email",
			password: "correct-horse-battery",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "email with bare domain",
			username: "alice",
			email:    "alice@localhost",
			password: "correct-horse-battery",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "password too short",
			username: "alice",
			email:    "alice@example.com",
			password: "short",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "password too long for bcrypt",
			username: "alice",
			email:    "alice@example.com",
			password: strings.Repeat("x", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := domain.NewUser(tt.username, tt.email, tt.password, tt.pushKey)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.pushKey, user.PushKey)
			assert.False(t, user.CreatedAt.IsZero())
		})
	}
}

func TestUserValidate_HashedOnly(t *testing.T) {
	// Rows loaded from the store carry only the hash.
	user := domain.User{
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}
